package payment

import (
	"net/url"
	"strings"
)

// Wizard steps.
const (
	StepCard    = 1
	StepAddress = 2
	StepContact = 3
)

// Form carries the wizard's field values across steps. Field names mirror the
// payment backend payload so templates and payloads stay aligned.
type Form struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
	Name     string

	Country string
	Line1   string
	City    string
	Street  string
	Avenue  string

	FirstName        string
	MiddleName       string
	LastName         string
	Email            string
	PhoneCountryCode string
	PhoneNumber      string

	ClientIP string
}

// ParseForm builds a Form from posted values, applying the per-field filters.
func ParseForm(values url.Values) Form {
	return Form{
		Number:   NormalizeCardNumber(values.Get("number")),
		ExpMonth: NormalizeDigits(values.Get("exp_month"), 2),
		ExpYear:  NormalizeDigits(values.Get("exp_year"), 4),
		CVC:      NormalizeDigits(values.Get("cvc"), 3),
		Name:     NormalizeName(values.Get("name")),

		Country: strings.TrimSpace(values.Get("country")),
		Line1:   strings.TrimSpace(values.Get("line1")),
		City:    strings.TrimSpace(values.Get("city")),
		Street:  strings.TrimSpace(values.Get("street")),
		Avenue:  strings.TrimSpace(values.Get("avenue")),

		FirstName:        NormalizeName(values.Get("first_name")),
		MiddleName:       NormalizeName(values.Get("middle_name")),
		LastName:         NormalizeName(values.Get("last_name")),
		Email:            NormalizeEmail(values.Get("email")),
		PhoneCountryCode: NormalizeCountryCode(values.Get("phone_country_code")),
		PhoneNumber:      NormalizePhoneNumber(values.Get("phone_number")),

		ClientIP: strings.TrimSpace(values.Get("client_ip")),
	}
}

// Values flattens the form back into template-friendly key/value pairs so
// hidden inputs can carry state between wizard steps.
func (f Form) Values() map[string]string {
	return map[string]string{
		"number":             f.Number,
		"exp_month":          f.ExpMonth,
		"exp_year":           f.ExpYear,
		"cvc":                f.CVC,
		"name":               f.Name,
		"country":            f.Country,
		"line1":              f.Line1,
		"city":               f.City,
		"street":             f.Street,
		"avenue":             f.Avenue,
		"first_name":         f.FirstName,
		"middle_name":        f.MiddleName,
		"last_name":          f.LastName,
		"email":              f.Email,
		"phone_country_code": f.PhoneCountryCode,
		"phone_number":       f.PhoneNumber,
		"client_ip":          f.ClientIP,
	}
}

// ValidateStep runs the validators for a single wizard step and returns a
// field-keyed map of i18n message keys. An empty map means the step may be
// left.
func (f Form) ValidateStep(step int) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepCard:
		if !ValidCardNumber(f.Number) {
			errs["number"] = "payment.error.number"
		}
		if !ValidCVC(f.CVC) {
			errs["cvc"] = "payment.error.cvc"
		}
		if !ValidExpMonth(f.ExpMonth) {
			errs["exp_month"] = "payment.error.exp_month"
		}
		if !ValidExpYear(f.ExpYear) {
			errs["exp_year"] = "payment.error.exp_year"
		}
		if strings.TrimSpace(f.Name) == "" {
			errs["name"] = "payment.error.name"
		}
	case StepAddress:
		if f.Country == "" {
			errs["country"] = "payment.error.country"
		}
		if f.Line1 == "" {
			errs["line1"] = "payment.error.line1"
		}
		if f.City == "" {
			errs["city"] = "payment.error.city"
		}
		if f.Street == "" {
			errs["street"] = "payment.error.street"
		}
	case StepContact:
		if strings.TrimSpace(f.FirstName) == "" {
			errs["first_name"] = "payment.error.first_name"
		}
		if strings.TrimSpace(f.LastName) == "" {
			errs["last_name"] = "payment.error.last_name"
		}
		if !ValidEmail(f.Email) {
			errs["email"] = "payment.error.email"
		}
		if !ValidPhone(f.PhoneCountryCode, f.PhoneNumber) {
			errs["phone_number"] = "payment.error.phone"
		}
	}
	return errs
}

// Validate re-runs every step's validators, merging the error maps.
func (f Form) Validate() map[string]string {
	errs := map[string]string{}
	for _, step := range []int{StepCard, StepAddress, StepContact} {
		for field, key := range f.ValidateStep(step) {
			errs[field] = key
		}
	}
	return errs
}
