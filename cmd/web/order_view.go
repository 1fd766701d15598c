package main

import (
	"net/url"
	"strings"

	"cvaluepro.com/cvalue-web/internal/payment"
)

// serviceTypes maps order slugs to the preview route each service lands on.
var serviceTypes = map[string]string{
	"resume":       "/preview",
	"cover-letter": "/cover-letter-preview",
	"linkedin":     "/linkedin-preview",
	"bundle":       "/bundle-preview",
}

// OrderView drives the `/order/{serviceType}` page.
type OrderView struct {
	ServiceType string
	TitleKey    string
	Input       OrderInput
	Errors      map[string]string
	Submitting  bool
}

// OrderInput mirrors the order form fields.
type OrderInput struct {
	FullName   string
	Email      string
	Phone      string
	JobTitle   string
	Experience string
	Education  string
	Skills     string
	Summary    string
	TargetRole string
}

func parseOrderInput(values url.Values) OrderInput {
	return OrderInput{
		FullName:   strings.TrimSpace(values.Get("full_name")),
		Email:      payment.NormalizeEmail(values.Get("email")),
		Phone:      strings.TrimSpace(values.Get("phone")),
		JobTitle:   strings.TrimSpace(values.Get("job_title")),
		Experience: strings.TrimSpace(values.Get("experience")),
		Education:  strings.TrimSpace(values.Get("education")),
		Skills:     strings.TrimSpace(values.Get("skills")),
		Summary:    strings.TrimSpace(values.Get("summary")),
		TargetRole: strings.TrimSpace(values.Get("target_role")),
	}
}

// validateOrderInput returns field name to i18n error key.
func validateOrderInput(in OrderInput) map[string]string {
	errs := map[string]string{}
	if in.FullName == "" {
		errs["full_name"] = "order.error.full_name"
	}
	if in.Email == "" || !payment.ValidEmail(in.Email) {
		errs["email"] = "order.error.email"
	}
	if in.JobTitle == "" {
		errs["job_title"] = "order.error.job_title"
	}
	return errs
}

func orderTitleKey(serviceType string) string {
	switch serviceType {
	case "resume":
		return "order.resume.title"
	case "cover-letter":
		return "order.cover.title"
	case "linkedin":
		return "order.linkedin.title"
	default:
		return "order.bundle.title"
	}
}

func buildOrderView(serviceType string, in OrderInput, errs map[string]string) OrderView {
	return OrderView{
		ServiceType: serviceType,
		TitleKey:    orderTitleKey(serviceType),
		Input:       in,
		Errors:      errs,
	}
}
