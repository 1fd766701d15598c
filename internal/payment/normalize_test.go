package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCardNumber(t *testing.T) {
	require.Equal(t, "4242 4242 4242 4242", NormalizeCardNumber("4242424242424242"))
	require.Equal(t, "4242 4242 4242 4242", NormalizeCardNumber("4242-4242-4242-4242"))
	// input past 16 digits is dropped
	require.Equal(t, "4242 4242 4242 4242", NormalizeCardNumber("42424242424242429999"))
	require.Equal(t, "4242 4", NormalizeCardNumber("4242 4x"))
}

func TestNormalizeDigits(t *testing.T) {
	require.Equal(t, "12", NormalizeDigits("12ab", 2))
	require.Equal(t, "2030", NormalizeDigits("20305", 4))
	require.Equal(t, "", NormalizeDigits("abc", 3))
}

func TestNormalizeCountryCode(t *testing.T) {
	require.Equal(t, "+965", NormalizeCountryCode("+965"))
	require.Equal(t, "+965", NormalizeCountryCode("+9 6 5"))
	require.Equal(t, "965", NormalizeCountryCode("965"))
	require.Equal(t, "+965", NormalizeCountryCode("+96555"))
}

func TestNormalizePhoneNumber(t *testing.T) {
	require.Equal(t, "555-1234", NormalizePhoneNumber("555-1234"))
	require.Equal(t, "5551234", NormalizePhoneNumber("(555) 1234"))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "Mary-Jane Smith", NormalizeName("Mary-Jane Smith"))
	require.Equal(t, "John Doe", NormalizeName("John Doe42"))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}

func TestParseFormAppliesFilters(t *testing.T) {
	values := url.Values{}
	values.Set("number", "4242424242424242")
	values.Set("exp_month", "12")
	values.Set("exp_year", "2030")
	values.Set("cvc", "123")
	values.Set("name", "Jane Doe")
	values.Set("email", "Jane@Example.com")
	values.Set("phone_country_code", "+965")
	values.Set("phone_number", "1234-5678")

	f := ParseForm(values)
	require.Equal(t, "4242 4242 4242 4242", f.Number)
	require.Equal(t, "jane@example.com", f.Email)
	require.Equal(t, "+965", f.PhoneCountryCode)
	require.Equal(t, "1234-5678", f.PhoneNumber)
}

func TestValidateStepGatesCardFields(t *testing.T) {
	f := Form{Number: "4242 4242 4242 4241", ExpMonth: "12", ExpYear: "2030", CVC: "123", Name: "Jane"}
	errs := f.ValidateStep(StepCard)
	require.Contains(t, errs, "number")
	require.NotContains(t, errs, "cvc")

	f.Number = "4242 4242 4242 4242"
	require.Empty(t, f.ValidateStep(StepCard))
}

func TestValidateMergesAllSteps(t *testing.T) {
	errs := Form{}.Validate()
	require.Contains(t, errs, "number")
	require.Contains(t, errs, "country")
	require.Contains(t, errs, "email")
}
