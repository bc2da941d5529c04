package validate

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	phoneRe = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Tags registered with the struct validator.
const (
	tagNotBlank = "trimmed_required"
	tagAddress  = "street_address"
	tagPhone    = "dashed_phone"
	tagEmail    = "simple_email"
	tagYear     = "model_year"
	tagClock    = "clock"
	tagMinutes  = "minutes"
	tagTech     = "technician"
)

type rule struct {
	check   func(string) bool
	message func(label string) string
}

var stringRules = map[string]rule{
	tagNotBlank: {check: isNotBlank, message: func(label string) string { return label + " required." }},
	tagAddress:  {check: isAddress, message: func(string) string { return "Valid address required." }},
	tagPhone:    {check: isPhone, message: func(string) string { return "Phone must be 000-000-0000." }},
	tagEmail:    {check: isEmail, message: func(string) string { return "Valid email required." }},
}

func isNotBlank(s string) bool { return strings.TrimSpace(s) != "" }

// isAddress is a weak heuristic kept for compatibility with existing data:
// at least one digit and three or more whitespace separated tokens.
func isAddress(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0 && len(strings.Fields(s)) >= 3
}

func isPhone(s string) bool { return phoneRe.MatchString(s) }

func isEmail(s string) bool { return emailRe.MatchString(s) }

func checkField(field, tag, label, value string) error {
	r := stringRules[tag]
	if r.check(value) {
		return nil
	}
	return Violation{Field: field, Rule: tag, Message: r.message(label)}
}

// CompanyName rejects a blank company name.
func CompanyName(v string) error {
	return checkField("company_name", tagNotBlank, "Company Name", v)
}

// ContactName rejects a blank contact name.
func ContactName(v string) error {
	return checkField("contact_name", tagNotBlank, "Contact Name", v)
}

// Address accepts a value with a digit and at least three tokens.
func Address(v string) error {
	return checkField("address", tagAddress, "Address", v)
}

// Phone accepts exactly NNN-NNN-NNNN.
func Phone(v string) error {
	return checkField("phone", tagPhone, "Phone", v)
}

// Email accepts local@domain.tld made of word, dot and hyphen characters.
func Email(v string) error {
	return checkField("email", tagEmail, "Email", v)
}
