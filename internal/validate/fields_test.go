package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	testCases := []struct {
		raw      string
		accepted bool
	}{
		{raw: "416-555-0199", accepted: true},
		{raw: "000-000-0000", accepted: true},
		{raw: "4165550199"},
		{raw: "416-555-01990"},
		{raw: "555-1234"},
		{raw: " 416-555-0199"},
		{raw: "416-555-0199\n"},
		{raw: "41a-555-0199"},
		{raw: "(416) 555-0199"},
		{raw: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			err := Phone(tc.raw)
			if tc.accepted {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "Phone must be 000-000-0000.")
			}
		})
	}
}

func TestEmail(t *testing.T) {
	testCases := []struct {
		raw      string
		accepted bool
	}{
		{raw: "a.b@example.com", accepted: true},
		{raw: "first-last@sub.example.co", accepted: true},
		{raw: "user_1@example.io", accepted: true},
		{raw: "not-an-email"},
		{raw: "a@b"},
		{raw: "@example.com"},
		{raw: "a b@example.com"},
		{raw: "a+tag@example.com"},
		{raw: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			err := Email(tc.raw)
			if tc.accepted {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "Valid email required.")
			}
		})
	}
}

func TestAddress(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		accepted bool
	}{
		{name: "Street address", raw: "123 Queen St W", accepted: true},
		{name: "Digit inside a token", raw: "Unit B2 King Street", accepted: true},
		{name: "Single digit number", raw: "1 Main St", accepted: true},
		{name: "No digit", raw: "Queen Street West"},
		{name: "Too few tokens", raw: "123 Queen"},
		{name: "Whitespace padding does not count", raw: "  123   Queen  ", accepted: false},
		{name: "Empty", raw: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Address(tc.raw)
			if tc.accepted {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "Valid address required.")
			}
		})
	}
}

func TestNames(t *testing.T) {
	assert.NoError(t, CompanyName("Cafe Uno"))
	assert.EqualError(t, CompanyName("   "), "Company Name required.")
	assert.EqualError(t, CompanyName(""), "Company Name required.")
	assert.NoError(t, ContactName(" Ana "))
	assert.EqualError(t, ContactName("\t"), "Contact Name required.")

	var v Violation
	assert.ErrorAs(t, CompanyName(""), &v)
	assert.Equal(t, "company_name", v.Field)
}
