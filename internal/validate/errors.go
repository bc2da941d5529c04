package validate

import "strings"

// Violation is one broken rule on one field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) Error() string { return v.Message }

// Error collects every violation found on a submission.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return strings.Join(e.Messages(), "\n")
}

// Messages returns the human readable reasons in field order.
func (e *Error) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// Has reports whether a field was rejected.
func (e *Error) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func result(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &Error{Violations: violations}
}
