package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"service-logger-backend/internal/catalog"
	"service-logger-backend/internal/media"
	"service-logger-backend/internal/parse"
)

// FirstModelYear is the oldest machine year accepted.
const FirstModelYear = 1970

// Validator checks whole form submissions and reports every violation.
type Validator struct {
	v           *validator.Validate
	technicians []string
	now         func() time.Time
}

// New builds a Validator. technicians is the allowed technician list; now
// supplies the current year bound for machine years.
func New(technicians []string, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{
		v:           validator.New(),
		technicians: append([]string(nil), technicians...),
		now:         now,
	}
	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	if err := val.register(); err != nil {
		panic("validate: failed to register rules: " + err.Error())
	}
	return val
}

func (val *Validator) register() error {
	for tag, r := range stringRules {
		check := r.check
		if err := val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	if err := val.v.RegisterValidation(tagYear, func(fl validator.FieldLevel) bool {
		_, err := parse.Year(fl.Field().String(), FirstModelYear, val.now().Year())
		return err == nil
	}); err != nil {
		return err
	}
	if err := val.v.RegisterValidation(tagClock, func(fl validator.FieldLevel) bool {
		_, err := parse.Clock(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	if err := val.v.RegisterValidation(tagMinutes, func(fl validator.FieldLevel) bool {
		_, err := parse.Minutes(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return val.v.RegisterValidation(tagTech, func(fl validator.FieldLevel) bool {
		return val.IsTechnician(fl.Field().String())
	})
}

// Technicians returns the allowed technician names.
func (val *Validator) Technicians() []string {
	return append([]string(nil), val.technicians...)
}

// IsTechnician reports whether name is one of the configured technicians.
func (val *Validator) IsTechnician(name string) bool {
	for _, t := range val.technicians {
		if t == name {
			return true
		}
	}
	return false
}

// Customer validates an add-customer submission.
func (val *Validator) Customer(form CustomerForm) error {
	return result(val.structViolations(form))
}

// Machine validates an add-machine submission against the catalog.
func (val *Validator) Machine(form MachineForm, cat catalog.Catalog) error {
	violations := val.catalogViolations(form, cat)
	violations = append(violations, val.structViolations(form)...)
	violations = append(violations, photoViolations(form.Photo)...)
	return result(violations)
}

// MachineEdit validates an edit; the photo may be left out.
func (val *Validator) MachineEdit(form MachineForm, cat catalog.Catalog) error {
	violations := val.catalogViolations(form, cat)
	for _, v := range val.structViolations(form) {
		if v.Field != "photo" {
			violations = append(violations, v)
		}
	}
	violations = append(violations, photoViolations(form.Photo)...)
	return result(violations)
}

// Job validates a log-a-job submission, including the content of every
// upload and the signature capture.
func (val *Validator) Job(form JobForm) error {
	violations := val.structViolations(form)
	for _, stage := range []struct {
		field, label string
		uploads      []media.Upload
	}{
		{"found", "Machine as Found", form.Found},
		{"left", "Machine as Left", form.Left},
	} {
		for _, up := range stage.uploads {
			if err := media.CheckJobMedia(up); err != nil {
				violations = append(violations, mediaViolation(stage.field, stage.label, err))
				break
			}
		}
	}
	if len(form.Signature) > 0 {
		if _, err := media.DecodeSignature(form.Signature); err != nil {
			violations = append(violations, mediaViolation("signature", "Signature", err))
		}
	}
	return result(violations)
}

// MediaError reports a rejected upload as a validation error.
func MediaError(field, label string, err error) error {
	return &Error{Violations: []Violation{mediaViolation(field, label, err)}}
}

func photoViolations(photo *media.Upload) []Violation {
	if photo == nil {
		return nil
	}
	if err := media.CheckPhoto(*photo); err != nil {
		return []Violation{mediaViolation("photo", "Photo", err)}
	}
	return nil
}

func mediaViolation(field, label string, err error) Violation {
	msg := fmt.Sprintf("%s must be a JPG or PNG image.", label)
	if field == "found" || field == "left" {
		msg = fmt.Sprintf("%s must be JPG, PNG or MP4 files.", label)
	}
	if errors.Is(err, media.ErrInvalidSignature) {
		msg = "Signature must be drawn before submitting."
	}
	return Violation{Field: field, Rule: "media_type", Message: msg}
}

func (val *Validator) catalogViolations(form MachineForm, cat catalog.Catalog) []Violation {
	var out []Violation
	brandErr := cat.CheckBrand(form.Brand)
	if brandErr != nil {
		out = append(out, Violation{Field: "brand", Rule: "catalog", Message: choiceMessage("Brand", brandErr)})
	}
	if err := cat.CheckModel(form.Brand, form.Model); err != nil {
		// An unknown brand makes every known model look wrong; report it once.
		if brandErr == nil || errors.Is(err, catalog.ErrEmptyChoice) {
			out = append(out, Violation{Field: "model", Rule: "catalog", Message: choiceMessage("Model", err)})
		}
	}
	return out
}

func choiceMessage(label string, err error) string {
	if errors.Is(err, catalog.ErrEmptyChoice) {
		return label + " required."
	}
	return fmt.Sprintf("%s: %s.", label, err)
}

func (val *Validator) structViolations(form any) []Violation {
	err := val.v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	t := reflect.TypeOf(form)
	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{
			Field:   jsonName(t, fe.StructField()),
			Rule:    fe.Tag(),
			Message: val.message(fe),
		})
	}
	return out
}

func (val *Validator) message(fe validator.FieldError) string {
	label := fe.Field()
	if r, ok := stringRules[fe.Tag()]; ok {
		return r.message(label)
	}
	switch fe.Tag() {
	case "required":
		return label + " required."
	case "min":
		return label + " required."
	case tagYear:
		return fmt.Sprintf("%s must be between %d and %d.", label, FirstModelYear, val.now().Year())
	case tagClock:
		return label + " must be a time (HH:MM)."
	case tagMinutes:
		return label + " must be a whole number of minutes, zero or more."
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)."
	case tagTech:
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(val.technicians, ", "))
	}
	return label + " is invalid."
}

func jsonName(t reflect.Type, structField string) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(structField)
	}
	return name
}
