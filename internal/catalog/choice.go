package catalog

import (
	"errors"
	"strings"
)

var (
	ErrEmptyChoice   = errors.New("value required")
	ErrUnknownBrand  = errors.New("brand is not in the catalog")
	ErrUnknownModel  = errors.New("model is not listed for this brand")
	ErrCustomRefused = errors.New("brand does not accept a free text model")
)

// Choice is either a catalog entry or a free text value typed in after
// picking the sentinel. Keeping the two apart means a real brand literally
// called "Other" is never confused with the sentinel.
type Choice struct {
	value  string
	custom bool
}

// Known wraps a value picked from the catalog.
func Known(name string) Choice { return Choice{value: name} }

// Custom wraps a free text value.
func Custom(text string) Choice { return Choice{value: strings.TrimSpace(text), custom: true} }

// Resolve turns a list selection plus the optional free text box into a Choice.
func Resolve(selection, freeText string) Choice {
	if selection == Sentinel {
		return Custom(freeText)
	}
	return Known(strings.TrimSpace(selection))
}

// Value is the text that ends up stored on the record.
func (c Choice) Value() string { return c.value }

// IsCustom reports whether the value was typed in rather than picked.
func (c Choice) IsCustom() bool { return c.custom }

// IsZero reports whether nothing usable was chosen.
func (c Choice) IsZero() bool { return strings.TrimSpace(c.value) == "" }

// CheckBrand verifies a brand choice against the catalog.
func (c Catalog) CheckBrand(brand Choice) error {
	if brand.IsZero() {
		return ErrEmptyChoice
	}
	if !brand.IsCustom() && !c.HasBrand(brand.Value()) {
		return ErrUnknownBrand
	}
	return nil
}

// CheckModel verifies a model choice for an already checked brand. A custom
// brand accepts any non-empty model.
func (c Catalog) CheckModel(brand, model Choice) error {
	if model.IsZero() {
		return ErrEmptyChoice
	}
	if brand.IsCustom() {
		return nil
	}
	if model.IsCustom() {
		if !c.AllowsCustomModel(brand.Value()) {
			return ErrCustomRefused
		}
		return nil
	}
	if !c.HasModel(brand.Value(), model.Value()) {
		return ErrUnknownModel
	}
	return nil
}
