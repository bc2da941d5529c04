package logbook

import "errors"

// Mode is the screen the operator is on.
type Mode string

const (
	// ModeSelect shows the customer map.
	ModeSelect Mode = "select"
	// ModeAdd shows the new customer form.
	ModeAdd Mode = "add"
	// ModeExisting shows a selected customer and its machines.
	ModeExisting Mode = "existing"
)

// State is the operator's current selection. It is passed into and returned
// from every operation instead of being kept by the service.
type State struct {
	Mode               Mode   `json:"mode"`
	SelectedCustomerID string `json:"selected_customer_id,omitempty"`
	SelectedMachineID  string `json:"selected_machine_id,omitempty"`
}

// Initial is the state a new session starts in.
func Initial() State {
	return State{Mode: ModeSelect}
}

// Referential errors. The operation returns Initial() with them so the
// operator picks a customer again.
var (
	ErrNoCustomerSelected = errors.New("no customer selected")
	ErrCustomerNotFound   = errors.New("customer not found, please select again")
	ErrMachineNotFound    = errors.New("machine not found, please select again")
	ErrMachineNotOwned    = errors.New("machine does not belong to the selected customer")
)

// IsReferential reports whether err means the selection no longer resolves.
func IsReferential(err error) bool {
	return errors.Is(err, ErrNoCustomerSelected) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrMachineNotFound) ||
		errors.Is(err, ErrMachineNotOwned)
}

// Result reports the record an operation created and any non-fatal problems
// with the collaborators that ran after it was stored.
type Result struct {
	ID       string   `json:"id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Result) warn(msg string) {
	if msg != "" {
		r.Warnings = append(r.Warnings, msg)
	}
}
