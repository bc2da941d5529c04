package validate

import (
	"service-logger-backend/internal/catalog"
	"service-logger-backend/internal/media"
)

// CustomerForm is the "add customer" submission.
type CustomerForm struct {
	CompanyName string `json:"company_name" label:"Company Name" validate:"trimmed_required"`
	ContactName string `json:"contact_name" label:"Contact Name" validate:"trimmed_required"`
	Address     string `json:"address" label:"Address" validate:"street_address"`
	Phone       string `json:"phone" label:"Phone" validate:"dashed_phone"`
	Email       string `json:"email" label:"Email" validate:"simple_email"`
}

// MachineForm is the "add machine" or "edit machine" submission. Photo is
// required when adding; edits may keep the stored photo.
type MachineForm struct {
	Brand        catalog.Choice `json:"-"`
	Model        catalog.Choice `json:"-"`
	Year         string         `json:"year" label:"Year" validate:"trimmed_required,model_year"`
	SerialNumber string         `json:"serial_number"`
	Observations string         `json:"observations"`
	Photo        *media.Upload  `json:"-" label:"Photo" validate:"required"`
}

// JobForm is the "log a job" submission.
type JobForm struct {
	EmployeeName       string         `json:"employee_name" label:"Employee Full Name" validate:"trimmed_required"`
	Technician         string         `json:"technician" label:"Technician" validate:"technician"`
	Date               string         `json:"date" label:"Date" validate:"required,datetime=2006-01-02"`
	TravelMinutes      string         `json:"travel_minutes" label:"Travel Time (min)" validate:"minutes"`
	TimeIn             string         `json:"time_in" label:"Time In" validate:"required,clock"`
	TimeOut            string         `json:"time_out" label:"Time Out" validate:"required,clock"`
	Description        string         `json:"description" label:"Job Description" validate:"trimmed_required"`
	PartsUsed          string         `json:"parts_used"`
	AdditionalComments string         `json:"additional_comments"`
	Found              []media.Upload `json:"-" label:"Machine as Found" validate:"required,min=1"`
	Left               []media.Upload `json:"-" label:"Machine as Left" validate:"required,min=1"`
	Signature          []byte         `json:"-" label:"Signature" validate:"required,min=1"`
}
