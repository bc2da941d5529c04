package model

import (
	"fmt"
	"strconv"
	"time"

	"service-logger-backend/internal/parse"
)

var jobColumns = []string{
	"Job ID", ColCustomerID, ColMachineID, "Employee Name", "Technician",
	"Date", "Travel Time (min)", "Time In", "Time Out", "Job Description",
	"Parts Used", "Additional Comments",
	"Machine as Found Paths", "Machine as Left Paths", "Signature Path",
}

// Job is one logged service visit. Jobs are append-only.
type Job struct {
	ID                 string    `gorm:"primaryKey;size:64" json:"id"`
	CustomerID         string    `gorm:"index;size:64;not null" json:"customer_id"`
	MachineID          string    `gorm:"index;size:64;not null" json:"machine_id"`
	EmployeeName       string    `gorm:"size:256;not null" json:"employee_name"`
	Technician         string    `gorm:"size:256;not null" json:"technician"`
	Date               string    `gorm:"size:10;not null" json:"date"`
	TravelMinutes      int       `gorm:"not null" json:"travel_minutes"`
	TimeIn             string    `gorm:"size:8;not null" json:"time_in"`
	TimeOut            string    `gorm:"size:8;not null" json:"time_out"`
	Description        string    `gorm:"not null" json:"description"`
	PartsUsed          string    `json:"parts_used"`
	AdditionalComments string    `json:"additional_comments"`
	FoundPaths         []string  `gorm:"serializer:json;type:text" json:"found_paths"`
	LeftPaths          []string  `gorm:"serializer:json;type:text" json:"left_paths"`
	SignaturePath      string    `gorm:"not null" json:"signature_path"`
	CreatedAt          time.Time `gorm:"not null" json:"-"`
}

// Kind implements Record.
func (j *Job) Kind() Kind { return KindJob }

// RecordID implements Record.
func (j *Job) RecordID() string { return j.ID }

// SetRecordID implements Record.
func (j *Job) SetRecordID(id string) { j.ID = id }

// Row returns the values in table column order.
func (j *Job) Row() []string {
	return []string{
		j.ID, j.CustomerID, j.MachineID, j.EmployeeName, j.Technician,
		j.Date, strconv.Itoa(j.TravelMinutes), j.TimeIn, j.TimeOut, j.Description,
		j.PartsUsed, j.AdditionalComments,
		parse.JoinList(j.FoundPaths), parse.JoinList(j.LeftPaths), j.SignaturePath,
	}
}

// Field returns the value stored under a column header.
func (j *Job) Field(column string) string {
	return fieldAt(jobColumns, j.Row(), column)
}

func jobFromRow(v map[string]string) (*Job, error) {
	j := &Job{
		ID:                 v["Job ID"],
		CustomerID:         v[ColCustomerID],
		MachineID:          v[ColMachineID],
		EmployeeName:       v["Employee Name"],
		Technician:         v["Technician"],
		Date:               v["Date"],
		TimeIn:             v["Time In"],
		TimeOut:            v["Time Out"],
		Description:        v["Job Description"],
		PartsUsed:          v["Parts Used"],
		AdditionalComments: v["Additional Comments"],
		FoundPaths:         parse.List(v["Machine as Found Paths"]),
		LeftPaths:          parse.List(v["Machine as Left Paths"]),
		SignaturePath:      v["Signature Path"],
	}
	if raw := v["Travel Time (min)"]; raw != "" {
		n, err := parse.Minutes(raw)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", j.ID, err)
		}
		j.TravelMinutes = n
	}
	return j, nil
}
