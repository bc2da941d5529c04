package model

import (
	"fmt"
	"time"
)

var machineColumns = []string{
	"ID", ColCustomerID, "Brand", "Model", "Year",
	"Serial Number", "Photo Path", "Observations",
}

// Machine is a coffee machine installed at a customer site.
type Machine struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	CustomerID   string    `gorm:"index;size:64;not null" json:"customer_id"`
	Brand        string    `gorm:"size:128;not null" json:"brand"`
	Model        string    `gorm:"size:128;not null" json:"model"`
	Year         string    `gorm:"size:4;not null" json:"year"`
	SerialNumber string    `gorm:"size:128" json:"serial_number"`
	PhotoPath    string    `json:"photo_path"`
	Observations string    `json:"observations"`
	CreatedAt    time.Time `gorm:"not null" json:"-"`
}

// Kind implements Record.
func (m *Machine) Kind() Kind { return KindMachine }

// RecordID implements Record.
func (m *Machine) RecordID() string { return m.ID }

// SetRecordID implements Record.
func (m *Machine) SetRecordID(id string) { m.ID = id }

// Row returns the values in table column order.
func (m *Machine) Row() []string {
	return []string{m.ID, m.CustomerID, m.Brand, m.Model, m.Year, m.SerialNumber, m.PhotoPath, m.Observations}
}

// Field returns the value stored under a column header.
func (m *Machine) Field(column string) string {
	return fieldAt(machineColumns, m.Row(), column)
}

// Label is the "Brand (Model)" text shown when picking a machine.
func (m *Machine) Label() string {
	return fmt.Sprintf("%s (%s)", m.Brand, m.Model)
}

func machineFromRow(v map[string]string) *Machine {
	return &Machine{
		ID:           v["ID"],
		CustomerID:   v[ColCustomerID],
		Brand:        v["Brand"],
		Model:        v["Model"],
		Year:         v["Year"],
		SerialNumber: v["Serial Number"],
		PhotoPath:    v["Photo Path"],
		Observations: v["Observations"],
	}
}
