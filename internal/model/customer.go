package model

import "time"

var customerColumns = []string{"ID", "Company Name", "Contact Name", "Address", "Phone", "Email"}

// Customer is a business that owns one or more coffee machines.
type Customer struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CompanyName string    `gorm:"size:256;not null" json:"company_name"`
	ContactName string    `gorm:"size:256;not null" json:"contact_name"`
	Address     string    `gorm:"not null" json:"address"`
	Phone       string    `gorm:"size:32;not null" json:"phone"`
	Email       string    `gorm:"size:256;not null" json:"email"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
}

// Kind implements Record.
func (c *Customer) Kind() Kind { return KindCustomer }

// RecordID implements Record.
func (c *Customer) RecordID() string { return c.ID }

// SetRecordID implements Record.
func (c *Customer) SetRecordID(id string) { c.ID = id }

// Row returns the values in table column order.
func (c *Customer) Row() []string {
	return []string{c.ID, c.CompanyName, c.ContactName, c.Address, c.Phone, c.Email}
}

// Field returns the value stored under a column header.
func (c *Customer) Field(column string) string {
	return fieldAt(customerColumns, c.Row(), column)
}

func customerFromRow(v map[string]string) *Customer {
	return &Customer{
		ID:          v["ID"],
		CompanyName: v["Company Name"],
		ContactName: v["Contact Name"],
		Address:     v["Address"],
		Phone:       v["Phone"],
		Email:       v["Email"],
	}
}
