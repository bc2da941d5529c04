package model

import "fmt"

// Kind names one of the persisted tables.
type Kind string

const (
	KindCustomer Kind = "customers"
	KindMachine  Kind = "machines"
	KindJob      Kind = "jobs"
)

// Kinds lists every table in a stable order.
var Kinds = []Kind{KindCustomer, KindMachine, KindJob}

// Foreign key column names shared by the machine and job tables.
const (
	ColCustomerID = "Customer ID"
	ColMachineID  = "Machine ID"
)

// Record is a single row of one of the tables.
type Record interface {
	Kind() Kind
	RecordID() string
	SetRecordID(id string)
	// Row returns the record's values in Columns(Kind()) order.
	Row() []string
	// Field returns the value stored under a column header.
	Field(column string) string
}

// Columns returns the fixed header of a table.
func Columns(kind Kind) []string {
	switch kind {
	case KindCustomer:
		return append([]string(nil), customerColumns...)
	case KindMachine:
		return append([]string(nil), machineColumns...)
	case KindJob:
		return append([]string(nil), jobColumns...)
	}
	return nil
}

// New returns an empty record of the given kind.
func New(kind Kind) (Record, error) {
	switch kind {
	case KindCustomer:
		return &Customer{}, nil
	case KindMachine:
		return &Machine{}, nil
	case KindJob:
		return &Job{}, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// FromRow builds a record from a header-keyed row. Missing columns are left empty.
func FromRow(kind Kind, values map[string]string) (Record, error) {
	switch kind {
	case KindCustomer:
		return customerFromRow(values), nil
	case KindMachine:
		return machineFromRow(values), nil
	case KindJob:
		return jobFromRow(values)
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func fieldAt(columns, row []string, column string) string {
	for i, c := range columns {
		if c == column && i < len(row) {
			return row[i]
		}
	}
	return ""
}
