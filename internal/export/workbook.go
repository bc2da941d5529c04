// Package export renders the record tables as a spreadsheet for the office.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"service-logger-backend/internal/model"
)

// Sheet names, in workbook order.
const (
	SheetJobs      = "All Jobs"
	SheetCustomers = "All Customers"
	SheetMachines  = "All Machines"
)

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook builds one sheet per table with a bold header row.
func Workbook(customers []*model.Customer, machines []*model.Machine, jobs []*model.Job) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetJobs); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetCustomers, SheetMachines} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	tables := []struct {
		sheet string
		kind  model.Kind
		rows  [][]string
	}{
		{SheetJobs, model.KindJob, rowsOf(jobs)},
		{SheetCustomers, model.KindCustomer, rowsOf(customers)},
		{SheetMachines, model.KindMachine, rowsOf(machines)},
	}
	for _, t := range tables {
		if err := writeSheet(f, t.sheet, model.Columns(t.kind), t.rows, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", t.sheet, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 22)
}

func rowsOf[T model.Record](recs []T) [][]string {
	out := make([][]string, len(recs))
	for i, r := range recs {
		out[i] = r.Row()
	}
	return out
}
