// Package export renders financial data as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/xuri/excelize/v2"
)

const (
	entriesSheet = "Entries"
	summarySheet = "Summary"
)

var entryHeader = []any{"Date", "Type", "Amount", "Category", "Notes"}

// MonthlyWorkbook writes a month's entries and totals to an .xlsx workbook
func MonthlyWorkbook(month string, entries []*finance.Entry, totals finance.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), entriesSheet); err != nil {
		return nil, err
	}
	if err := writeEntries(f, entries, totals); err != nil {
		return nil, err
	}
	if err := writeSummary(f, month, totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeEntries(f *excelize.File, entries []*finance.Entry, totals finance.Totals) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(entriesSheet, "A1", &entryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(entriesSheet, "A1", "E1", bold); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{e.Date, string(e.Type), e.Amount.InexactFloat64(), e.Category, e.Notes}
		if err := f.SetSheetRow(entriesSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	// blank spacer row, then totals
	row++
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Total revenue", totals.Revenue.InexactFloat64()},
		{"Total expenses", totals.Expenses.InexactFloat64()},
		{"Net profit", totals.NetProfit.InexactFloat64()},
	} {
		label, _ := excelize.CoordinatesToCellName(2, row)
		amount, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellValue(entriesSheet, label, line.label); err != nil {
			return err
		}
		if err := f.SetCellValue(entriesSheet, amount, line.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(entriesSheet, label, label, bold); err != nil {
			return err
		}
		row++
	}

	last, _ := excelize.CoordinatesToCellName(3, row)
	if err := f.SetCellStyle(entriesSheet, "C2", last, money); err != nil {
		return err
	}
	if err := f.SetColWidth(entriesSheet, "A", "B", 14); err != nil {
		return err
	}
	return f.SetColWidth(entriesSheet, "D", "E", 30)
}

func writeSummary(f *excelize.File, month string, totals finance.Totals) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Month", month},
		{"Revenue", totals.Revenue.InexactFloat64()},
		{"Expenses", totals.Expenses.InexactFloat64()},
		{"Net profit", totals.NetProfit.InexactFloat64()},
		{"Profit margin %", totals.Margin.Round(2).InexactFloat64()},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
