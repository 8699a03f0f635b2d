// Package reports renders report rows as xlsx workbooks.
package reports

import (
	"billing-admin/models"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName       = "Sheet1"
)

func newWorkbook(headings []string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	for col, h := range headings {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}

func ClientTotalsWorkbook(list []models.ClientTotalPaid) (*excelize.File, error) {
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		rows = append(rows, []any{r.ClientID, r.FullName, r.TotalPaid.InexactFloat64()})
	}
	return newWorkbook([]string{"ClientID", "FullName", "TotalPaid"}, rows)
}

func PlatformTotalsWorkbook(list []models.PlatformTotals) (*excelize.File, error) {
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		rows = append(rows, []any{r.PlatformID, r.PlatformName, r.TotalTransactions, r.TotalAmount.InexactFloat64()})
	}
	return newWorkbook([]string{"PlatformID", "PlatformName", "TotalTransactions", "TotalAmount"}, rows)
}
