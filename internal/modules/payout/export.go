package payout

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payouts"

// ExportWorkbook renders payout rows as a spreadsheet, the format the shop
// hands to its accountant.
func ExportWorkbook(rows []PayoutRow, start, end string) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Consignor ID", "Name", "Items", "Net Sales", "Percent",
		"Consignor Value", "Shop Value", "Pix Key", "Period"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	period := fmt.Sprintf("%s to %s", start, end)
	for i, row := range rows {
		values := []interface{}{row.ConsignorID, row.Name, row.Qty, row.TotalNet,
			row.Percent, row.ConsignorValue, row.ShopValue, row.PixKey, period}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}
	return f, nil
}
