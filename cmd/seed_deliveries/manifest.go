package main

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"pod-portal/internal/model"
)

// manifestHeader is the expected first row of a route sheet. Column
// order is fixed; dispatch exports it this way.
var manifestHeader = []string{"Reference ID", "Consignee", "Destination Address"}

// readManifest parses the first sheet of an .xlsx route manifest into
// expected-delivery rows. Blank reference cells are skipped.
func readManifest(path, batchID string) ([]model.ExpectedDelivery, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	var deliveries []model.ExpectedDelivery
	for _, row := range rows[1:] {
		ref := cell(row, 0)
		if ref == "" {
			continue
		}
		deliveries = append(deliveries, model.ExpectedDelivery{
			BatchID:            batchID,
			ReferenceID:        ref,
			ConsigneeName:      cell(row, 1),
			DestinationAddress: cell(row, 2),
			Status:             "PENDING",
		})
	}
	return deliveries, nil
}

func checkHeader(row []string) error {
	for i, want := range manifestHeader {
		if !strings.EqualFold(cell(row, i), want) {
			return fmt.Errorf("unexpected header %q in column %d, want %q", cell(row, i), i+1, want)
		}
	}
	return nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
