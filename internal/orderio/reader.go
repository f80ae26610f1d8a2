// Package orderio reads order files into model.Order values and writes
// packing results back out as the summary, detail, and placement CSVs
// consumed by the external reporting tools (§6).
package orderio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/palletopt/internal/model"
)

// orderColumns is the required header for an order CSV/XLSX, in order.
var orderColumns = []string{"Order", "Product", "Quantity", "Length", "Width", "Height", "Weight"}

// ReadCSV parses an order CSV per §6: one header row followed by one row
// per product-type line, `Order,Product,Quantity,Length,Width,Height,Weight`.
// Rows with fewer than 7 fields are silently skipped. Quantity items are
// materialized with sequential integer ids, scoped per order.
func ReadCSV(r io.Reader) (map[string]model.Order, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("orderio: reading order csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("orderio: empty order file")
	}
	return materializeRows(records[1:]), nil
}

// ReadXLSX parses an order workbook's first sheet with the same column
// contract as ReadCSV.
func ReadXLSX(r io.Reader) (map[string]model.Order, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("orderio: opening order workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("orderio: reading order sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("orderio: empty order workbook")
	}
	return materializeRows(rows[1:]), nil
}

// materializeRows expands each "Quantity" row into that many Items,
// grouping by Order, per §6. A per-order item-id cursor keeps ids unique
// within the order without depending on global state.
func materializeRows(rows [][]string) map[string]model.Order {
	orders := make(map[string]model.Order)
	nextID := make(map[string]int)

	for _, row := range rows {
		if len(row) < len(orderColumns) {
			continue
		}
		orderID := strings.TrimSpace(row[0])
		productID := strings.TrimSpace(row[1])
		qty, errQty := strconv.Atoi(strings.TrimSpace(row[2]))
		length, errL := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		width, errW := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		height, errH := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		weight, errWt := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
		if errQty != nil || errL != nil || errW != nil || errH != nil || errWt != nil {
			continue
		}
		if qty <= 0 || length <= 0 || width <= 0 || height <= 0 || weight <= 0 {
			continue
		}

		order := orders[orderID]
		order.OrderID = orderID
		for i := 0; i < qty; i++ {
			id := nextID[orderID]
			nextID[orderID] = id + 1
			order.Items = append(order.Items, model.Item{
				ProductID: productID,
				ItemID:    id,
				L:         length,
				W:         width,
				H:         height,
				Weight:    weight,
			})
		}
		orders[orderID] = order
	}
	return orders
}
