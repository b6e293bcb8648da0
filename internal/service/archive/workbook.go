package archive

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
)

// BuildSalesWorkbook renders the month's sales as an xlsx workbook with a
// summary sheet, the raw orders, and the product ranking.
func BuildSalesWorkbook(agg archive.SalesAggregate, period archive.Period, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to set up workbook: %w", err)
	}

	s := agg.Summary
	summaryRows := [][]interface{}{
		{"Sales Report"},
		{"Period", PeriodLabel(period)},
		{"Generated", generatedAt.Format(time.RFC3339)},
		{},
		{"Total Orders", s.TotalOrders},
		{"Total Revenue", s.TotalRevenue},
		{"Average Order Value", s.AvgOrderValue},
		{},
		{"Payment Methods"},
	}
	for method, count := range s.PaymentMethods {
		summaryRows = append(summaryRows, []interface{}{method, count})
	}
	summaryRows = append(summaryRows, []interface{}{}, []interface{}{"Order Types"})
	for orderType, count := range s.OrderTypes {
		summaryRows = append(summaryRows, []interface{}{orderType, count})
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	const ordersSheet = "Orders"
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	orderRows := [][]interface{}{
		{"Order Number", "Created", "Payment Method", "Order Type", "Status", "Total"},
	}
	for _, o := range agg.Orders {
		orderRows = append(orderRows, []interface{}{
			o.OrderNumber,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			keyOrUnknown(o.PaymentMethod),
			keyOrUnknown(o.OrderType),
			o.Status,
			o.Total,
		})
	}
	if err := writeRows(f, ordersSheet, orderRows); err != nil {
		return nil, err
	}

	const productsSheet = "Top Products"
	if _, err := f.NewSheet(productsSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	productRows := [][]interface{}{
		{"Product", "Quantity", "Revenue"},
	}
	for _, p := range s.TopProducts {
		productRows = append(productRows, []interface{}{p.Name, p.Quantity, p.Revenue})
	}
	if err := writeRows(f, productsSheet, productRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
