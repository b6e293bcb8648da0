package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iza-pos/pos-backend-go/internal/domain/activity"
	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
)

// activityRowCap bounds the printable activity report. The JSON dump always
// carries every row; only the PDF table is truncated.
const activityRowCap = 1000

func newReportPDF(title string, period archive.Period, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Period: "+PeriodLabel(period), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+generatedAt.Format(time.RFC3339), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
}

func tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func pdfBytes(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderActivityReport renders the activity log table, truncated to the
// first activityRowCap rows.
func RenderActivityReport(logs []activity.Log, period archive.Period, generatedAt time.Time) ([]byte, error) {
	pdf := newReportPDF("Activity Log Report", period, generatedAt)

	widths := []float64{35, 30, 35, 30, 20, 127}
	tableHeader(pdf, widths, []string{"Timestamp", "User", "Action", "Category", "Severity", "Description"})

	rows := logs
	if len(rows) > activityRowCap {
		rows = rows[:activityRowCap]
	}
	for _, l := range rows {
		tableRow(pdf, widths, []string{
			l.Timestamp.Format("2006-01-02 15:04:05"),
			truncate(l.UserName, 20),
			truncate(l.Action, 24),
			truncate(l.Category, 20),
			l.Severity,
			truncate(l.Description, 90),
		})
	}
	if len(logs) > activityRowCap {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Showing first %d of %d entries; the JSON export contains the full set.", activityRowCap, len(logs)), "", 1, "L", false, 0, "")
	}

	return pdfBytes(pdf)
}

// RenderSalesReport renders the KPI summary followed by the top products
// table.
func RenderSalesReport(agg archive.SalesAggregate, period archive.Period, generatedAt time.Time) ([]byte, error) {
	pdf := newReportPDF("Sales Report", period, generatedAt)

	s := agg.Summary
	pdf.SetFont("Helvetica", "", 10)
	kpis := []string{
		fmt.Sprintf("Total Orders: %d", s.TotalOrders),
		fmt.Sprintf("Total Revenue: %.2f", s.TotalRevenue),
		fmt.Sprintf("Average Order Value: %.2f", s.AvgOrderValue),
	}
	for _, k := range kpis {
		pdf.CellFormat(0, 6, k, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Top Products", "", 1, "L", false, 0, "")

	widths := []float64{110, 40, 50}
	tableHeader(pdf, widths, []string{"Product", "Quantity", "Revenue"})
	for _, p := range s.TopProducts {
		tableRow(pdf, widths, []string{
			truncate(p.Name, 60),
			fmt.Sprintf("%d", p.Quantity),
			fmt.Sprintf("%.2f", p.Revenue),
		})
	}

	return pdfBytes(pdf)
}

// RenderAttendanceReport renders the per-staff summary table.
func RenderAttendanceReport(agg archive.AttendanceAggregate, period archive.Period, generatedAt time.Time) ([]byte, error) {
	pdf := newReportPDF("Staff Attendance Report", period, generatedAt)

	widths := []float64{80, 35, 35, 45, 40}
	tableHeader(pdf, widths, []string{"Staff", "Days Present", "Late", "Early Departure", "Total Hours"})
	for _, m := range agg.Summary.StaffMetrics {
		tableRow(pdf, widths, []string{
			truncate(m.Name, 45),
			fmt.Sprintf("%d", m.TotalDays),
			fmt.Sprintf("%d", m.LateCount),
			fmt.Sprintf("%d", m.EarlyDeparture),
			fmt.Sprintf("%.2f", m.TotalHours),
		})
	}

	return pdfBytes(pdf)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
