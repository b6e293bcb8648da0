package archive

import (
	"sort"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/domain/attendance"
	"github.com/iza-pos/pos-backend-go/internal/domain/order"
)

const topProductsCap = 10

// AggregateSales derives the sales summary from raw orders. Orders without
// line items still count toward order totals and revenue; they just
// contribute nothing to the product ranking.
func AggregateSales(orders []order.Order) archive.SalesAggregate {
	if orders == nil {
		orders = []order.Order{}
	}

	summary := archive.SalesSummary{
		TotalOrders:    len(orders),
		PaymentMethods: make(map[string]int),
		OrderTypes:     make(map[string]int),
		TopProducts:    []archive.ProductSales{},
	}

	productTotals := make(map[string]*archive.ProductSales)

	for _, o := range orders {
		summary.TotalRevenue += o.Total
		summary.PaymentMethods[keyOrUnknown(o.PaymentMethod)]++
		summary.OrderTypes[keyOrUnknown(o.OrderType)]++

		for _, it := range o.Items {
			p, ok := productTotals[it.ProductName]
			if !ok {
				p = &archive.ProductSales{Name: it.ProductName}
				productTotals[it.ProductName] = p
			}
			p.Quantity += it.Quantity
			p.Revenue += it.Subtotal
		}
	}

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	products := make([]archive.ProductSales, 0, len(productTotals))
	for _, p := range productTotals {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Name < products[j].Name
	})
	if len(products) > topProductsCap {
		products = products[:topProductsCap]
	}
	summary.TopProducts = products

	return archive.SalesAggregate{Orders: orders, Summary: summary}
}

func keyOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return "Unknown"
	}
	return *s
}

// AggregateAttendance groups attendance rows per staff member. Hours only
// accumulate for rows where both clock-in and clock-out exist; a row with a
// missing clock-out still counts as a day present.
func AggregateAttendance(records []attendance.Record) archive.AttendanceAggregate {
	if records == nil {
		records = []attendance.Record{}
	}

	byStaff := make(map[string]*archive.StaffMetric)

	for _, rec := range records {
		m, ok := byStaff[rec.StaffID]
		if !ok {
			m = &archive.StaffMetric{StaffID: rec.StaffID, Name: rec.StaffName}
			byStaff[rec.StaffID] = m
		}

		m.TotalDays++
		if rec.Status == attendance.StatusLate {
			m.LateCount++
		}
		if rec.ClockIn != nil && rec.ClockOut != nil {
			m.TotalHours += rec.ClockOut.Sub(*rec.ClockIn).Hours()
		}
	}

	metrics := make([]archive.StaffMetric, 0, len(byStaff))
	for _, m := range byStaff {
		metrics = append(metrics, *m)
	}
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})

	return archive.AttendanceAggregate{
		Attendance: records,
		Summary: archive.AttendanceSummary{
			TotalRecords: len(records),
			StaffMetrics: metrics,
		},
	}
}

// EmptyAttendanceAggregate is what a degraded attendance fetch reports.
func EmptyAttendanceAggregate() archive.AttendanceAggregate {
	return archive.AttendanceAggregate{
		Attendance: []attendance.Record{},
		Summary: archive.AttendanceSummary{
			TotalRecords: 0,
			StaffMetrics: []archive.StaffMetric{},
		},
	}
}

const metadataVersion = "1.0"

// BuildMetadata folds the fetched categories into the archive summary
// record persisted alongside the export files.
func BuildMetadata(period archive.Period, types []archive.Category, data archive.FetchedData, generatedBy string, now time.Time) archive.Metadata {
	meta := archive.Metadata{
		ArchiveID:   ArchiveIDFor(period),
		GeneratedAt: now,
		Period:      period,
		GeneratedBy: generatedBy,
		Version:     metadataVersion,
	}

	for _, c := range types {
		meta.DataTypes = append(meta.DataTypes, string(c))
	}

	if containsCategory(types, archive.CategoryActivityLogs) {
		n := len(data.Activities)
		meta.TotalRecords.Activities = &n
	}
	if data.Sales != nil {
		n := data.Sales.Summary.TotalOrders
		meta.TotalRecords.Orders = &n
		revenue := data.Sales.Summary.TotalRevenue
		meta.KeyMetrics.TotalRevenue = &revenue
		orders := data.Sales.Summary.TotalOrders
		meta.KeyMetrics.TotalOrders = &orders
	}
	if data.Attendance != nil {
		n := data.Attendance.Summary.TotalRecords
		meta.TotalRecords.Attendance = &n
		staff := len(data.Attendance.Summary.StaffMetrics)
		meta.KeyMetrics.ActiveStaff = &staff
	}

	return meta
}

func containsCategory(types []archive.Category, c archive.Category) bool {
	for _, t := range types {
		if t == c {
			return true
		}
	}
	return false
}
