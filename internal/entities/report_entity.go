package entities

import (
	"strings"
	"time"
)

type ReportKind string

const (
	ReportEquipment   ReportKind = "equipment"
	ReportMaintenance ReportKind = "maintenance"
	ReportInventory   ReportKind = "inventory"
	ReportUsage       ReportKind = "usage"
	ReportCost        ReportKind = "cost"
	ReportPerformance ReportKind = "performance"
	ReportActivity    ReportKind = "activity"
)

var ReportKinds = []ReportKind{
	ReportEquipment, ReportMaintenance, ReportInventory, ReportUsage, ReportCost, ReportPerformance, ReportActivity,
}

func ParseReportKind(raw string) (ReportKind, bool) {
	k := ReportKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ReportKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// TimeSeries kinds are restricted to a date range.
func (k ReportKind) TimeSeries() bool {
	switch k {
	case ReportMaintenance, ReportUsage, ReportCost, ReportPerformance, ReportActivity:
		return true
	}
	return false
}

// ReportRequest is what the caller asked for; dates are optional.
type ReportRequest struct {
	Kind          ReportKind
	DateFrom      *time.Time
	DateTo        *time.Time
	EquipmentType string
	Status        string
}

// ReportFilter is a resolved request: for time-series kinds From and To are always set
// and both bounds are inclusive calendar dates.
type ReportFilter struct {
	Kind          ReportKind
	From          time.Time
	To            time.Time
	EquipmentType string
	Status        string
}

// Report is the assembled data: rows are field-name keyed, in query order.
type Report struct {
	Kind     ReportKind
	Title    string
	DateFrom *time.Time
	DateTo   *time.Time
	Rows     []map[string]any
}
