package fleet

import (
	"strings"
	"time"
)

// Status is the operational state of a single piece of equipment.
type Status int

const (
	// StatusUnknown is used when the service reports a status this client
	// does not recognize.
	StatusUnknown Status = iota
	// StatusAvailable means the unit is in the yard and rentable.
	StatusAvailable
	// StatusInUse means the unit is on rent at a job site.
	StatusInUse
	// StatusMaintenance means the unit is pulled for service.
	StatusMaintenance
)

// String returns the display label for the status.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusInUse:
		return "In-Use"
	case StatusMaintenance:
		return "Maintenance"
	case StatusUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// ParseStatus normalizes a service-supplied status tag. The service has
// historically emitted "In-Use", "In Use" and "in-use" interchangeably, so
// matching ignores case, dashes, and spaces.
func ParseStatus(raw string) Status {
	norm := strings.ToLower(raw)
	norm = strings.ReplaceAll(norm, "-", "")
	norm = strings.ReplaceAll(norm, " ", "")
	switch norm {
	case "available":
		return StatusAvailable
	case "inuse":
		return StatusInUse
	case "maintenance":
		return StatusMaintenance
	default:
		return StatusUnknown
	}
}

// AlertLevel classifies an equipment alert.
type AlertLevel string

// Alert levels emitted by the service.
const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// Alert is a single operational alert attached to an equipment record.
type Alert struct {
	Level   AlertLevel `json:"Level"`
	Type    string     `json:"Type"`
	Message string     `json:"Message"`
}

// Geofence is the circular boundary assigned to a unit, if any.
type Geofence struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	RadiusKm  float64 `json:"RadiusKm"`
}

// EquipmentRecord is the service's view of one unit. This layer never
// mutates a record; state changes round-trip through the service followed
// by a re-fetch.
type EquipmentRecord struct {
	EquipmentID        string    `json:"EquipmentID"`
	Type               string    `json:"Type"`
	RawStatus          string    `json:"Status"`
	Customer           string    `json:"Customer,omitempty"`
	JobSite            string    `json:"JobSite,omitempty"`
	ExpectedReturnDate string    `json:"ExpectedReturnDate,omitempty"`
	FuelLevel          float64   `json:"FuelLevel"`
	EngineHours        float64   `json:"EngineHours"`
	EngineLoad         float64   `json:"EngineLoad"`
	Latitude           float64   `json:"Latitude"`
	Longitude          float64   `json:"Longitude"`
	Geofence           *Geofence `json:"Geofence,omitempty"`
	Alerts             []Alert   `json:"Alerts,omitempty"`
}

// Status returns the normalized status of the record.
func (r EquipmentRecord) Status() Status {
	return ParseStatus(r.RawStatus)
}

// SummaryRow is one category line of the fleet summary.
type SummaryRow struct {
	Category    string
	Total       int
	Available   int
	InUse       int
	Maintenance int
}

// AvailabilityPrediction is the service's answer to "will this unit be free
// on the requested date".
type AvailabilityPrediction struct {
	Available           bool   `json:"available"`
	PredictedReturnDate string `json:"predictedReturnDate,omitempty"`
}

// PricePrediction is the model-estimated rental price for a duration.
type PricePrediction struct {
	PredictedPrice float64 `json:"predictedPrice"`
}

// BehaviorPoint is one telemetry sample in a behavior-analysis window.
type BehaviorPoint struct {
	Timestamp  string  `json:"Timestamp"`
	EngineLoad float64 `json:"EngineLoad"`
}

// BehaviorAnalysis is the anomaly-detection result for one unit.
type BehaviorAnalysis struct {
	IsAnomaly           bool            `json:"is_anomaly"`
	ReconstructionError float64         `json:"reconstruction_error"`
	Threshold           float64         `json:"threshold"`
	SequenceData        []BehaviorPoint `json:"sequence_data"`
}

// ForecastPoint is one day of the demand forecast. Actual is absent for
// future dates; bounds are absent for historical ones.
type ForecastPoint struct {
	Date       string   `json:"ds"`
	Actual     *float64 `json:"y,omitempty"`
	Predicted  float64  `json:"yhat"`
	LowerBound *float64 `json:"yhat_lower,omitempty"`
	UpperBound *float64 `json:"yhat_upper,omitempty"`
}

// SustainabilityEntry aggregates emissions data for one equipment type.
type SustainabilityEntry struct {
	TotalEngineHours float64 `json:"total_engine_hours"`
	AverageFuelLevel float64 `json:"average_fuel_level"`
	TotalEmissionsKg float64 `json:"total_emissions_kg_co2e"`
}

// ParseDate parses the service's date format (RFC 3339 date portion).
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
