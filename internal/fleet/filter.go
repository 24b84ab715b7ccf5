package fleet

// StatusFilter selects which subset of a category listing is visible.
type StatusFilter int

const (
	// FilterAll shows every record.
	FilterAll StatusFilter = iota
	// FilterAvailable shows only rentable units.
	FilterAvailable
	// FilterInUse shows only units on rent.
	FilterInUse
	// FilterMaintenance shows only units pulled for service.
	FilterMaintenance
)

// String returns the display label for the filter.
func (f StatusFilter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterAvailable:
		return "Available"
	case FilterInUse:
		return "In-Use"
	case FilterMaintenance:
		return "Maintenance"
	default:
		return "All"
	}
}

// status returns the Status a non-All filter matches against.
func (f StatusFilter) status() Status {
	switch f {
	case FilterAvailable:
		return StatusAvailable
	case FilterInUse:
		return StatusInUse
	case FilterMaintenance:
		return StatusMaintenance
	default:
		return StatusUnknown
	}
}

// Project returns the stable-order subsequence of records whose status
// matches the filter. FilterAll returns records unchanged. The input slice
// is never mutated; callers may hold the result across renders.
func Project(records []EquipmentRecord, filter StatusFilter) []EquipmentRecord {
	if filter == FilterAll {
		return records
	}

	want := filter.status()
	out := make([]EquipmentRecord, 0, len(records))
	for _, r := range records {
		if r.Status() == want {
			out = append(out, r)
		}
	}
	return out
}
