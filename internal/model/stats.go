package model

// Stats is the audit trail of one pipeline run. Counters only ever
// increase; a run owns exactly one Stats value and it is read-only once
// the run completes.
type Stats struct {
	Total             int `json:"total"`
	Valid             int `json:"valid"`
	Invalid           int `json:"invalid"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	FieldsCleaned     int `json:"fields_cleaned"`
}

// Delta is the contribution of a single stage to the run stats.
type Delta struct {
	Total             int
	Valid             int
	Invalid           int
	DuplicatesRemoved int
	FieldsCleaned     int
}

// Apply accumulates a stage delta into the run stats.
func (s *Stats) Apply(d Delta) {
	s.Total += d.Total
	s.Valid += d.Valid
	s.Invalid += d.Invalid
	s.DuplicatesRemoved += d.DuplicatesRemoved
	s.FieldsCleaned += d.FieldsCleaned
}
