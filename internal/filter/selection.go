package filter

import (
	"time"
)

// Selection is the facet state supplied by the caller. Categorical facets are
// multi-select; an empty slice or the "all" sentinel selects everything.
type Selection struct {
	Period         Period   `yaml:"period" json:"period"`
	From           string   `yaml:"from" json:"from,omitempty"`
	To             string   `yaml:"to" json:"to,omitempty"`
	Departments    []string `yaml:"departments" json:"departments,omitempty"`
	Doctors        []string `yaml:"doctors" json:"doctors,omitempty"`
	PatientClasses []string `yaml:"patient_classes" json:"patient_classes,omitempty"`
	ServiceGroups  []string `yaml:"service_groups" json:"service_groups,omitempty"`
}

// Resolve computes the selection's time window against now.
func (s Selection) Resolve(now time.Time) (Window, error) {
	return ResolvePeriod(s.Period, now, s.From, s.To)
}

// Predicate compiles the categorical facets plus the already-resolved window
// into a single predicate.
func (s Selection) Predicate(w Window) Predicate {
	return And(
		w.Predicate(),
		In(Department, s.Departments),
		In(Doctor, s.Doctors),
		In(PatientClass, s.PatientClasses),
		In(ServiceGroup, s.ServiceGroups),
	)
}
