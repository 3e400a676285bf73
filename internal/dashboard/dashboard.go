// Package dashboard holds the explicit application state of a dashboard
// session and derives every view from it on demand.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/gyeh/hisdash/internal/aggregate"
	"github.com/gyeh/hisdash/internal/filter"
	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/targets"
)

// Limits are the presentation truncations applied after full aggregation.
type Limits struct {
	Departments int `yaml:"departments" json:"departments"`
	Diseases    int `yaml:"diseases" json:"diseases"`
	Doctors     int `yaml:"doctors" json:"doctors"`
	Services    int `yaml:"services" json:"services"`
}

// DefaultLimits are the dashboard's standard top-N sizes.
var DefaultLimits = Limits{Departments: 10, Diseases: 15, Doctors: 5, Services: 10}

// State is everything a view depends on. It is passed by value; Select
// returns a new state rather than mutating the receiver.
type State struct {
	Records   []model.Record
	Selection filter.Selection
	Window    filter.Window
	Plan      targets.Plan
	Limits    Limits
	Trend     aggregate.Bucket
}

// New returns a state over records with no facets applied.
func New(records []model.Record, plan targets.Plan) State {
	return State{Records: records, Plan: plan, Limits: DefaultLimits, Trend: aggregate.Monthly}
}

// Select applies a facet selection, resolving its time window once against now.
func (s State) Select(sel filter.Selection, now time.Time) (State, error) {
	w, err := sel.Resolve(now)
	if err != nil {
		return s, fmt.Errorf("resolve period: %w", err)
	}
	s.Selection = sel
	s.Window = w
	return s, nil
}

// Views are the derived dashboard panels for one state.
type Views struct {
	Window        string             `json:"window"`
	Selection     filter.Selection   `json:"selection"`
	Filtered      []model.Record     `json:"-"`
	Summary       model.Summary      `json:"summary"`
	Departments   []model.Group      `json:"departments"`
	Diseases      []model.Group      `json:"diseases"`
	Doctors       []model.Group      `json:"doctors"`
	Services      []model.Group      `json:"services"`
	ServiceGroups []model.Group      `json:"service_groups"`
	PatientClass  []model.Group      `json:"patient_classes"`
	Trend         []model.TrendPoint `json:"trend"`
	Progress      []model.Progress   `json:"progress"`
}

// Views filters the records and recomputes every panel from scratch.
func (s State) Views() Views {
	filtered := filter.Filter(s.Records, s.Selection.Predicate(s.Window))
	services := aggregate.GroupBy(filtered, aggregate.ByService, aggregate.ByCostDesc)
	departments := aggregate.GroupBy(filtered, aggregate.ByDepartment, aggregate.ByCostDesc)

	return Views{
		Window:        s.Window.String(),
		Selection:     s.Selection,
		Filtered:      filtered,
		Summary:       aggregate.Summarize(filtered),
		Departments:   aggregate.Top(departments, s.Limits.Departments),
		Diseases:      aggregate.Top(aggregate.Diseases(filtered), s.Limits.Diseases),
		Doctors:       aggregate.Top(aggregate.Doctors(filtered), s.Limits.Doctors),
		Services:      aggregate.Top(services, s.Limits.Services),
		ServiceGroups: aggregate.GroupBy(filtered, aggregate.ByServiceGroup, aggregate.ByCostDesc),
		PatientClass:  aggregate.GroupBy(filtered, aggregate.ByPatientClass, aggregate.ByCountDesc),
		Trend:         aggregate.Trend(filtered, s.Trend),
		Progress:      aggregate.PlanProgress(filtered, s.Plan),
	}
}

// ContextText is the assistant summary for the current selection.
func (v Views) ContextText() string {
	return aggregate.ContextText(v.Summary, v.Services, v.Departments)
}

// Facets lists the distinct values of each categorical facet, sorted, for
// building pickers.
type Facets struct {
	Departments    []string `json:"departments"`
	Doctors        []string `json:"doctors"`
	PatientClasses []string `json:"patient_classes"`
	ServiceGroups  []string `json:"service_groups"`
}

// FacetOptions collects the facet values present in records.
func FacetOptions(records []model.Record) Facets {
	return Facets{
		Departments:    distinct(records, filter.Department),
		Doctors:        distinct(records, filter.Doctor),
		PatientClasses: distinct(records, filter.PatientClass),
		ServiceGroups:  distinct(records, filter.ServiceGroup),
	}
}

func distinct(records []model.Record, field func(*model.Record) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range records {
		v := field(&records[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
