package aggregate

import (
	"math"
	"sort"

	"github.com/gyeh/hisdash/internal/model"
)

// KeyFunc selects the grouping key of a record.
type KeyFunc func(r *model.Record) string

// Grouping keys.
var (
	ByDepartment   KeyFunc = func(r *model.Record) string { return r.Department }
	ByDoctor       KeyFunc = func(r *model.Record) string { return r.Doctor }
	ByDisease      KeyFunc = func(r *model.Record) string { return r.DiseaseCode }
	ByService      KeyFunc = func(r *model.Record) string { return r.Service }
	ByServiceGroup KeyFunc = func(r *model.Record) string { return r.ServiceGroup }
	ByPatientClass KeyFunc = func(r *model.Record) string { return r.PatientClass }
)

// Order sorts groups. It must be a strict weak ordering that is total over
// distinct keys so results are deterministic.
type Order func(a, b *model.Group) bool

// ByCostDesc orders revenue views: total cost descending, then count
// descending, then key ascending.
func ByCostDesc(a, b *model.Group) bool {
	if a.TotalCost != b.TotalCost {
		return a.TotalCost > b.TotalCost
	}
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Key < b.Key
}

// ByCountDesc orders frequency views: count descending, then total cost
// descending, then key ascending.
func ByCountDesc(a, b *model.Group) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	if a.TotalCost != b.TotalCost {
		return a.TotalCost > b.TotalCost
	}
	return a.Key < b.Key
}

type accumulator struct {
	group     model.Group
	days      int
	patients  map[string]struct{}
	diagnosis string // diagnosis text of the first record
	code      string // first non-empty doctor code
	dept      string // first department
}

// GroupBy aggregates records per distinct key and sorts the groups with
// order (ByCostDesc when nil). Records with an empty key are grouped under
// model.Unnamed so group totals always add up to the summary.
func GroupBy(records []model.Record, key KeyFunc, order Order) []model.Group {
	return finish(accumulate(records, key), order, nil)
}

// Diseases groups by disease code, most frequent first. Each group is
// labelled with the diagnosis text of the first record seen for the code, or
// the "unknown" label when that text is empty. Average cost is rounded to
// whole currency units.
func Diseases(records []model.Record) []model.Group {
	return finish(accumulate(records, ByDisease), ByCountDesc, func(g *model.Group, acc *accumulator) {
		g.AvgCost = math.Round(g.AvgCost)
		g.Label = acc.diagnosis
		if g.Label == "" {
			g.Label = model.UnknownDisease
		}
	})
}

// Doctors groups by doctor name, highest revenue first. Each group carries
// the first doctor code and department seen for the doctor.
func Doctors(records []model.Record) []model.Group {
	return finish(accumulate(records, ByDoctor), ByCostDesc, func(g *model.Group, acc *accumulator) {
		g.Code = acc.code
		g.Department = acc.dept
	})
}

func accumulate(records []model.Record, key KeyFunc) []*accumulator {
	byKey := make(map[string]*accumulator)
	var out []*accumulator

	for i := range records {
		r := &records[i]
		k := key(r)
		if k == "" {
			k = model.Unnamed
		}
		acc, ok := byKey[k]
		if !ok {
			acc = &accumulator{
				group:     model.Group{Key: k},
				patients:  make(map[string]struct{}),
				diagnosis: r.Diagnosis,
				dept:      r.Department,
			}
			byKey[k] = acc
			out = append(out, acc)
		}
		acc.group.Count++
		acc.group.TotalCost += r.Amount
		acc.days += r.StayDays
		acc.patients[r.PatientID] = struct{}{}
		if acc.code == "" {
			acc.code = r.DoctorCode
		}
	}
	return out
}

func finish(accs []*accumulator, order Order, decorate func(*model.Group, *accumulator)) []model.Group {
	if order == nil {
		order = ByCostDesc
	}
	out := make([]model.Group, 0, len(accs))
	for _, acc := range accs {
		g := acc.group
		g.Patients = len(acc.patients)
		g.AvgCost = safeDiv(g.TotalCost, float64(g.Count))
		g.AvgDays = safeDiv(float64(acc.days), float64(g.Count))
		if decorate != nil {
			decorate(&g, acc)
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return order(&out[i], &out[j]) })
	return out
}

// Top truncates groups to the first n. n <= 0 keeps all of them.
func Top(groups []model.Group, n int) []model.Group {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}
