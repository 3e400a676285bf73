package aggregate

import (
	"math"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/targets"
)

// ProgressOf compares an actual value with a plan. A zero or negative plan
// yields 0% and nothing remaining.
func ProgressOf(name string, actual, plan float64) model.Progress {
	p := model.Progress{Name: name, Actual: actual, Plan: plan}
	if plan > 0 {
		p.Percent = actual / plan * 100
		p.Remaining = math.Max(0, plan-actual)
	}
	p.Band = BandOf(p.Percent)
	return p
}

// BandOf classifies a progress percentage.
func BandOf(percent float64) model.Band {
	switch {
	case percent < 50:
		return model.BandLow
	case percent < 80:
		return model.BandMedium
	default:
		return model.BandHigh
	}
}

// PlanProgress measures the records against a plan: facility revenue and
// patients first, then each planned department in name order.
func PlanProgress(records []model.Record, plan targets.Plan) []model.Progress {
	total := Summarize(records)
	out := []model.Progress{
		ProgressOf("revenue", total.TotalCost, plan.Facility.Revenue),
		ProgressOf("patients", float64(total.TotalPatients), plan.Facility.Patients),
	}

	depts := make(map[string]model.Group)
	for _, g := range GroupBy(records, ByDepartment, ByCostDesc) {
		depts[g.Key] = g
	}
	for _, name := range plan.DepartmentNames() {
		goals := plan.Departments[name]
		g := depts[name]
		out = append(out,
			ProgressOf(name+" / revenue", g.TotalCost, goals.Revenue),
			ProgressOf(name+" / patients", float64(g.Patients), goals.Patients),
		)
	}
	return out
}
