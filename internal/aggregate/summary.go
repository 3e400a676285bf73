// Package aggregate folds a filtered record set into the dashboard views:
// headline totals, group-by rankings, progress against plan and revenue
// trend. Every function is pure and deterministic.
package aggregate

import (
	"github.com/gyeh/hisdash/internal/model"
)

// Summarize computes the headline statistics. Outcome ratios are listed in
// the order outcomes are first seen. An empty set yields zero values and an
// empty, non-nil ratio slice.
func Summarize(records []model.Record) model.Summary {
	s := model.Summary{OutcomeRatios: []model.NameValue{}}
	if len(records) == 0 {
		return s
	}

	patients := make(map[string]struct{})
	outcomeIdx := make(map[string]int)
	var days int
	for i := range records {
		r := &records[i]
		patients[r.PatientID] = struct{}{}
		s.TotalCost += r.Amount
		days += r.StayDays

		outcome := r.Outcome
		if outcome == "" {
			outcome = model.Other
		}
		if j, ok := outcomeIdx[outcome]; ok {
			s.OutcomeRatios[j].Value++
		} else {
			outcomeIdx[outcome] = len(s.OutcomeRatios)
			s.OutcomeRatios = append(s.OutcomeRatios, model.NameValue{Name: outcome, Value: 1})
		}
	}

	s.TotalRecords = len(records)
	s.TotalPatients = len(patients)
	s.AvgDays = safeDiv(float64(days), float64(len(records)))
	s.AvgCostPerPatient = safeDiv(s.TotalCost, float64(s.TotalPatients))
	return s
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
