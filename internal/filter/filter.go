// Package filter narrows a canonical record set by facet: payment-date
// window, department, doctor, patient class and service group. Everything
// here is pure; the same inputs always yield the same subsequence.
package filter

import (
	"strings"

	"github.com/gyeh/hisdash/internal/model"
)

// Predicate reports whether a record is retained.
type Predicate func(r *model.Record) bool

// Any matches every record.
func Any(*model.Record) bool { return true }

// And combines predicates conjunctively. With no arguments it matches everything.
func And(preds ...Predicate) Predicate {
	return func(r *model.Record) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records matching pred, preserving their order. The input
// slice is not modified.
func Filter(records []model.Record, pred Predicate) []model.Record {
	if pred == nil {
		pred = Any
	}
	out := make([]model.Record, 0, len(records))
	for i := range records {
		if pred(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// sentinels select every value of a categorical facet.
var sentinels = []string{"all", "Tất cả"}

// IsAll reports whether a facet selection matches everything: it is empty or
// contains the "all" sentinel.
func IsAll(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		v = strings.TrimSpace(v)
		for _, s := range sentinels {
			if strings.EqualFold(v, s) {
				return true
			}
		}
	}
	return false
}

// In builds a categorical predicate: the trimmed field value must be one of
// values, unless the selection is "all".
func In(field func(*model.Record) string, values []string) Predicate {
	if IsAll(values) {
		return Any
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return func(r *model.Record) bool {
		_, ok := set[strings.TrimSpace(field(r))]
		return ok
	}
}

// Field selectors for the categorical facets.
func Department(r *model.Record) string   { return r.Department }
func Doctor(r *model.Record) string       { return r.Doctor }
func PatientClass(r *model.Record) string { return r.PatientClass }
func ServiceGroup(r *model.Record) string { return r.ServiceGroup }
