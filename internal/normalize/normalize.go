package normalize

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/gyeh/hisdash/internal/model"
)

// Options tune record normalization.
type Options struct {
	// ClampNegativeAmounts turns refunds and adjustments into 0 instead of
	// keeping them negative.
	ClampNegativeAmounts bool
	Location             *time.Location
	Now                  func() time.Time
}

// Normalizer maps raw spreadsheet rows to canonical records. It is safe for
// concurrent use.
type Normalizer struct {
	opts      Options
	dates     DateParser
	fallbacks atomic.Int64
}

// New returns a Normalizer with the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{
		opts:  opts,
		dates: DateParser{Location: opts.Location, Now: opts.Now},
	}
}

// Fallbacks returns how many non-empty date cells could not be parsed and
// were replaced by the current time.
func (n *Normalizer) Fallbacks() int64 {
	return n.fallbacks.Load()
}

// Record normalizes one raw row. Every field of the result is populated,
// missing text fields get their default label and missing dates get now.
func (n *Normalizer) Record(row model.Row) model.Record {
	idx := foldIndex(row)
	get := func(field string) any {
		if key, ok := lookupKey(row, idx, aliases[field]); ok {
			return row[key]
		}
		return nil
	}

	return model.Record{
		PatientID:    Text(get("PatientID")),
		CaseID:       Text(get("CaseID")),
		AdmissionNo:  Text(get("AdmissionNo")),
		PatientClass: TextOr(get("PatientClass"), model.Unspecified),

		AdmittedAt:    n.date(get("AdmittedAt")),
		DeptEnteredAt: n.date(get("DeptEnteredAt")),
		DischargedAt:  n.date(get("DischargedAt")),
		PaidAt:        n.date(get("PaidAt")),

		Department:       TextOr(get("Department"), model.Unspecified),
		OrderingDeptCode: Text(get("OrderingDeptCode")),
		Doctor:           TextOr(get("Doctor"), model.Anonymous),
		DoctorCode:       Text(get("DoctorCode")),

		Diagnosis:          Text(get("Diagnosis")),
		DiseaseCode:        DiseaseCode(get("DiseaseCode")),
		SecondaryDiagnosis: Text(get("SecondaryDiagnosis")),

		ServiceGroup: TextOr(get("ServiceGroup"), model.Other),
		Service:      Text(get("Service")),
		Amount:       Amount(get("Amount"), n.opts.ClampNegativeAmounts),

		Outcome:         TextOr(get("Outcome"), model.Other),
		DischargeStatus: Text(get("DischargeStatus")),
		StayDays:        Days(get("StayDays")),
	}
}

// Records normalizes a batch of rows in order.
func (n *Normalizer) Records(rows []model.Row) []model.Record {
	out := make([]model.Record, len(rows))
	for i, r := range rows {
		out[i] = n.Record(r)
	}
	return out
}

func (n *Normalizer) date(raw any) time.Time {
	t, ok := n.dates.Parse(raw)
	if ok {
		return t
	}
	if !IsBlank(raw) {
		n.fallbacks.Add(1)
	}
	return n.dates.now()
}

// ResolveHeaders reports which of the given headers each canonical field
// binds to. Fields with no matching header are absent from the result.
func ResolveHeaders(headers []string) map[string]string {
	row := make(model.Row, len(headers))
	for _, h := range headers {
		row[h] = h
	}
	idx := foldIndex(row)

	out := make(map[string]string, len(model.Fields))
	for _, f := range model.Fields {
		if key, ok := lookupKey(row, idx, aliases[f.Name]); ok {
			out[f.Name] = key
		}
	}
	return out
}

// foldIndex maps folded header forms to the row key they came from. When
// several keys fold alike the lexicographically smallest wins.
func foldIndex(row model.Row) map[string]string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := make(map[string]string, len(keys))
	for _, k := range keys {
		f := FoldHeader(k)
		if f == "" {
			continue
		}
		if _, seen := idx[f]; !seen {
			idx[f] = k
		}
	}
	return idx
}

func lookupKey(row model.Row, idx map[string]string, names []string) (string, bool) {
	for _, name := range names {
		if v, ok := row[name]; ok && v != nil {
			return name, true
		}
		if key, ok := idx[FoldHeader(name)]; ok {
			return key, true
		}
	}
	return "", false
}
