package model

import "time"

// NameValue is one slice of a histogram, e.g. an outcome and its record count.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary holds the headline statistics of a filtered record set.
type Summary struct {
	TotalPatients     int         `json:"total_patients"`
	TotalRecords      int         `json:"total_records"`
	TotalCost         float64     `json:"total_cost"`
	AvgDays           float64     `json:"avg_days"`
	AvgCostPerPatient float64     `json:"avg_cost_per_patient"`
	OutcomeRatios     []NameValue `json:"outcome_ratios"`
}

// Group is one row of a group-by view (department, doctor, disease code, service...).
type Group struct {
	Key        string  `json:"key"`
	Label      string  `json:"label,omitempty"`      // disease: diagnosis text
	Code       string  `json:"code,omitempty"`       // doctor: doctor code
	Department string  `json:"department,omitempty"` // doctor: first-seen department
	Count      int     `json:"count"`
	Patients   int     `json:"patients"`
	TotalCost  float64 `json:"total_cost"`
	AvgCost    float64 `json:"avg_cost"`
	AvgDays    float64 `json:"avg_days"`
}

// Band classifies a progress percentage for display.
type Band string

const (
	BandLow    Band = "low"    // < 50%
	BandMedium Band = "medium" // 50% to < 80%
	BandHigh   Band = "high"   // >= 80%
)

// Progress compares an actual value against a planned target.
type Progress struct {
	Name      string  `json:"name"`
	Actual    float64 `json:"actual"`
	Plan      float64 `json:"plan"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	Band      Band    `json:"band"`
}

// TrendPoint is one bucket of a revenue time series.
type TrendPoint struct {
	Period    string    `json:"period"` // "2024-03" or "2024-03-15"
	Start     time.Time `json:"start"`
	Count     int       `json:"count"`
	TotalCost float64   `json:"total_cost"`
}
