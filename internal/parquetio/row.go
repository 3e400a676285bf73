package parquetio

import (
	"time"

	"github.com/gyeh/hisdash/internal/model"
)

// SnapshotRow is the Parquet layout of a canonical record. Timestamps are
// stored as UTC epoch milliseconds.
type SnapshotRow struct {
	PatientID          string  `parquet:"patient_id"`
	CaseID             string  `parquet:"case_id"`
	AdmissionNo        string  `parquet:"admission_no"`
	PatientClass       string  `parquet:"patient_class"`
	AdmittedAt         int64   `parquet:"admitted_at,timestamp(millisecond)"`
	DeptEnteredAt      int64   `parquet:"dept_entered_at,timestamp(millisecond)"`
	DischargedAt       int64   `parquet:"discharged_at,timestamp(millisecond)"`
	PaidAt             int64   `parquet:"paid_at,timestamp(millisecond)"`
	Department         string  `parquet:"department"`
	OrderingDeptCode   string  `parquet:"ordering_dept_code"`
	Doctor             string  `parquet:"doctor"`
	DoctorCode         string  `parquet:"doctor_code"`
	Diagnosis          string  `parquet:"diagnosis"`
	DiseaseCode        string  `parquet:"disease_code"`
	SecondaryDiagnosis string  `parquet:"secondary_diagnosis"`
	ServiceGroup       string  `parquet:"service_group"`
	Service            string  `parquet:"service"`
	Amount             float64 `parquet:"amount"`
	Outcome            string  `parquet:"outcome"`
	DischargeStatus    string  `parquet:"discharge_status"`
	StayDays           int32   `parquet:"stay_days"`
}

// FromRecord converts a canonical record to its Parquet row.
func FromRecord(r *model.Record) SnapshotRow {
	return SnapshotRow{
		PatientID:          r.PatientID,
		CaseID:             r.CaseID,
		AdmissionNo:        r.AdmissionNo,
		PatientClass:       r.PatientClass,
		AdmittedAt:         r.AdmittedAt.UnixMilli(),
		DeptEnteredAt:      r.DeptEnteredAt.UnixMilli(),
		DischargedAt:       r.DischargedAt.UnixMilli(),
		PaidAt:             r.PaidAt.UnixMilli(),
		Department:         r.Department,
		OrderingDeptCode:   r.OrderingDeptCode,
		Doctor:             r.Doctor,
		DoctorCode:         r.DoctorCode,
		Diagnosis:          r.Diagnosis,
		DiseaseCode:        r.DiseaseCode,
		SecondaryDiagnosis: r.SecondaryDiagnosis,
		ServiceGroup:       r.ServiceGroup,
		Service:            r.Service,
		Amount:             r.Amount,
		Outcome:            r.Outcome,
		DischargeStatus:    r.DischargeStatus,
		StayDays:           int32(r.StayDays),
	}
}

// Record converts the row back, placing timestamps in loc (UTC when nil).
func (s *SnapshotRow) Record(loc *time.Location) model.Record {
	if loc == nil {
		loc = time.UTC
	}
	ts := func(ms int64) time.Time { return time.UnixMilli(ms).In(loc) }
	return model.Record{
		PatientID:          s.PatientID,
		CaseID:             s.CaseID,
		AdmissionNo:        s.AdmissionNo,
		PatientClass:       s.PatientClass,
		AdmittedAt:         ts(s.AdmittedAt),
		DeptEnteredAt:      ts(s.DeptEnteredAt),
		DischargedAt:       ts(s.DischargedAt),
		PaidAt:             ts(s.PaidAt),
		Department:         s.Department,
		OrderingDeptCode:   s.OrderingDeptCode,
		Doctor:             s.Doctor,
		DoctorCode:         s.DoctorCode,
		Diagnosis:          s.Diagnosis,
		DiseaseCode:        s.DiseaseCode,
		SecondaryDiagnosis: s.SecondaryDiagnosis,
		ServiceGroup:       s.ServiceGroup,
		Service:            s.Service,
		Amount:             s.Amount,
		Outcome:            s.Outcome,
		DischargeStatus:    s.DischargeStatus,
		StayDays:           int(s.StayDays),
	}
}
