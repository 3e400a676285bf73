package model

import "time"

// Default labels for text fields that are missing from a source row. They match
// the values the hospital spreadsheets use themselves.
const (
	Unspecified    = "Chưa xác định" // patient class, department
	Anonymous      = "Ẩn danh"       // doctor
	Other          = "Khác"          // service group, outcome
	NoDiseaseCode  = "N/A"
	UnknownDisease = "Không rõ"  // disease label when the diagnosis text is empty
	Unnamed        = "Không tên" // group key for records with an empty grouping field
)

// Row is one raw spreadsheet row: column header to raw cell value.
type Row map[string]any

// Record is the canonical, fully-defaulted representation of one billing or
// service line. Records are treated as immutable once normalized.
type Record struct {
	PatientID    string `json:"patient_id"`
	CaseID       string `json:"case_id"`
	AdmissionNo  string `json:"admission_no"`
	PatientClass string `json:"patient_class"`

	AdmittedAt    time.Time `json:"admitted_at"`
	DeptEnteredAt time.Time `json:"dept_entered_at"`
	DischargedAt  time.Time `json:"discharged_at"`
	PaidAt        time.Time `json:"paid_at"`

	Department       string `json:"department"`
	OrderingDeptCode string `json:"ordering_dept_code"`
	Doctor           string `json:"doctor"`
	DoctorCode       string `json:"doctor_code"`

	Diagnosis          string `json:"diagnosis"`
	DiseaseCode        string `json:"disease_code"`
	SecondaryDiagnosis string `json:"secondary_diagnosis"`

	ServiceGroup string  `json:"service_group"`
	Service      string  `json:"service"`
	Amount       float64 `json:"amount"`

	Outcome         string `json:"outcome"`
	DischargeStatus string `json:"discharge_status"`
	StayDays        int    `json:"stay_days"`
}

// Row renders the record back into a raw row keyed by canonical headers.
// Normalizing the result yields the same record.
func (r *Record) Row() Row {
	return Row{
		"MA_BN":            r.PatientID,
		"MA_BA":            r.CaseID,
		"SO_VAO_VIEN":      r.AdmissionNo,
		"DOI_TUONG":        r.PatientClass,
		"NGAY_VAO_VIEN":    r.AdmittedAt,
		"NGAY_VAO_KHOA":    r.DeptEnteredAt,
		"NGAY_RA_VIEN":     r.DischargedAt,
		"NGAY_THANH_TOAN":  r.PaidAt,
		"KHOA":             r.Department,
		"MA_KHOA_CHI_DINH": r.OrderingDeptCode,
		"BAC_SY":           r.Doctor,
		"MA_BAC_SY":        r.DoctorCode,
		"CHAN_DOAN":        r.Diagnosis,
		"MA_BENH":          r.DiseaseCode,
		"CHAN_DOAN_KHAC":   r.SecondaryDiagnosis,
		"TEN_NHOM":         r.ServiceGroup,
		"DICH_VU":          r.Service,
		"THANH_TIEN":       r.Amount,
		"KET_QUA_DTRI":     r.Outcome,
		"TINH_TRANG_RV":    r.DischargeStatus,
		"SO_NGAY_DTRI":     r.StayDays,
	}
}

// CopyValues returns the record values in the same order as Columns(),
// suitable for a pgx CopyFromSource.
func (r *Record) CopyValues() []any {
	return []any{
		r.PatientID,
		r.CaseID,
		r.AdmissionNo,
		r.PatientClass,
		r.AdmittedAt,
		r.DeptEnteredAt,
		r.DischargedAt,
		r.PaidAt,
		r.Department,
		r.OrderingDeptCode,
		r.Doctor,
		r.DoctorCode,
		r.Diagnosis,
		r.DiseaseCode,
		r.SecondaryDiagnosis,
		r.ServiceGroup,
		r.Service,
		r.Amount,
		r.Outcome,
		r.DischargeStatus,
		r.StayDays,
	}
}
