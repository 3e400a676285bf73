package model

// FieldKind is the coercion applied to a canonical field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindDate
	KindAmount
	KindDays
)

// Field describes one canonical record field.
type Field struct {
	Name   string // Go field name, e.g. "PatientID"
	Header string // canonical spreadsheet header, e.g. "MA_BN"
	Column string // snapshot/export column name, e.g. "patient_id"
	Kind   FieldKind
}

// Fields lists the canonical record fields in spreadsheet order.
var Fields = []Field{
	{Name: "PatientID", Header: "MA_BN", Column: "patient_id", Kind: KindString},
	{Name: "CaseID", Header: "MA_BA", Column: "case_id", Kind: KindString},
	{Name: "AdmissionNo", Header: "SO_VAO_VIEN", Column: "admission_no", Kind: KindString},
	{Name: "PatientClass", Header: "DOI_TUONG", Column: "patient_class", Kind: KindString},
	{Name: "AdmittedAt", Header: "NGAY_VAO_VIEN", Column: "admitted_at", Kind: KindDate},
	{Name: "DeptEnteredAt", Header: "NGAY_VAO_KHOA", Column: "dept_entered_at", Kind: KindDate},
	{Name: "DischargedAt", Header: "NGAY_RA_VIEN", Column: "discharged_at", Kind: KindDate},
	{Name: "PaidAt", Header: "NGAY_THANH_TOAN", Column: "paid_at", Kind: KindDate},
	{Name: "Department", Header: "KHOA", Column: "department", Kind: KindString},
	{Name: "OrderingDeptCode", Header: "MA_KHOA_CHI_DINH", Column: "ordering_dept_code", Kind: KindString},
	{Name: "Doctor", Header: "BAC_SY", Column: "doctor", Kind: KindString},
	{Name: "DoctorCode", Header: "MA_BAC_SY", Column: "doctor_code", Kind: KindString},
	{Name: "Diagnosis", Header: "CHAN_DOAN", Column: "diagnosis", Kind: KindString},
	{Name: "DiseaseCode", Header: "MA_BENH", Column: "disease_code", Kind: KindString},
	{Name: "SecondaryDiagnosis", Header: "CHAN_DOAN_KHAC", Column: "secondary_diagnosis", Kind: KindString},
	{Name: "ServiceGroup", Header: "TEN_NHOM", Column: "service_group", Kind: KindString},
	{Name: "Service", Header: "DICH_VU", Column: "service", Kind: KindString},
	{Name: "Amount", Header: "THANH_TIEN", Column: "amount", Kind: KindAmount},
	{Name: "Outcome", Header: "KET_QUA_DTRI", Column: "outcome", Kind: KindString},
	{Name: "DischargeStatus", Header: "TINH_TRANG_RV", Column: "discharge_status", Kind: KindString},
	{Name: "StayDays", Header: "SO_NGAY_DTRI", Column: "stay_days", Kind: KindDays},
}

// Headers returns the canonical spreadsheet headers in field order.
func Headers() []string {
	hs := make([]string, len(Fields))
	for i, f := range Fields {
		hs[i] = f.Header
	}
	return hs
}

// Columns returns the snapshot/export column names in field order.
func Columns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Column
	}
	return cols
}
