package normalize

// aliases lists the accepted source headers for each canonical field, in lookup
// order. The canonical header always comes first. Headers that only differ by
// case, diacritics or separators do not need their own entry: the folded
// lookup already matches "Mã BN", "ma-bn" and "MA BN" against "MA_BN".
var aliases = map[string][]string{
	"PatientID":          {"MA_BN", "MABN", "Mã bệnh nhân", "Patient ID", "PID"},
	"CaseID":             {"MA_BA", "MABA", "Mã bệnh án", "Case ID"},
	"AdmissionNo":        {"SO_VAO_VIEN", "SOVAOVIEN", "Admission No", "Admission Number"},
	"PatientClass":       {"DOI_TUONG", "DOITUONG", "Patient Class", "Patient Type"},
	"AdmittedAt":         {"NGAY_VAO_VIEN", "NGAYVAOVIEN", "Ngày vào", "Admission Date", "Admitted At"},
	"DeptEnteredAt":      {"NGAY_VAO_KHOA", "NGAYVAOKHOA", "Department Entry Date"},
	"DischargedAt":       {"NGAY_RA_VIEN", "NGAYRAVIEN", "Ngày ra", "Discharge Date", "Discharged At"},
	"PaidAt":             {"NGAY_THANH_TOAN", "NGAYTHANHTOAN", "Ngày TT", "Payment Date", "Paid At"},
	"Department":         {"KHOA", "Khoa phòng", "Tên khoa", "Department", "Dept"},
	"OrderingDeptCode":   {"MA_KHOA_CHI_DINH", "MAKHOACHIDINH", "Mã khoa", "Ordering Department Code"},
	"Doctor":             {"BAC_SY", "BACSY", "Bác sỹ", "Tên bác sĩ", "Doctor", "Physician"},
	"DoctorCode":         {"MA_BAC_SY", "MABACSY", "Mã BS", "Doctor Code", "Doctor ID"},
	"Diagnosis":          {"CHAN_DOAN", "CHANDOAN", "Chẩn đoán chính", "Diagnosis"},
	"DiseaseCode":        {"MA_BENH", "MABENH", "ICD10", "ICD-10", "ICD", "Disease Code"},
	"SecondaryDiagnosis": {"CHAN_DOAN_KHAC", "CHANDOANKHAC", "Chẩn đoán phụ", "Secondary Diagnosis"},
	"ServiceGroup":       {"TEN_NHOM", "TENNHOM", "Nhóm dịch vụ", "Nhóm", "Service Group"},
	"Service":            {"DICH_VU", "DICHVU", "Tên dịch vụ", "Service", "Service Name"},
	"Amount":             {"THANH_TIEN", "THANHTIEN", "Số tiền", "Chi phí", "Amount", "Cost"},
	"Outcome":            {"KET_QUA_DTRI", "KETQUADTRI", "Kết quả điều trị", "Kết quả", "Outcome"},
	"DischargeStatus":    {"TINH_TRANG_RV", "TINHTRANGRV", "Tình trạng ra viện", "Discharge Status"},
	"StayDays":           {"SO_NGAY_DTRI", "SONGAYDTRI", "Số ngày điều trị", "Ngày điều trị", "Length of Stay", "LOS"},
}

// Aliases returns the accepted headers for a canonical field name.
func Aliases(field string) []string {
	out := make([]string, len(aliases[field]))
	copy(out, aliases[field])
	return out
}
