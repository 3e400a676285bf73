package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/gyeh/hisdash/internal/filter"
	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/targets"
)

var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func records() []model.Record {
	mar := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 5, 8, 0, 0, 0, time.UTC)
	return []model.Record{
		{PatientID: "1", Department: "Nội", Doctor: "An", DiseaseCode: "I10", Service: "Khám", ServiceGroup: "Khám bệnh", PatientClass: "BHYT", Outcome: "Khỏi", Amount: 100, PaidAt: mar},
		{PatientID: "2", Department: "Nội", Doctor: "Bình", DiseaseCode: "I10", Service: "Xét nghiệm máu", ServiceGroup: "Xét nghiệm", PatientClass: "Dịch vụ", Outcome: "Đỡ", Amount: 300, PaidAt: mar},
		{PatientID: "3", Department: "Ngoại", Doctor: "Chi", DiseaseCode: "K35", Service: "Mổ ruột thừa", ServiceGroup: "Phẫu thuật", PatientClass: "BHYT", Outcome: "Khỏi", Amount: 5000, PaidAt: feb},
	}
}

func TestViews_AllRecords(t *testing.T) {
	st := New(records(), targets.Plan{Facility: targets.Goals{Revenue: 10800}})
	v := st.Views()
	if v.Summary.TotalCost != 5400 || v.Summary.TotalPatients != 3 {
		t.Errorf("summary = %+v", v.Summary)
	}
	if v.Departments[0].Key != "Ngoại" {
		t.Errorf("departments = %+v", v.Departments)
	}
	if v.Diseases[0].Key != "I10" || v.Diseases[0].Count != 2 {
		t.Errorf("diseases = %+v", v.Diseases)
	}
	if len(v.Trend) != 2 {
		t.Errorf("trend = %+v", v.Trend)
	}
	if v.Progress[0].Percent != 50 {
		t.Errorf("revenue progress = %+v", v.Progress[0])
	}
	if v.Window != "all time" {
		t.Errorf("window = %q", v.Window)
	}
}

func TestSelect_FiltersViews(t *testing.T) {
	st := New(records(), targets.Plan{})
	st, err := st.Select(filter.Selection{Period: filter.PeriodMonth, PatientClasses: []string{"BHYT"}}, now)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	v := st.Views()
	if len(v.Filtered) != 1 || v.Filtered[0].PatientID != "1" {
		t.Errorf("filtered = %+v", v.Filtered)
	}
	if v.Window != "2024-03-01 .. 2024-03-31" {
		t.Errorf("window = %q", v.Window)
	}
}

func TestSelect_DoesNotMutate(t *testing.T) {
	st := New(records(), targets.Plan{})
	next, err := st.Select(filter.Selection{Departments: []string{"Ngoại"}}, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Selection.Departments) != 0 {
		t.Error("original state was modified")
	}
	if got := len(next.Views().Filtered); got != 1 {
		t.Errorf("filtered %d records, want 1", got)
	}
}

func TestSelect_InvalidPeriod(t *testing.T) {
	st := New(records(), targets.Plan{})
	if _, err := st.Select(filter.Selection{Period: "decade"}, now); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestViews_EmptySelection(t *testing.T) {
	st := New(records(), targets.Plan{Facility: targets.Goals{Revenue: 100}})
	st, _ = st.Select(filter.Selection{Doctors: []string{"nobody"}}, now)
	v := st.Views()
	if v.Summary.TotalRecords != 0 || len(v.Departments) != 0 || len(v.Summary.OutcomeRatios) != 0 {
		t.Errorf("expected empty views, got %+v", v.Summary)
	}
	if v.Progress[0].Percent != 0 || v.Progress[0].Remaining != 100 {
		t.Errorf("progress = %+v", v.Progress[0])
	}
}

func TestViews_Limits(t *testing.T) {
	st := New(records(), targets.Plan{})
	st.Limits = Limits{Departments: 1, Doctors: 2}
	v := st.Views()
	if len(v.Departments) != 1 || len(v.Doctors) != 2 || len(v.Diseases) != 2 {
		t.Errorf("limits not applied: %d departments, %d doctors, %d diseases", len(v.Departments), len(v.Doctors), len(v.Diseases))
	}
}

func TestFacetOptions(t *testing.T) {
	f := FacetOptions(records())
	if want := []string{"Ngoại", "Nội"}; !reflect.DeepEqual(f.Departments, want) {
		t.Errorf("departments = %v", f.Departments)
	}
	if want := []string{"BHYT", "Dịch vụ"}; !reflect.DeepEqual(f.PatientClasses, want) {
		t.Errorf("classes = %v", f.PatientClasses)
	}
	if len(FacetOptions(nil).Doctors) != 0 {
		t.Error("expected no doctors")
	}
}
