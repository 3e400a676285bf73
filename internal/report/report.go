// Package report renders dashboard views for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/gyeh/hisdash/internal/dashboard"
	"github.com/gyeh/hisdash/internal/model"
)

// TableConfig sets the column widths of the text tables.
type TableConfig struct {
	NameWidth  int
	CountWidth int
	MoneyWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		CountWidth: 9,
		MoneyWidth: 18,
	}
}

// Reporter writes dashboard views to a writer.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

// NewReporter creates a reporter. A nil writer means stdout.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer, config: DefaultTableConfig()}
}

// Write renders v in the given format ("text" or "json").
func (r *Reporter) Write(format string, v dashboard.Views) error {
	switch format {
	case "", "text":
		return r.Text(v)
	case "json":
		return r.JSON(v)
	}
	return fmt.Errorf("unknown format %q", format)
}

// JSON writes the views as indented JSON.
func (r *Reporter) JSON(v dashboard.Views) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const textTemplate = `=== Báo cáo viện phí ===
Kỳ báo cáo: {{.Window}}
Tổng viện phí:       {{money .Summary.TotalCost}}
Bệnh nhân:           {{num .Summary.TotalPatients}}
Lượt ghi nhận:       {{num .Summary.TotalRecords}}
Chi phí TB/BN:       {{money .Summary.AvgCostPerPatient}}
Số ngày điều trị TB: {{dec .Summary.AvgDays}}
{{if .Progress}}
--- Tiến độ kế hoạch ---
{{progressHeader}}
{{range .Progress}}{{progressRow .}}
{{end}}{{end}}{{if .Summary.OutcomeRatios}}
--- Kết quả điều trị ---
{{range .Summary.OutcomeRatios}}  {{.Name}}: {{num .Value}}
{{end}}{{end}}{{template "groups" section "Doanh thu theo khoa" .Departments}}{{template "groups" section "Dịch vụ" .Services}}{{template "groups" section "Nhóm dịch vụ" .ServiceGroups}}{{template "groups" section "Đối tượng bệnh nhân" .PatientClass}}{{template "groups" section "Bác sĩ" .Doctors}}{{if .Diseases}}
--- Mô hình bệnh tật ---
{{separator}}
{{diseaseHeader}}
{{separator}}
{{range .Diseases}}{{diseaseRow .}}
{{end}}{{separator}}
{{end}}{{if .Trend}}
--- Xu hướng doanh thu ---
{{range .Trend}}  {{.Period}}  {{money .TotalCost}} ({{num .Count}} lượt)
{{end}}{{end}}`

const groupsTemplate = `{{define "groups"}}{{if .Groups}}
--- {{.Title}} ---
{{separator}}
{{groupHeader}}
{{separator}}
{{range .Groups}}{{groupRow .}}
{{end}}{{separator}}
{{end}}{{end}}`

type groupSection struct {
	Title  string
	Groups []model.Group
}

// Text writes the views as aligned terminal tables.
func (r *Reporter) Text(v dashboard.Views) error {
	c := r.config
	row := func(cells ...string) string {
		return "| " + strings.Join(cells, " | ") + " |"
	}
	funcMap := template.FuncMap{
		"money": Money,
		"num":   Number,
		"dec":   Decimal,
		"section": func(title string, groups []model.Group) groupSection {
			return groupSection{Title: title, Groups: groups}
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.NameWidth+2),
				strings.Repeat("-", c.CountWidth+2),
				strings.Repeat("-", c.CountWidth+2),
				strings.Repeat("-", c.MoneyWidth+2))
		},
		"groupHeader": func() string {
			return row(pad("Tên", c.NameWidth), padLeft("Lượt", c.CountWidth),
				padLeft("BN", c.CountWidth), padLeft("Tổng chi phí", c.MoneyWidth))
		},
		"groupRow": func(g model.Group) string {
			name := g.Key
			if g.Department != "" {
				name += " (" + g.Department + ")"
			}
			return row(pad(name, c.NameWidth), padLeft(Number(g.Count), c.CountWidth),
				padLeft(Number(g.Patients), c.CountWidth), padLeft(Money(g.TotalCost), c.MoneyWidth))
		},
		"diseaseHeader": func() string {
			return row(pad("Mã bệnh / chẩn đoán", c.NameWidth), padLeft("Lượt", c.CountWidth),
				padLeft("BN", c.CountWidth), padLeft("Tổng chi phí", c.MoneyWidth))
		},
		"diseaseRow": func(g model.Group) string {
			return row(pad(g.Key+" "+g.Label, c.NameWidth), padLeft(Number(g.Count), c.CountWidth),
				padLeft(Number(g.Patients), c.CountWidth), padLeft(Money(g.TotalCost), c.MoneyWidth))
		},
		"progressHeader": func() string {
			return "  " + pad("Chỉ tiêu", c.NameWidth) + " " + padLeft("Thực hiện", c.MoneyWidth) +
				" " + padLeft("Kế hoạch", c.MoneyWidth) + " " + padLeft("%", 8)
		},
		"progressRow": func(p model.Progress) string {
			actual, plan := Decimal(p.Actual), Decimal(p.Plan)
			if strings.HasSuffix(p.Name, "revenue") {
				actual, plan = Money(p.Actual), Money(p.Plan)
			}
			return "  " + pad(p.Name, c.NameWidth) + " " + padLeft(actual, c.MoneyWidth) +
				" " + padLeft(plan, c.MoneyWidth) + " " + padLeft(Percent(p.Percent), 8) + " " + bandMark(p.Band)
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if _, err := t.Parse(groupsTemplate); err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, v)
}

func bandMark(b model.Band) string {
	switch b {
	case model.BandHigh:
		return "[cao]"
	case model.BandMedium:
		return "[trung bình]"
	}
	return "[thấp]"
}
