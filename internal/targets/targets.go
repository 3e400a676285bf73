// Package targets holds the user-editable revenue and patient goals the
// dashboard measures progress against.
package targets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Goals is a pair of planned values. A zero value means "no goal".
type Goals struct {
	Revenue  float64 `yaml:"revenue" json:"revenue"`
	Patients float64 `yaml:"patients" json:"patients"`
}

// Plan is the facility-wide goal plus optional per-department goals.
type Plan struct {
	Facility    Goals            `yaml:"facility" json:"facility"`
	Departments map[string]Goals `yaml:"departments,omitempty" json:"departments,omitempty"`
}

// DepartmentNames returns the departments that have goals, sorted.
func (p *Plan) DepartmentNames() []string {
	names := make([]string, 0, len(p.Departments))
	for name := range p.Departments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set updates the facility goals (department == "") or one department's
// goals. Nil values leave the current goal unchanged.
func (p *Plan) Set(department string, revenue, patients *float64) error {
	if revenue != nil && *revenue < 0 {
		return fmt.Errorf("revenue goal must not be negative: %v", *revenue)
	}
	if patients != nil && *patients < 0 {
		return fmt.Errorf("patient goal must not be negative: %v", *patients)
	}

	department = strings.TrimSpace(department)
	g := p.Facility
	if department != "" {
		g = p.Departments[department]
	}
	if revenue != nil {
		g.Revenue = *revenue
	}
	if patients != nil {
		g.Patients = *patients
	}

	if department == "" {
		p.Facility = g
		return nil
	}
	if p.Departments == nil {
		p.Departments = make(map[string]Goals)
	}
	p.Departments[department] = g
	return nil
}

// Load reads a plan from a YAML file. A missing file yields an empty plan.
func Load(path string) (Plan, error) {
	var p Plan
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read targets file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse targets file: %w", err)
	}
	return p, nil
}

// Save writes the plan as YAML, creating parent directories as needed.
func Save(path string, p Plan) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encode targets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create targets dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write targets file: %w", err)
	}
	return nil
}
