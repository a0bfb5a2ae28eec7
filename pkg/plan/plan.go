package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yurifrl/pocketmoney/pkg/budget"
)

// Plan lists the reports to produce in one run.
type Plan struct {
	Root    string   `yaml:"root"`
	Reports []Report `yaml:"reports"`
}

// Report is one budget/month to aggregate.
type Report struct {
	Budget string `yaml:"budget"`
	Month  string `yaml:"month"`
	Format string `yaml:"format"`

	period budget.Period
}

// Period returns the parsed month.
func (r Report) Period() budget.Period { return r.period }

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(p.Reports) == 0 {
		return nil, fmt.Errorf("plan has no reports")
	}
	for i := range p.Reports {
		r := &p.Reports[i]
		if r.Budget == "" {
			return nil, fmt.Errorf("report %d: budget is required", i+1)
		}
		period, err := budget.ParsePeriod(r.Month)
		if err != nil {
			return nil, fmt.Errorf("report %d: invalid month: %w", i+1, err)
		}
		r.period = period
	}
	p.Root = expandHome(p.Root)
	return &p, nil
}

func (p *Plan) Print(w io.Writer) {
	fmt.Fprintf(w, "YNAB root: %s\n", p.Root)
	for i, r := range p.Reports {
		fmt.Fprintf(w, "[%d] budget=%s month=%s format=%s\n", i+1, r.Budget, r.Month, r.Format)
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
