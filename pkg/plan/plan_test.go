package plan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yurifrl/pocketmoney/pkg/budget"
)

func TestLoad(t *testing.T) {
	content := `root: /data/YNAB
reports:
  - budget: My Budget
    month: 2024-03
    format: table
  - budget: Other
    month: 2023-12
`
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Root != "/data/YNAB" || len(p.Reports) != 2 {
		t.Fatalf("plan = %+v", p)
	}
	if p.Reports[0].Period() != (budget.Period{Year: 2024, Month: 3}) || p.Reports[0].Format != "table" {
		t.Errorf("first report = %+v", p.Reports[0])
	}
	if p.Reports[1].Period() != (budget.Period{Year: 2023, Month: 12}) || p.Reports[1].Format != "" {
		t.Errorf("second report = %+v", p.Reports[1])
	}

	var buf bytes.Buffer
	p.Print(&buf)
	if !strings.Contains(buf.String(), "[2] budget=Other month=2023-12") {
		t.Errorf("Print output = %q", buf.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no reports", "root: /x\n", "no reports"},
		{"bad month", "reports:\n  - budget: B\n    month: March\n", "invalid month"},
		{"missing budget", "reports:\n  - month: 2024-01\n", "budget is required"},
		{"bad yaml", "reports: [", "failed to parse yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
