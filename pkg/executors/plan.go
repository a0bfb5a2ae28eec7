package executors

import (
	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/plan"
)

// Run is one report the executor will produce.
type Run struct {
	Root   string
	Budget string
	Period budget.Period
	Format string
}

// Plan resolves the runs of p without touching the filesystem.
func (e *Executor) Plan(p *plan.Plan) []Run {
	runs := make([]Run, 0, len(p.Reports))
	for _, r := range p.Reports {
		format := r.Format
		if format == "" {
			format = e.defaultFormat
		}
		runs = append(runs, Run{Root: p.Root, Budget: r.Budget, Period: r.Period(), Format: format})
	}
	e.logger.Debug("planned reports", "count", len(runs))
	return runs
}
