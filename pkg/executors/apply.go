package executors

import (
	"fmt"
	"io"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/plan"
	"github.com/yurifrl/pocketmoney/pkg/report"
)

// Apply loads each distinct budget once and writes every report of p to w.
// The first failure stops the run.
func (e *Executor) Apply(p *plan.Plan, w io.Writer) error {
	e.logger.Debug("applying plan")

	loaded := make(map[string]*budget.Repository)
	for i, run := range e.Plan(p) {
		repo, ok := loaded[run.Budget]
		if !ok {
			var err error
			repo, err = e.loader.Load(run.Root, run.Budget)
			if err != nil {
				return fmt.Errorf("report %d: %w", i+1, err)
			}
			loaded[run.Budget] = repo
		}

		amounts := repo.CategoryAmounts(run.Period.Year, run.Period.Month)
		if n := len(amounts.Unallocated()); n > 0 {
			e.logger.Warn("transactions without allocation", "budget", run.Budget, "month", run.Period, "count", n)
		}
		if repo.MonthlyBudgetFor(run.Period.Year, run.Period.Month) == nil {
			e.logger.Warn("no monthly budget", "budget", run.Budget, "month", run.Period)
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s %s\n", run.Budget, run.Period)
		if err := report.Write(w, run.Format, report.New(amounts, repo)); err != nil {
			return fmt.Errorf("report %d: %w", i+1, err)
		}
		e.logger.Info("report written", "budget", run.Budget, "month", run.Period, "rows", amounts.Len())
	}
	return nil
}
