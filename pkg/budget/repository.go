package budget

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/yurifrl/pocketmoney/pkg/models"
)

// Repository is a read-only snapshot of one budget document. All indices
// are built by New and never change afterwards, so a Repository can be
// shared between goroutines without locking.
type Repository struct {
	masters     []*MasterCategory
	mastersByID map[models.ID]*MasterCategory
	categories  map[models.ID]*SubCategory

	monthly         []*MonthlyBudget
	monthlyByPeriod map[Period]*MonthlyBudget

	transactions         []*Transaction
	transactionsByPeriod map[Period][]*Transaction
}

// Parse decodes a Budget.yfull document and builds the repository.
func Parse(r io.Reader) (*Repository, error) {
	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return New(&doc)
}

// New builds the repository from a decoded document. Any malformed record
// aborts the whole load.
func New(doc *models.Document) (*Repository, error) {
	r := &Repository{
		mastersByID:          make(map[models.ID]*MasterCategory, len(doc.MasterCategories)),
		categories:           make(map[models.ID]*SubCategory),
		monthlyByPeriod:      make(map[Period]*MonthlyBudget, len(doc.MonthlyBudgets)),
		transactionsByPeriod: make(map[Period][]*Transaction),
	}

	// The category index must be complete before any allocation or
	// transaction is resolved against it.
	r.masters = make([]*MasterCategory, 0, len(doc.MasterCategories))
	for _, rec := range doc.MasterCategories {
		m := newMasterCategory(rec)
		r.masters = append(r.masters, m)
		if m.id != "" {
			r.mastersByID[m.id] = m
		}
		for _, sub := range m.subCategories {
			if sub.id != "" {
				r.categories[sub.id] = sub
			}
		}
	}
	for _, c := range syntheticCategories() {
		r.categories[c.id] = c
	}

	r.monthly = make([]*MonthlyBudget, 0, len(doc.MonthlyBudgets))
	for _, rec := range doc.MonthlyBudgets {
		mb, err := newMonthlyBudget(rec, r.ResolveCategory)
		if err != nil {
			return nil, err
		}
		r.monthly = append(r.monthly, mb)
		if _, ok := r.monthlyByPeriod[mb.period]; !ok {
			r.monthlyByPeriod[mb.period] = mb
		}
	}

	r.transactions = make([]*Transaction, 0, len(doc.Transactions))
	for _, rec := range doc.Transactions {
		t, err := newTransaction(rec, r.ResolveCategory)
		if err != nil {
			return nil, err
		}
		r.transactions = append(r.transactions, t)
		p := t.date.Period()
		r.transactionsByPeriod[p] = append(r.transactionsByPeriod[p], t)
	}

	return r, nil
}

// ResolveCategory returns the subcategory for id, or nil when unknown. The
// immediate income and transfer ids always resolve.
func (r *Repository) ResolveCategory(id models.ID) *SubCategory {
	return r.categories[id]
}

// ImmediateIncome returns the synthetic immediate income category.
func (r *Repository) ImmediateIncome() *SubCategory { return r.categories[models.ImmediateIncomeID] }

// Transfer returns the synthetic transfer category.
func (r *Repository) Transfer() *SubCategory { return r.categories[models.TransferID] }

// MasterOf returns the master category owning c, or nil for synthetic
// categories.
func (r *Repository) MasterOf(c *SubCategory) *MasterCategory {
	if c == nil || c.masterID == "" {
		return nil
	}
	return r.mastersByID[c.masterID]
}

// MasterCategories returns every master category in document order.
func (r *Repository) MasterCategories() []*MasterCategory {
	return append([]*MasterCategory(nil), r.masters...)
}

// VisibleMasterCategories returns the visible master categories in
// document order.
func (r *Repository) VisibleMasterCategories() []*MasterCategory {
	out := make([]*MasterCategory, 0, len(r.masters))
	for _, m := range r.masters {
		if m.Visible() {
			out = append(out, m)
		}
	}
	return out
}

// VisibleCategories returns the visible subcategories of the visible
// master categories, master order first, then subcategory order.
func (r *Repository) VisibleCategories() []*SubCategory {
	var out []*SubCategory
	for _, m := range r.VisibleMasterCategories() {
		out = append(out, m.VisibleSubCategories()...)
	}
	return out
}

// CategoriesByFlow returns the visible master categories of the given type.
func (r *Repository) CategoriesByFlow(direction CategoryType) []*MasterCategory {
	var out []*MasterCategory
	for _, m := range r.VisibleMasterCategories() {
		if m.typ == direction {
			out = append(out, m)
		}
	}
	return out
}

func (r *Repository) InflowMasterCategories() []*MasterCategory  { return r.CategoriesByFlow(Inflow) }
func (r *Repository) OutflowMasterCategories() []*MasterCategory { return r.CategoriesByFlow(Outflow) }

// MonthlyBudgets returns every monthly budget in document order. It is
// empty, never an error, when the document has none.
func (r *Repository) MonthlyBudgets() []*MonthlyBudget {
	return append([]*MonthlyBudget(nil), r.monthly...)
}

// MonthlyBudgetFor returns the budget for the month, or nil when none was
// recorded. When the document repeats a month the first one wins.
func (r *Repository) MonthlyBudgetFor(year, month int) *MonthlyBudget {
	return r.monthlyByPeriod[Period{Year: year, Month: month}]
}

// Transactions returns every transaction in document order.
func (r *Repository) Transactions() []*Transaction {
	return append([]*Transaction(nil), r.transactions...)
}

// TransactionsFor returns the transactions dated in the month, in document
// order.
func (r *Repository) TransactionsFor(year, month int) []*Transaction {
	return append([]*Transaction(nil), r.transactionsByPeriod[Period{Year: year, Month: month}]...)
}

// Periods returns the months that have a monthly budget, oldest first.
func (r *Repository) Periods() []Period {
	out := make([]Period, 0, len(r.monthlyByPeriod))
	for p := range r.monthlyByPeriod {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
