package budget

import (
	"github.com/shopspring/decimal"

	"github.com/yurifrl/pocketmoney/pkg/models"
)

// Amount is the net remaining amount of one category.
type Amount struct {
	Category *SubCategory
	Amount   decimal.Decimal
}

// Amounts is the result of CategoryAmounts for a single month.
type Amounts struct {
	period      Period
	entries     []Amount
	index       map[models.ID]int
	unallocated []*Transaction
}

// CategoryAmounts computes, for each category allocated in the month, the
// allocation plus the sum of that month's transactions against visible
// categories.
//
// Only allocated categories appear in the result. A transaction on a
// visible category without an allocation is left out of the sums and
// reported by Unallocated. A month without a monthly budget yields an empty
// result.
func (r *Repository) CategoryAmounts(year, month int) *Amounts {
	a := &Amounts{
		period: Period{Year: year, Month: month},
		index:  make(map[models.ID]int),
	}

	seed := make(map[models.ID]decimal.Decimal)
	var seeded []*SubCategory
	if mb := r.MonthlyBudgetFor(year, month); mb != nil {
		for _, cb := range mb.categories {
			if cb.category == nil {
				continue
			}
			if _, ok := seed[cb.category.id]; !ok {
				seeded = append(seeded, cb.category)
			}
			seed[cb.category.id] = cb.amount
		}
	}

	visibleSet := make(map[models.ID]bool)
	for _, c := range r.VisibleCategories() {
		visibleSet[c.id] = true
	}

	for _, t := range r.transactionsByPeriod[a.period] {
		if t.category == nil || !visibleSet[t.category.id] {
			continue
		}
		total, ok := seed[t.category.id]
		if !ok {
			a.unallocated = append(a.unallocated, t)
			continue
		}
		seed[t.category.id] = total.Add(t.amount)
	}

	// Visible categories first in hierarchy order, then whatever else was
	// allocated (hidden or synthetic) in allocation order.
	for _, c := range r.VisibleCategories() {
		a.add(c, seed)
	}
	for _, c := range seeded {
		a.add(c, seed)
	}
	return a
}

func (a *Amounts) add(c *SubCategory, seed map[models.ID]decimal.Decimal) {
	amount, ok := seed[c.id]
	if !ok {
		return
	}
	if _, done := a.index[c.id]; done {
		return
	}
	a.index[c.id] = len(a.entries)
	a.entries = append(a.entries, Amount{Category: c, Amount: amount})
}

func (a *Amounts) Period() Period { return a.period }

// Entries returns the amounts ordered by the category hierarchy.
func (a *Amounts) Entries() []Amount { return append([]Amount(nil), a.entries...) }

func (a *Amounts) Len() int { return len(a.entries) }

// Get returns the amount for c and whether c is part of the result.
func (a *Amounts) Get(c *SubCategory) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Decimal{}, false
	}
	i, ok := a.index[c.id]
	if !ok {
		return decimal.Decimal{}, false
	}
	return a.entries[i].Amount, true
}

// Map returns the result keyed by category.
func (a *Amounts) Map() map[*SubCategory]decimal.Decimal {
	out := make(map[*SubCategory]decimal.Decimal, len(a.entries))
	for _, e := range a.entries {
		out[e.Category] = e.Amount
	}
	return out
}

// Unallocated returns the transactions on visible categories that had no
// allocation for the month and were therefore not summed.
func (a *Amounts) Unallocated() []*Transaction { return append([]*Transaction(nil), a.unallocated...) }
