package budget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/pocketmoney/pkg/models"
)

// Period identifies a calendar month.
type Period struct {
	Year  int
	Month int
}

func (p Period) String() string { return fmt.Sprintf("%04d-%02d", p.Year, p.Month) }

// ParsePeriod parses "YYYY-MM". Month range is not checked.
func ParsePeriod(s string) (Period, error) {
	parts, err := splitInts(s, 2)
	if err != nil {
		return Period{}, err
	}
	return Period{Year: parts[0], Month: parts[1]}, nil
}

// Date is a transaction date as written in the document. Calendar validity
// is not enforced: "2024-2-30" is kept as is.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) Period() Period { return Period{Year: d.Year, Month: d.Month} }

func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day) }

// ParseDate parses "YYYY-MM-DD", accepting any three integer components.
func ParseDate(s string) (Date, error) {
	parts, err := splitInts(s, 3)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: parts[0], Month: parts[1], Day: parts[2]}, nil
}

func splitInts(s string, n int) ([]int, error) {
	fields := strings.Split(s, "-")
	if len(fields) != n {
		return nil, fmt.Errorf("%q: expected %d dash separated components, got %d", s, n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q: component %d is not an integer", s, i+1)
		}
		out[i] = v
	}
	return out, nil
}

// Transaction is a single ledger entry.
type Transaction struct {
	id                    models.ID
	categoryID            models.ID
	transferTransactionID models.ID
	transfer              bool
	date                  Date
	amount                decimal.Decimal
	memo                  string
	category              *SubCategory
}

func newTransaction(rec models.TransactionRecord, resolve func(models.ID) *SubCategory) (*Transaction, error) {
	if rec.Date == nil {
		return nil, malformed("transaction", rec.EntityID, "date", nil)
	}
	date, err := ParseDate(*rec.Date)
	if err != nil {
		return nil, malformed("transaction", rec.EntityID, "date", err)
	}
	if !rec.Amount.Valid {
		return nil, malformed("transaction", rec.EntityID, "amount", nil)
	}

	t := &Transaction{
		id:     rec.EntityID,
		date:   date,
		amount: rec.Amount.Decimal,
	}
	if rec.CategoryID != nil {
		t.categoryID = *rec.CategoryID
	}
	if rec.Memo != nil {
		t.memo = *rec.Memo
	}
	if rec.TransferTransactionID != nil {
		t.transfer = true
		t.transferTransactionID = *rec.TransferTransactionID
		t.category = resolve(models.TransferID)
	} else {
		t.category = resolve(t.categoryID)
	}
	return t, nil
}

func (t *Transaction) ID() models.ID           { return t.id }
func (t *Transaction) CategoryID() models.ID   { return t.categoryID }
func (t *Transaction) IsTransfer() bool        { return t.transfer }
func (t *Transaction) Date() Date              { return t.date }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Memo() string            { return t.memo }

// TransferTransactionID is the id of the other side of a transfer, empty
// when IsTransfer is false.
func (t *Transaction) TransferTransactionID() models.ID { return t.transferTransactionID }

// Category returns the resolved category. Transfers always resolve to the
// synthetic transfer category. Nil means the category id is unknown.
func (t *Transaction) Category() *SubCategory { return t.category }

func (t *Transaction) String() string {
	if t.category == nil {
		return fmt.Sprintf("Transaction{%s category=INVALID amount=%s}", t.date, t.amount)
	}
	return fmt.Sprintf("Transaction{%s category=%q amount=%s}", t.date, t.category.name, t.amount)
}

// MonthlyBudget holds the allocations recorded for one month.
type MonthlyBudget struct {
	id         models.ID
	period     Period
	categories []*MonthlyCategoryBudget
}

func newMonthlyBudget(rec models.MonthlyBudgetRecord, resolve func(models.ID) *SubCategory) (*MonthlyBudget, error) {
	seg, ok := rec.EntityID.Segment(1)
	if !ok {
		return nil, malformed("monthly budget", rec.EntityID, "entityId", fmt.Errorf("missing period segment"))
	}
	period, err := ParsePeriod(seg)
	if err != nil {
		return nil, malformed("monthly budget", rec.EntityID, "entityId", err)
	}

	mb := &MonthlyBudget{
		id:         rec.EntityID,
		period:     period,
		categories: make([]*MonthlyCategoryBudget, 0, len(rec.MonthlySubCategoryBudgets)),
	}
	for _, sub := range rec.MonthlySubCategoryBudgets {
		cb, err := newMonthlyCategoryBudget(sub, resolve)
		if err != nil {
			return nil, fmt.Errorf("monthly budget %s: %w", period, err)
		}
		mb.categories = append(mb.categories, cb)
	}
	return mb, nil
}

func (b *MonthlyBudget) ID() models.ID  { return b.id }
func (b *MonthlyBudget) Period() Period { return b.period }
func (b *MonthlyBudget) Year() int      { return b.period.Year }
func (b *MonthlyBudget) Month() int     { return b.period.Month }

// SubCategoryBudgets returns the allocations in document order.
func (b *MonthlyBudget) SubCategoryBudgets() []*MonthlyCategoryBudget {
	return append([]*MonthlyCategoryBudget(nil), b.categories...)
}

func (b *MonthlyBudget) String() string { return "MonthlyBudget{" + b.period.String() + "}" }

// MonthlyCategoryBudget is the amount allocated to one category for a month.
type MonthlyCategoryBudget struct {
	categoryID models.ID
	amount     decimal.Decimal
	category   *SubCategory
}

func newMonthlyCategoryBudget(rec models.MonthlySubCategoryBudgetRecord, resolve func(models.ID) *SubCategory) (*MonthlyCategoryBudget, error) {
	if rec.CategoryID == nil {
		return nil, malformed("monthly category budget", rec.EntityID, "categoryId", nil)
	}
	if !rec.Budgeted.Valid {
		return nil, malformed("monthly category budget", rec.EntityID, "budgeted", nil)
	}
	return &MonthlyCategoryBudget{
		categoryID: *rec.CategoryID,
		amount:     rec.Budgeted.Decimal,
		category:   resolve(*rec.CategoryID),
	}, nil
}

func (b *MonthlyCategoryBudget) CategoryID() models.ID   { return b.categoryID }
func (b *MonthlyCategoryBudget) Amount() decimal.Decimal { return b.amount }

// Category returns the resolved category, nil when the id is unknown.
func (b *MonthlyCategoryBudget) Category() *SubCategory { return b.category }
