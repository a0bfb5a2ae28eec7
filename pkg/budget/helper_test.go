package budget

import (
	"strings"
	"testing"
)

const sampleDocument = `{
  "masterCategories": [
    {
      "entityId": "MasterCategory/Bills",
      "entityType": "masterCategory",
      "name": "Bills",
      "type": "OUTFLOW",
      "subCategories": [
        {"entityId": "Category/Rent", "name": "Rent", "type": "OUTFLOW", "masterCategoryId": "MasterCategory/Bills"},
        {"entityId": "Category/Groceries", "name": "Groceries", "type": "OUTFLOW", "masterCategoryId": "MasterCategory/Bills"},
        {"entityId": "Category/Old", "name": "Old", "type": "OUTFLOW", "isTombstone": true}
      ]
    },
    {
      "entityId": "MasterCategory/__Hidden__",
      "name": "Hidden Categories",
      "type": "OUTFLOW",
      "subCategories": [
        {"entityId": "Category/Gym", "name": "Gym", "type": "OUTFLOW"}
      ]
    },
    {
      "entityId": "MasterCategory/Fun",
      "name": "Fun",
      "type": "OUTFLOW",
      "subCategories": [
        {"entityId": "Category/Movies", "name": "Movies"},
        {"entityId": "Category/__Internal__", "name": "Internal"}
      ]
    },
    {
      "entityId": "MasterCategory/Income",
      "name": "Income",
      "type": "INFLOW",
      "subCategories": null
    }
  ],
  "monthlyBudgets": [
    {
      "entityId": "MonthlyBudget/2024-03",
      "monthlySubCategoryBudgets": [
        {"entityId": "MCB/1", "categoryId": "Category/Groceries", "budgeted": 200.00},
        {"entityId": "MCB/2", "categoryId": "Category/Rent", "budgeted": 1200.00},
        {"entityId": "MCB/3", "categoryId": "Category/Gym", "budgeted": 30},
        {"entityId": "MCB/4", "categoryId": "Category/Missing", "budgeted": 10}
      ]
    },
    {
      "entityId": "MonthlyBudget/2024-02",
      "monthlySubCategoryBudgets": null
    }
  ],
  "transactions": [
    {"entityId": "T/1", "categoryId": "Category/Groceries", "date": "2024-03-02", "amount": -45.50},
    {"entityId": "T/2", "categoryId": "Category/Groceries", "date": "2024-03-15", "amount": -12.25},
    {"entityId": "T/3", "categoryId": "Category/Rent", "date": "2024-03-01", "amount": -1200.00},
    {"entityId": "T/4", "categoryId": "Category/Groceries", "date": "2024-03-20", "amount": -99.99,
     "transferTransactionId": "T/5"},
    {"entityId": "T/6", "categoryId": "Category/Movies", "date": "2024-03-09", "amount": -18.00},
    {"entityId": "T/7", "categoryId": "Category/Gym", "date": "2024-03-09", "amount": -30},
    {"entityId": "T/8", "categoryId": "Category/Nowhere", "date": "2024-03-10", "amount": -1},
    {"entityId": "T/9", "categoryId": "Category/__ImmediateIncome__", "date": "2024-03-25", "amount": 3000},
    {"entityId": "T/10", "categoryId": "Category/Groceries", "date": "2024-04-01", "amount": -5}
  ]
}`

func mustParse(t *testing.T, doc string) *Repository {
	t.Helper()
	repo, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return repo
}

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name())
	}
	return out
}
