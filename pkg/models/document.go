package models

import "github.com/shopspring/decimal"

// Document is the decoded content of a Budget.yfull file. Only the fields
// used for category and monthly reporting are mapped; the rest of the
// document is ignored. Optional fields stay nil when absent.
type Document struct {
	MasterCategories []MasterCategoryRecord `json:"masterCategories"`
	MonthlyBudgets   []MonthlyBudgetRecord  `json:"monthlyBudgets"`
	Transactions     []TransactionRecord    `json:"transactions"`
}

// CategoryRecord holds the fields shared by master and sub categories.
type CategoryRecord struct {
	EntityID    ID      `json:"entityId"`
	EntityType  string  `json:"entityType"`
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	IsTombstone *bool   `json:"isTombstone"`
}

type MasterCategoryRecord struct {
	CategoryRecord
	SubCategories []SubCategoryRecord `json:"subCategories"`
}

type SubCategoryRecord struct {
	CategoryRecord
	MasterCategoryID *ID `json:"masterCategoryId"`
}

type TransactionRecord struct {
	EntityID              ID                  `json:"entityId"`
	CategoryID            *ID                 `json:"categoryId"`
	TransferTransactionID *ID                 `json:"transferTransactionId"`
	Date                  *string             `json:"date"`
	Amount                decimal.NullDecimal `json:"amount"`
	Memo                  *string             `json:"memo"`
}

type MonthlyBudgetRecord struct {
	EntityID                  ID                               `json:"entityId"`
	MonthlySubCategoryBudgets []MonthlySubCategoryBudgetRecord `json:"monthlySubCategoryBudgets"`
}

type MonthlySubCategoryBudgetRecord struct {
	EntityID   ID                  `json:"entityId"`
	CategoryID *ID                 `json:"categoryId"`
	Budgeted   decimal.NullDecimal `json:"budgeted"`
}

// Meta is the content of a Budget.ymeta file.
type Meta struct {
	RelativeDataFolderName *string `json:"relativeDataFolderName"`
}
