package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yurifrl/pocketmoney/pkg/budget"
)

func writeBudget(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "Family~0D1E2F3A.ynab4")
	files := map[string]string{
		filepath.Join(dir, "Budget.ymeta"): `{"relativeDataFolderName":"data1~B"}`,
		filepath.Join(dir, "data1~B", "5C3A1E2B-AAAA-BBBB-CCCC-0123456789AB", "Budget.yfull"): `{
		  "masterCategories":[{"entityId":"MasterCategory/M","name":"Bills","type":"OUTFLOW","subCategories":[
		    {"entityId":"Category/Groceries","name":"Groceries"},{"entityId":"Category/Rent","name":"Rent"}]}],
		  "monthlyBudgets":[{"entityId":"MonthlyBudget/2024-03","monthlySubCategoryBudgets":[
		    {"categoryId":"Category/Groceries","budgeted":200.00},{"categoryId":"Category/Rent","budgeted":1200.00}]}],
		  "transactions":[
		    {"entityId":"T/1","categoryId":"Category/Groceries","date":"2024-03-02","amount":-45.50},
		    {"entityId":"T/2","categoryId":"Category/Groceries","date":"2024-03-15","amount":-12.25},
		    {"entityId":"T/3","categoryId":"Category/Rent","date":"2024-03-01","amount":-1200.00}]}`,
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAmountsCommand(t *testing.T) {
	root := writeBudget(t)
	out, err := execute(t, "amounts", "--root", root, "--budget", "Family", "--year", "2024", "--month", "3", "--log-level", "error")
	if err != nil {
		t.Fatalf("amounts failed: %v", err)
	}
	want := "Category: \"Groceries\" amount:142.25\nCategory: \"Rent\" amount:0.00\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestMonthsAndCategoriesCommands(t *testing.T) {
	root := writeBudget(t)
	out, err := execute(t, "months", "--root", root, "--budget", "Family", "--log-level", "error")
	if err != nil || out != "2024-03\n" {
		t.Errorf("months = %q, %v", out, err)
	}
	out, err = execute(t, "categories", "--root", root, "--budget", "Family", "--log-level", "error")
	if err != nil || !strings.Contains(out, "Bills (OUTFLOW)\n  Groceries\n  Rent\n") {
		t.Errorf("categories = %q, %v", out, err)
	}
}

func TestMissingBudget(t *testing.T) {
	root := writeBudget(t)
	_, err := execute(t, "amounts", "--root", root, "--budget", "Nope", "--log-level", "error")
	if !errors.Is(err, budget.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if msg := describe(err); !strings.HasPrefix(msg, "no budget available") {
		t.Errorf("describe = %q", msg)
	}
}

func TestDescribe(t *testing.T) {
	tests := map[error]string{
		fmt.Errorf("x: %w", budget.ErrInvalidDocument): "budget file is not readable JSON",
		fmt.Errorf("x: %w", budget.ErrMalformedRecord): "budget file is malformed",
		errors.New("boom"): "boom",
	}
	for err, want := range tests {
		if got := describe(err); !strings.HasPrefix(got, want) {
			t.Errorf("describe(%v) = %q, want prefix %q", err, got, want)
		}
	}
}
