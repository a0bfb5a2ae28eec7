package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/pocketmoney/pkg/budget"
)

// Row is the remaining amount of one category.
type Row struct {
	Master   string          `json:"master"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MarshalJSON writes the amount as a string with its recorded precision.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Master   string `json:"master"`
		Category string `json:"category"`
		Amount   string `json:"amount"`
	}{r.Master, r.Category, FormatAmount(r.Amount)})
}

// Report is a presentation-ready view of budget.Amounts.
type Report struct {
	Period      string `json:"period"`
	Rows        []Row  `json:"rows"`
	Unallocated int    `json:"unallocated"`
}

// New builds a report keeping the hierarchy order of amounts.
func New(amounts *budget.Amounts, repo *budget.Repository) *Report {
	r := &Report{
		Period:      amounts.Period().String(),
		Rows:        make([]Row, 0, amounts.Len()),
		Unallocated: len(amounts.Unallocated()),
	}
	for _, e := range amounts.Entries() {
		row := Row{Category: e.Category.Name(), Amount: e.Amount}
		if m := repo.MasterOf(e.Category); m != nil {
			row.Master = m.Name()
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// Total returns the sum of every row.
func (r *Report) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.Amount)
	}
	return total
}

// FormatAmount prints d with the precision it was recorded with, so that
// 1200.00 - 1200.00 prints as 0.00 rather than 0.
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Write renders r in the named format.
func Write(w io.Writer, format string, r *Report) error {
	switch format {
	case "text", "":
		return WriteText(w, r)
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "csv":
		return WriteCSV(w, r)
	case "table":
		return WriteTable(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteText prints one `Category: "<name>" amount:<decimal>` line per row.
func WriteText(w io.Writer, r *Report) error {
	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(w, "Category: %q amount:%s\n", row.Category, FormatAmount(row.Amount)); err != nil {
			return err
		}
	}
	if note := unallocatedNote(r); note != "" {
		_, err := fmt.Fprintln(w, note)
		return err
	}
	return nil
}

func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// yamlRow keeps amounts as strings so YAML readers do not turn them into floats.
type yamlRow struct {
	Master   string `yaml:"master,omitempty"`
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
}

func WriteYAML(w io.Writer, r *Report) error {
	rows := make([]yamlRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, yamlRow{Master: row.Master, Category: row.Category, Amount: FormatAmount(row.Amount)})
	}
	out := struct {
		Period      string    `yaml:"period"`
		Rows        []yamlRow `yaml:"rows"`
		Unallocated int       `yaml:"unallocated"`
	}{r.Period, rows, r.Unallocated}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Master", "Category", "Amount"}); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range r.Rows {
		if err := cw.Write([]string{row.Master, row.Category, FormatAmount(row.Amount)}); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	masterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// WriteTable renders an aligned terminal table, negative amounts in red.
func WriteTable(w io.Writer, r *Report) error {
	masterW, categoryW, amountW := len("Master"), len("Category"), len("Amount")
	for _, row := range r.Rows {
		masterW = max(masterW, lipgloss.Width(row.Master))
		categoryW = max(categoryW, lipgloss.Width(row.Category))
		amountW = max(amountW, len(row.Amount.StringFixed(2)))
	}
	total := r.Total().StringFixed(2)
	amountW = max(amountW, len(total))

	line := func(master, category, amount string, amountStyle lipgloss.Style) string {
		return masterStyle.Width(masterW).Render(master) + "  " +
			lipgloss.NewStyle().Width(categoryW).Render(category) + "  " +
			amountStyle.Width(amountW).Align(lipgloss.Right).Render(amount)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Budget " + r.Period))
	sb.WriteString("\n")
	sb.WriteString(line("Master", "Category", "Amount", lipgloss.NewStyle()))
	sb.WriteString("\n")
	for _, row := range r.Rows {
		style := lipgloss.NewStyle()
		if row.Amount.IsNegative() {
			style = negativeStyle
		}
		sb.WriteString(line(row.Master, row.Category, row.Amount.StringFixed(2), style))
		sb.WriteString("\n")
	}
	sb.WriteString(line("", "Total", total, headerStyle))
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if note := unallocatedNote(r); note != "" {
		_, err := fmt.Fprintln(w, noteStyle.Render(note))
		return err
	}
	return nil
}

func unallocatedNote(r *Report) string {
	if r.Unallocated == 0 {
		return ""
	}
	return fmt.Sprintf("%d transaction(s) on categories without an allocation were not counted", r.Unallocated)
}
