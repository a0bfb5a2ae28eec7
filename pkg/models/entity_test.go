package models

import "testing"

func TestID(t *testing.T) {
	tests := []struct {
		id         ID
		entityType string
		value      string
		second     string
		hasSecond  bool
		reserved   bool
	}{
		{"Category/A1B2", "Category", "A1B2", "A1B2", true, false},
		{"MonthlyBudget/2024-03", "MonthlyBudget", "2024-03", "2024-03", true, false},
		{"Category/__Hidden__/X", "Category", "__Hidden__/X", "__Hidden__", true, true},
		{"MasterCategory/__Internal__", "MasterCategory", "__Internal__", "__Internal__", true, true},
		{"Plain", "Plain", "", "", false, false},
		{"", "", "", "", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if got := tt.id.EntityType(); got != tt.entityType {
				t.Errorf("EntityType() = %q, want %q", got, tt.entityType)
			}
			if got := tt.id.Value(); got != tt.value {
				t.Errorf("Value() = %q, want %q", got, tt.value)
			}
			seg, ok := tt.id.Segment(1)
			if seg != tt.second || ok != tt.hasSecond {
				t.Errorf("Segment(1) = %q, %v, want %q, %v", seg, ok, tt.second, tt.hasSecond)
			}
			if got := tt.id.Reserved(); got != tt.reserved {
				t.Errorf("Reserved() = %v, want %v", got, tt.reserved)
			}
		})
	}
	if _, ok := ID("a/b").Segment(-1); ok {
		t.Error("Segment(-1) should not exist")
	}
}
