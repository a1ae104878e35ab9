package google

import (
	"context"
	"testing"
	"time"

	"findash/internal/core"
	ports "findash/internal/sheets"
)

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Dashboard", 2025, "2025 Dashboard"},
		{"  Dashboard ", 2026, "2026 Dashboard"},
		{"2024 Dashboard", 2025, "2024 Dashboard"},
		{"1234Dashboard", 2025, "2025 1234Dashboard"},
		{"", 2025, ""},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
		}
	}
}

func TestSheetNameFollowsFiscalYear(t *testing.T) {
	c := &Client{sheetBase: "Dashboard"}
	d := core.Dashboard{
		AsOf:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Monthly: []core.MonthlyBucket{{Period: core.Period{Year: 2025, Month: time.January}}},
	}
	if got := c.sheetName(d); got != "2025 Dashboard" {
		t.Fatalf("expected fiscal year tab, got %q", got)
	}
	d.Monthly = nil
	if got := c.sheetName(d); got != "2026 Dashboard" {
		t.Fatalf("expected as-of year tab, got %q", got)
	}
}

func TestValueRanges(t *testing.T) {
	blocks := []ports.Block{
		{Name: "summary", Anchor: "A1", Rows: [][]any{{"Metric", "Value"}, {"Revenue YTD", 10.5}}},
		{Name: "aging", Anchor: "K1", Rows: [][]any{{"Aging", "Amount"}}},
	}
	got := valueRanges("2025 Dashboard", blocks)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(got))
	}
	if got[0].Range != "'2025 Dashboard'!A1" || got[1].Range != "'2025 Dashboard'!K1" {
		t.Fatalf("unexpected ranges %q %q", got[0].Range, got[1].Range)
	}
	if got[0].Values[1][1] != 10.5 || got[0].MajorDimension != "ROWS" {
		t.Fatalf("unexpected values %v", got[0].Values)
	}
}

func TestWriteDashboard_RequiresService(t *testing.T) {
	c := &Client{sheetBase: "Dashboard"}
	if err := c.WriteDashboard(context.Background(), core.Dashboard{}); err == nil {
		t.Fatal("expected error without service")
	}
}

func TestNew_RequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), " ", "Dashboard", nil); err == nil {
		t.Fatal("expected error without a spreadsheet id")
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if _, err := New(context.Background(), "sheet-id", "", nil); err == nil {
		t.Fatal("expected error without credentials")
	}
}
