package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2025-12-01", NewDate(2025, 12, 1), true},
		{"2025-12-09T14:30:00Z", NewDate(2025, 12, 9), true},
		{"", Date{}, true},
		{"12/01/2025", Date{}, false},
	}
	for i, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && (err != nil || !got.Equal(tc.want.Time)) {
			t.Fatalf("case %d expected %v, got %v (err=%v)", i, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("case %d expected ErrInvalidDate, got %v", i, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var inv Invoice
	raw := `{"id":"a","client":"Acme Corp","amount":15000,"date":"2025-12-01","dueDate":"2025-12-15","status":"paid"}`
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inv.DueDate.String() != "2025-12-15" || inv.Amount.Cents != 1500000 || inv.Status != InvoicePaid {
		t.Fatalf("unexpected invoice: %+v", inv)
	}

	b, _ := json.Marshal(Expense{ID: "e"})
	if !strings.Contains(string(b), `"date":""`) {
		t.Fatalf("zero date should encode as empty string: %s", b)
	}
}

func TestPeriod(t *testing.T) {
	p := PeriodOf(NewDate(2025, 1, 20))
	if p.Label() != "Jan" || p.String() != "2025-01" {
		t.Fatalf("unexpected period %v label %s", p, p.Label())
	}
	if prev := p.Prev(); prev != (Period{Year: 2024, Month: time.December}) {
		t.Fatalf("unexpected prev %v", prev)
	}
	var back Period
	if err := back.UnmarshalText([]byte("2025-12")); err != nil || back.Month != time.December {
		t.Fatalf("unexpected parse %v (err=%v)", back, err)
	}
}

func TestInvoiceDraftValidate(t *testing.T) {
	good := InvoiceDraft{Client: "Acme", Amount: NewMoney(1000), DueDate: NewDate(2025, 12, 31)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []InvoiceDraft{
		{Client: "", Amount: NewMoney(1)},
		{Client: "  ", Amount: NewMoney(1)},
		{Client: "Acme", Amount: Money{Cents: -1}},
		{Client: strings.Repeat("x", 201), Amount: NewMoney(1)},
		{Client: "Acme", Amount: NewMoney(1), Date: NewDate(2025, 12, 10), DueDate: NewDate(2025, 12, 1)},
	}
	for i, d := range bads {
		err := d.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected ValidationError, got %T", i, err)
		}
	}
	if err := (InvoiceDraft{Client: "Acme", Amount: Money{Cents: -5}}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount in chain, got %v", err)
	}
}

func TestInvoiceDraft_LineItems(t *testing.T) {
	d := InvoiceDraft{
		Client: "Acme",
		Amount: NewMoney(1), // ignored when items are present
		Items: []LineItem{
			{Description: "Consulting", Quantity: 10, Price: NewMoney(150)},
			{Description: "Hosting", Quantity: 1.5, Price: Money{Cents: 3333}},
		},
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	total, err := d.Total()
	if err != nil || total.Cents != 150000+5000 {
		t.Fatalf("expected 1550.00, got %s (err=%v)", total, err)
	}

	bads := []LineItem{
		{Description: "x", Quantity: 0, Price: NewMoney(1)},
		{Description: "x", Quantity: -1, Price: NewMoney(1)},
		{Description: "x", Quantity: 1, Price: Money{Cents: -1}},
		{Description: strings.Repeat("x", 201), Quantity: 1, Price: NewMoney(1)},
		{Description: "x", Quantity: 2, Price: MaxAmount},
	}
	for i, it := range bads {
		err := InvoiceDraft{Client: "Acme", Items: []LineItem{it}}.Validate()
		if !IsValidation(err) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
	}
}

func TestAccountDraftValidate(t *testing.T) {
	if err := (AccountDraft{Name: "Amex", Type: CreditCard, Balance: Money{Cents: -125000}}).Validate(); err != nil {
		t.Fatalf("negative credit card balance must be accepted: %v", err)
	}
	if err := (AccountDraft{Name: "Amex", Type: "Brokerage"}).Validate(); !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
	if err := (AccountDraft{Name: "Amex", Type: CreditCard, Balance: MaxAmount.Add(NewMoney(1)).Neg()}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for an out-of-range balance, got %v", err)
	}
}

func TestParseAccountType(t *testing.T) {
	for in, want := range map[string]AccountType{"checking": Checking, "SAVINGS": Savings, "credit-card": CreditCard, "Credit Card": CreditCard} {
		got, err := ParseAccountType(in)
		if err != nil || got != want {
			t.Fatalf("%q expected %q, got %q (err=%v)", in, want, got, err)
		}
	}
	if _, err := ParseAccountType("loan"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestGoalsValidate(t *testing.T) {
	if err := (Goals{}).Validate(); err != nil {
		t.Fatalf("zero targets are allowed: %v", err)
	}
	if err := (Goals{Revenue: Money{Cents: -1}}).Validate(); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestBucketRecompute(t *testing.T) {
	b := MonthlyBucket{Revenue: NewMoney(180000), Expenses: NewMoney(110000)}
	b.Recompute()
	if b.Profit != NewMoney(70000) || b.CashFlow != b.Profit {
		t.Fatalf("unexpected bucket %+v", b)
	}
}
