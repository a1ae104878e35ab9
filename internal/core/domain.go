package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceRecurring InvoiceStatus = "recurring"

	ExpensePaid ExpenseStatus = "paid"

	Checking   AccountType = "Checking"
	Savings    AccountType = "Savings"
	CreditCard AccountType = "Credit Card"
)

// Collection keys, one persisted entry each.
const (
	KeyInvoices = "invoices"
	KeyExpenses = "expenses"
	KeyVendors  = "vendors"
	KeyAccounts = "accounts"
	KeyGoals    = "goals"
)

type (
	InvoiceStatus string
	ExpenseStatus string
	AccountType   string

	Invoice struct {
		ID      string        `json:"id"`
		Client  string        `json:"client"`
		Amount  Money         `json:"amount"`
		Date    Date          `json:"date"`
		DueDate Date          `json:"dueDate"`
		Status  InvoiceStatus `json:"status"`
		Items   []LineItem    `json:"items,omitempty"`
	}

	// LineItem is one billed line. An invoice with items is worth the sum
	// of quantity times price.
	LineItem struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Price       Money   `json:"price"`
	}

	Expense struct {
		ID       string        `json:"id"`
		Vendor   string        `json:"vendor"`
		Amount   Money         `json:"amount"`
		Date     Date          `json:"date"`
		Category string        `json:"category"`
		Status   ExpenseStatus `json:"status"`
	}

	Vendor struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email,omitempty"`
		Phone    string `json:"phone,omitempty"`
		Category string `json:"category,omitempty"`
	}

	Account struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Institution string      `json:"institution"`
		Type        AccountType `json:"type"`
		Balance     Money       `json:"balance"`
		LastUpdated time.Time   `json:"lastUpdated"`
	}

	// Goals is the singleton target configuration.
	Goals struct {
		Revenue Money `json:"revenue"`
		Profit  Money `json:"profit"`
	}
)

// Drafts carry caller input for the add operations. Identifiers, statuses
// and timestamps are assigned by the engine.
type (
	// InvoiceDraft.Amount is ignored when Items is not empty.
	InvoiceDraft struct {
		Client  string
		Amount  Money
		Date    Date
		DueDate Date
		Items   []LineItem
	}

	ExpenseDraft struct {
		Vendor   string
		Amount   Money
		Date     Date
		Category string
	}

	VendorDraft struct {
		Name     string
		Email    string
		Phone    string
		Category string
	}

	AccountDraft struct {
		Name        string
		Institution string
		Type        AccountType
		Balance     Money
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyClient        = errors.New("empty client")
	ErrEmptyVendor        = errors.New("empty vendor")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidTarget      = errors.New("invalid goal target")
	ErrTooLong            = errors.New("too long (max 200 characters)")
	ErrInvalidQuantity    = errors.New("invalid quantity")
)

const maxTextLen = 200

// ValidationError reports a rejected field at the mutation boundary.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err was produced by draft validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceRecurring:
		return true
	default:
		return false
	}
}

func (t AccountType) IsValid() bool {
	switch t {
	case Checking, Savings, CreditCard:
		return true
	default:
		return false
	}
}

// IsCash returns true for account types counted as cash on hand.
func (t AccountType) IsCash() bool {
	return t == Checking || t == Savings
}

// ParseAccountType matches s case-insensitively against the known types.
func ParseAccountType(s string) (AccountType, error) {
	s = strings.TrimSpace(s)
	for _, t := range []AccountType{Checking, Savings, CreditCard} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	if strings.EqualFold(strings.ReplaceAll(s, "-", " "), string(CreditCard)) {
		return CreditCard, nil
	}
	return "", invalid("type", ErrInvalidAccountType)
}

func validateText(field, v string, empty error) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, empty)
	}
	if len(v) > maxTextLen {
		return invalid(field, ErrTooLong)
	}
	return nil
}

// Total returns the sum of the line items, or Amount when there are none.
func (d InvoiceDraft) Total() (Money, error) {
	if len(d.Items) == 0 {
		return d.Amount, nil
	}
	var total Money
	for i, it := range d.Items {
		line, err := it.Total()
		if err != nil {
			return Money{}, invalid(fmt.Sprintf("items[%d]", i), err)
		}
		total = total.Add(line)
	}
	if total.Cents > MaxAmount.Cents {
		return Money{}, invalid("amount", ErrInvalidAmount)
	}
	return total, nil
}

// Total returns quantity times price rounded half-up to cents.
func (li LineItem) Total() (Money, error) {
	if len(li.Description) > maxTextLen {
		return Money{}, ErrTooLong
	}
	if math.IsNaN(li.Quantity) || math.IsInf(li.Quantity, 0) || li.Quantity <= 0 {
		return Money{}, ErrInvalidQuantity
	}
	if err := li.Price.Validate(); err != nil {
		return Money{}, err
	}
	return fromDecimal(li.Price.Decimal().Mul(decimal.NewFromFloat(li.Quantity)))
}

func (d InvoiceDraft) Validate() error {
	if err := validateText("client", d.Client, ErrEmptyClient); err != nil {
		return err
	}
	total, err := d.Total()
	if err != nil {
		return err
	}
	if err := total.Validate(); err != nil {
		return invalid("amount", err)
	}
	if !d.Date.IsZero() && !d.DueDate.IsZero() && d.DueDate.Before(d.Date.Time) {
		return invalid("dueDate", ErrInvalidDate)
	}
	return nil
}

func (d ExpenseDraft) Validate() error {
	if err := validateText("vendor", d.Vendor, ErrEmptyVendor); err != nil {
		return err
	}
	if err := d.Amount.Validate(); err != nil {
		return invalid("amount", err)
	}
	if len(d.Category) > maxTextLen {
		return invalid("category", ErrTooLong)
	}
	return nil
}

func (d VendorDraft) Validate() error {
	if err := validateText("name", d.Name, ErrEmptyName); err != nil {
		return err
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		return invalid("email", errors.New("missing @"))
	}
	return nil
}

func (d AccountDraft) Validate() error {
	if err := validateText("name", d.Name, ErrEmptyName); err != nil {
		return err
	}
	if !d.Type.IsValid() {
		return invalid("type", ErrInvalidAccountType)
	}
	if d.Balance.Cents > MaxAmount.Cents || d.Balance.Cents < -MaxAmount.Cents {
		return invalid("balance", ErrInvalidAmount)
	}
	return nil
}

func (g Goals) Validate() error {
	if g.Revenue.Validate() != nil {
		return invalid("revenue target", ErrInvalidTarget)
	}
	if g.Profit.Validate() != nil {
		return invalid("profit target", ErrInvalidTarget)
	}
	return nil
}

// DefaultGoals is used until the user stores targets.
func DefaultGoals() Goals {
	return Goals{Revenue: NewMoney(150000), Profit: NewMoney(60000)}
}
