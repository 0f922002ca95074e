package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Investment AccountType = "investment"
	Credit     AccountType = "credit"

	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"

	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusCancelled TransactionStatus = "cancelled"

	RealEstate      AssetType = "real_estate"
	Vehicle         AssetType = "vehicle"
	InvestmentAsset AssetType = "investment"
	FixedDeposit    AssetType = "fixed_deposit"
	OtherAsset      AssetType = "other"

	CreditCard   DebtType = "credit_card"
	PersonalLoan DebtType = "personal_loan"
	Mortgage     DebtType = "mortgage"
	StudentLoan  DebtType = "student_loan"
	AutoLoan     DebtType = "auto_loan"
	OtherDebt    DebtType = "other"

	Recommendation InsightType = "recommendation"
	Warning        InsightType = "warning"
	Goal           InsightType = "goal"
	Trend          InsightType = "trend"

	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"

	Spending         InsightCategory = "spending"
	Saving           InsightCategory = "saving"
	InvestingInsight InsightCategory = "investment"
	DebtInsight      InsightCategory = "debt"
	Budgeting        InsightCategory = "budgeting"
)

type (
	AccountType       string
	TransactionType   string
	TransactionStatus string
	AssetType         string
	DebtType          string
	InsightType       string
	Priority          string
	InsightCategory   string

	// Date is a calendar day. It marshals as YYYY-MM-DD.
	Date struct {
		time.Time
	}

	Account struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Type         AccountType     `json:"type"`
		Balance      decimal.Decimal `json:"balance"` // negative for liabilities
		Currency     string          `json:"currency"`
		InterestRate *float64        `json:"interest_rate,omitempty"` // percent per year
		Institution  string          `json:"institution"`
		LastUpdated  time.Time       `json:"last_updated"`
	}

	Transaction struct {
		ID          string            `json:"id"`
		Date        Date              `json:"date"`
		Description string            `json:"description"`
		Category    string            `json:"category"`
		Type        TransactionType   `json:"type"`
		Amount      decimal.Decimal   `json:"amount"` // magnitude, sign comes from Type
		AccountID   string            `json:"account_id"`
		Currency    string            `json:"currency"`
		Status      TransactionStatus `json:"status,omitempty"`
	}

	Asset struct {
		ID               string          `json:"id"`
		Name             string          `json:"name"`
		Type             AssetType       `json:"type"`
		CurrentValue     decimal.Decimal `json:"current_value"`
		PurchasePrice    decimal.Decimal `json:"purchase_price"`
		PurchaseDate     Date            `json:"purchase_date"`
		Currency         string          `json:"currency"`
		AppreciationRate *float64        `json:"appreciation_rate,omitempty"`
		Description      string          `json:"description,omitempty"`
		LastUpdated      time.Time       `json:"last_updated"`
	}

	Debt struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Type           DebtType        `json:"type"`
		CurrentBalance decimal.Decimal `json:"current_balance"`
		OriginalAmount decimal.Decimal `json:"original_amount"`
		InterestRate   float64         `json:"interest_rate"`
		MinimumPayment decimal.Decimal `json:"minimum_payment"`
		DueDate        Date            `json:"due_date"`
		Lender         string          `json:"lender"`
		Currency       string          `json:"currency"`
		Description    string          `json:"description,omitempty"`
		LastUpdated    time.Time       `json:"last_updated"`
	}

	Insight struct {
		ID             string          `json:"id"`
		Type           InsightType     `json:"type"`
		Title          string          `json:"title"`
		Description    string          `json:"description"`
		Priority       Priority        `json:"priority"`
		Category       InsightCategory `json:"category"`
		Impact         int             `json:"impact"`
		ActionRequired bool            `json:"action_required"`
		CreatedAt      time.Time       `json:"created_at"`
	}
)

const dateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Float returns a pointer to v, for optional rate fields.
func Float(v float64) *float64 {
	return &v
}

// IsLiability reports whether the account normally carries a negative balance.
func (a Account) IsLiability() bool {
	return a.Type == Credit
}

// Settled reports whether the transaction counts toward totals.
// An empty status is treated as completed.
func (t Transaction) Settled() bool {
	return t.Status == "" || t.Status == StatusCompleted
}

// SignedAmount derives the display sign from the transaction type:
// income is positive, expenses and transfers are outgoing.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}
