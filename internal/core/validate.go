package core

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

var (
	ErrEmptyID              = errors.New("empty id")
	ErrEmptyName            = errors.New("empty name")
	ErrEmptyDescription     = errors.New("empty description")
	ErrEmptyCategory        = errors.New("empty category")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidCurrency      = errors.New("invalid currency")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidTxType        = errors.New("invalid transaction type")
	ErrInvalidTxStatus      = errors.New("invalid transaction status")
	ErrInvalidAssetType     = errors.New("invalid asset type")
	ErrInvalidDebtType      = errors.New("invalid debt type")
	ErrInvalidInsightType   = errors.New("invalid insight type")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidCategory      = errors.New("invalid insight category")
	ErrInvalidPurchasePrice = errors.New("purchase price must be positive")
	ErrInvalidInterestRate  = errors.New("interest rate must not be negative")
	ErrInvalidPayment       = errors.New("minimum payment must not be negative")
	ErrInvalidImpact        = errors.New("impact must be between 1 and 10")
)

const maxDescriptionLen = 200

func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Investment, Credit:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case "", StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}

func (t AssetType) Valid() bool {
	switch t {
	case RealEstate, Vehicle, InvestmentAsset, FixedDeposit, OtherAsset:
		return true
	}
	return false
}

func (t DebtType) Valid() bool {
	switch t {
	case CreditCard, PersonalLoan, Mortgage, StudentLoan, AutoLoan, OtherDebt:
		return true
	}
	return false
}

func (t InsightType) Valid() bool {
	switch t {
	case Recommendation, Warning, Goal, Trend:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case High, Medium, Low:
		return true
	}
	return false
}

func (c InsightCategory) Valid() bool {
	switch c {
	case Spending, Saving, InvestingInsight, DebtInsight, Budgeting:
		return true
	}
	return false
}

// ValidateCurrency accepts an empty code or any ISO 4217 code.
func ValidateCurrency(code string) error {
	if code == "" {
		return nil
	}
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (a Account) Validate() error {
	if blank(a.Name) {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, a.Type)
	}
	if a.InterestRate != nil && *a.InterestRate < 0 {
		return ErrInvalidInterestRate
	}
	return ValidateCurrency(a.Currency)
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if blank(t.Description) {
		return ErrEmptyDescription
	}
	if len(t.Description) > maxDescriptionLen {
		return errors.New("description too long (max 200 characters)")
	}
	if blank(t.Category) {
		return ErrEmptyCategory
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTxType, t.Type)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTxStatus, t.Status)
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return ValidateCurrency(t.Currency)
}

func (a Asset) Validate() error {
	if blank(a.Name) {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAssetType, a.Type)
	}
	if !a.PurchasePrice.IsPositive() {
		return ErrInvalidPurchasePrice
	}
	if a.CurrentValue.IsNegative() {
		return ErrInvalidAmount
	}
	return ValidateCurrency(a.Currency)
}

func (d Debt) Validate() error {
	if blank(d.Name) {
		return ErrEmptyName
	}
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDebtType, d.Type)
	}
	if d.CurrentBalance.IsNegative() || d.OriginalAmount.IsNegative() {
		return ErrInvalidAmount
	}
	if d.InterestRate < 0 {
		return ErrInvalidInterestRate
	}
	if d.MinimumPayment.IsNegative() {
		return ErrInvalidPayment
	}
	return ValidateCurrency(d.Currency)
}

func (i Insight) Validate() error {
	if blank(i.Title) {
		return ErrEmptyName
	}
	if !i.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidInsightType, i.Type)
	}
	if !i.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, i.Priority)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, i.Category)
	}
	if i.Impact < 1 || i.Impact > 10 {
		return ErrInvalidImpact
	}
	return nil
}
