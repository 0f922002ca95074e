package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

var demoUpdated = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DemoSeed is the sample snapshot shown before any data is entered.
func DemoSeed() Seed {
	return Seed{
		Accounts: []core.Account{
			{ID: "1", Name: "Main Checking", Type: core.Checking, Balance: amt("2850.00"), Currency: "USD", Institution: "Chase Bank", LastUpdated: demoUpdated},
			{ID: "2", Name: "Emergency Savings", Type: core.Savings, Balance: amt("15000.00"), Currency: "USD", InterestRate: core.Float(4.5), Institution: "Ally Bank", LastUpdated: demoUpdated},
			{ID: "3", Name: "Investment Portfolio", Type: core.Investment, Balance: amt("45230.80"), Currency: "USD", Institution: "Fidelity", LastUpdated: demoUpdated},
			{ID: "4", Name: "Credit Card", Type: core.Credit, Balance: amt("-1200.00"), Currency: "USD", Institution: "Capital One", LastUpdated: demoUpdated},
		},
		Transactions: []core.Transaction{
			{ID: "1", Date: core.NewDate(2024, 1, 15), Description: "Salary Deposit", Category: "Salary", Type: core.Income, Amount: amt("7500"), AccountID: "1", Currency: "USD", Status: core.StatusCompleted},
			{ID: "2", Date: core.NewDate(2024, 1, 14), Description: "Grocery Shopping", Category: "Food & Dining", Type: core.Expense, Amount: amt("85.32"), AccountID: "1", Currency: "USD", Status: core.StatusCompleted},
			{ID: "3", Date: core.NewDate(2024, 1, 13), Description: "Gas Station", Category: "Transportation", Type: core.Expense, Amount: amt("45.00"), AccountID: "4", Currency: "USD", Status: core.StatusCompleted},
			{ID: "4", Date: core.NewDate(2024, 1, 12), Description: "Transfer to Savings", Category: "Transfer", Type: core.Transfer, Amount: amt("1000"), AccountID: "2", Currency: "USD", Status: core.StatusCompleted},
		},
		Assets: []core.Asset{
			{ID: "1", Name: "Primary Residence", Type: core.RealEstate, CurrentValue: amt("450000"), PurchasePrice: amt("380000"), PurchaseDate: core.NewDate(2020, 6, 15), Currency: "USD", Description: "3BR/2BA house in downtown", AppreciationRate: core.Float(5.2), LastUpdated: demoUpdated},
			{ID: "2", Name: "2019 Honda Civic", Type: core.Vehicle, CurrentValue: amt("18500"), PurchasePrice: amt("25000"), PurchaseDate: core.NewDate(2019, 3, 10), Currency: "USD", Description: "Reliable daily driver", LastUpdated: demoUpdated},
			{ID: "3", Name: "5-Year CD", Type: core.FixedDeposit, CurrentValue: amt("12500"), PurchasePrice: amt("10000"), PurchaseDate: core.NewDate(2022, 1, 1), Currency: "USD", Description: "Fixed deposit at 4.5% APY", AppreciationRate: core.Float(4.5), LastUpdated: demoUpdated},
		},
		Debts: []core.Debt{
			{ID: "1", Name: "Capital One Credit Card", Type: core.CreditCard, CurrentBalance: amt("1200"), OriginalAmount: amt("5000"), InterestRate: 18.99, MinimumPayment: amt("35"), DueDate: core.NewDate(2024, 2, 15), Lender: "Capital One", Currency: "USD", Description: "Rewards credit card", LastUpdated: demoUpdated},
			{ID: "2", Name: "Student Loan", Type: core.StudentLoan, CurrentBalance: amt("25000"), OriginalAmount: amt("35000"), InterestRate: 4.5, MinimumPayment: amt("280"), DueDate: core.NewDate(2024, 2, 1), Lender: "Federal Student Aid", Currency: "USD", Description: "Federal student loan", LastUpdated: demoUpdated},
			{ID: "3", Name: "Auto Loan", Type: core.AutoLoan, CurrentBalance: amt("15500"), OriginalAmount: amt("22000"), InterestRate: 3.2, MinimumPayment: amt("385"), DueDate: core.NewDate(2024, 2, 10), Lender: "Chase Auto Finance", Currency: "USD", Description: "2019 Honda Civic loan", LastUpdated: demoUpdated},
		},
		Insights: []core.Insight{
			{ID: "1", Type: core.Goal, Title: "Great Savings Rate!", Description: "You're saving 38% of your income, which is excellent. The recommended rate is 20%.", Priority: core.Medium, Category: core.Saving, Impact: 6, CreatedAt: demoUpdated},
			{ID: "2", Type: core.Warning, Title: "Food Spending Alert", Description: "Your food expenses increased 15% this month compared to your 6-month average.", Priority: core.High, Category: core.Spending, Impact: 7, ActionRequired: true, CreatedAt: demoUpdated.Add(-24 * time.Hour)},
			{ID: "3", Type: core.Recommendation, Title: "Investment Opportunity", Description: "You have $5,000+ sitting in low-yield savings. Consider diversifying.", Priority: core.High, Category: core.InvestingInsight, Impact: 8, ActionRequired: true, CreatedAt: demoUpdated.Add(-48 * time.Hour)},
			{ID: "4", Type: core.Trend, Title: "Debt Progress", Description: "You've paid off 23% of your total debt this year. Keep up the momentum!", Priority: core.Low, Category: core.DebtInsight, Impact: 5, CreatedAt: demoUpdated.Add(-72 * time.Hour)},
		},
	}
}

// NewDemo returns a store loaded with DemoSeed.
func NewDemo() *Store {
	s, err := NewFromSeed(DemoSeed())
	if err != nil {
		panic("memory: invalid demo seed: " + err.Error())
	}
	return s
}
