package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/datasource/memory"
	"finboard/internal/services"
)

func TestTransactionRows(t *testing.T) {
	txs := memory.DemoSeed().Transactions
	txs[3].Status = ""

	rows := TransactionRows(txs)
	require.Len(t, rows, len(txs)+1)
	assert.Equal(t, TransactionHeader, rows[0])

	assert.Equal(t, []any{"2024-01-15", "Salary Deposit", "Salary", "income", "7500.00", "USD", "1", "completed"}, rows[1])
	assert.Equal(t, "-85.32", rows[2][4])
	assert.Equal(t, "-1000.00", rows[4][4], "transfers are outgoing")
	assert.Equal(t, "completed", rows[4][7], "empty status reads as completed")
}

func TestTransactionRowsKeepFormulasLiteral(t *testing.T) {
	txs := memory.DemoSeed().Transactions[:1]
	txs[0].Description = `=HYPERLINK("http://example.com","x")`
	txs[0].Category = "@risk"

	row := TransactionRows(txs)[1]
	assert.Equal(t, `'=HYPERLINK("http://example.com","x")`, row[1])
	assert.Equal(t, "'@risk", row[2])
	assert.Equal(t, "7500.00", row[4], "amounts stay numeric")
}

func TestTextCell(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"Groceries", "Groceries"},
		{"=1+1", "'=1+1"},
		{"+44 phone", "'+44 phone"},
		{"-refund", "'-refund"},
		{"@mention", "'@mention"},
		{"a=b", "a=b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textCell(tt.in), tt.in)
	}
}

func TestTransactionRowsEmpty(t *testing.T) {
	rows := TransactionRows(nil)
	require.Len(t, rows, 1)

	rows[0][0] = "changed"
	assert.Equal(t, "Date", TransactionHeader[0])
}

func TestDashboardRows(t *testing.T) {
	d, err := services.NewDashboardService(memory.NewDemo(), services.DashboardOptions{}).Load(context.Background())
	require.NoError(t, err)

	rows := DashboardRows(d)
	assert.Equal(t, DashboardHeader, rows[0])

	find := func(section, item string) any {
		for _, r := range rows[1:] {
			if r[0] == section && r[1] == item {
				return r[2]
			}
		}
		return nil
	}
	assert.Equal(t, "61880.80", find("Accounts", "Net worth"))
	assert.Equal(t, "501180.80", find("Net worth", "Net worth"))
	assert.Equal(t, "7369.68", find("Cash flow", "Net"))
	assert.Equal(t, "2y 4m (76.00% paid)", find("Payoff", "Capital One Credit Card"))
	assert.Equal(t, "85.32", find("Spending", "Food & Dining"))
	assert.Equal(t, 4, find("Insights", "Total"))

	for _, r := range rows {
		assert.Len(t, r, 3)
	}
}

func TestDashboardRowsZeroValue(t *testing.T) {
	rows := DashboardRows(services.Dashboard{})
	assert.Equal(t, "0.00", rows[1][2])
	for _, r := range rows[1:] {
		assert.NotEqual(t, "Payoff", r[0])
	}
}
