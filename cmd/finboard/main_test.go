package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/assistant"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	for _, k := range []string{
		"FINBOARD_BACKEND", "FINBOARD_SEED_FILE", "FINBOARD_LOG_LEVEL", "FINBOARD_LOG_FORMAT",
		"FINBOARD_CACHE_TTL", "FINBOARD_RECENT_LIMIT", "GOOGLE_SPREADSHEET_ID",
	} {
		t.Setenv(k, "")
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPayoffCommand(t *testing.T) {
	out, err := run(t, "payoff", "--balance", "1200", "--payment", "35", "--rate", "18.99")
	require.NoError(t, err)
	assert.Contains(t, out, "2y 4m")
	assert.Contains(t, out, "28")

	out, err = run(t, "payoff", "--balance", "1200", "--payment", "0", "--rate", "18.99")
	require.NoError(t, err)
	assert.Contains(t, out, "Never (no payment)")

	_, err = run(t, "payoff", "--balance", "abc", "--payment", "35")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--balance")
}

func TestSummaryJSON(t *testing.T) {
	out, err := run(t, "summary", "--json")
	require.NoError(t, err)

	var got struct {
		AccountsSummary struct {
			TotalAssets string `json:"total_assets"`
		} `json:"accounts_summary"`
		Recent   []map[string]any `json:"recent_transactions"`
		Insights []map[string]any `json:"insights"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "63080.8", got.AccountsSummary.TotalAssets)
	assert.Len(t, got.Recent, 4)
	require.Len(t, got.Insights, 4)
	assert.Equal(t, "3", got.Insights[0]["id"])
}

func TestSummaryText(t *testing.T) {
	out, err := run(t, "summary")
	require.NoError(t, err)
	for _, want := range []string{"Accounts", "Capital One Credit Card", "2y 4m", "Recent transactions", "Investment Opportunity"} {
		assert.Contains(t, out, want)
	}
}

func TestInsightsCommand(t *testing.T) {
	out, err := run(t, "insights", "--filter", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Investment Opportunity")
	assert.Contains(t, out, "Food Spending Alert")
	assert.NotContains(t, out, "Debt Progress")

	_, err = run(t, "insights", "--filter", "urgent")
	assert.Error(t, err)
}

func TestTransactionsCommand(t *testing.T) {
	out, err := run(t, "transactions", "--type", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "Grocery Shopping")
	assert.Contains(t, out, "Gas Station")
	assert.NotContains(t, out, "Salary Deposit")

	out, err = run(t, "transactions", "--search", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")
}

func TestAskCommand(t *testing.T) {
	out, err := run(t, "ask")
	require.NoError(t, err)
	assert.Contains(t, out, assistant.Greeting)

	out, err = run(t, "ask", "show", "my", "expenses")
	require.NoError(t, err)
	assert.Contains(t, out, "Your total expenses this month")
}

func TestExportDryRun(t *testing.T) {
	out, err := run(t, "export", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported transactions to mem:Transactions!1:5")

	out, err = run(t, "export", "--dry-run", "--what", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "mem:Dashboard!1:")

	_, err = run(t, "export", "--dry-run", "--what", "budget")
	assert.Error(t, err)
}

func TestExportRequiresGoogleSettings(t *testing.T) {
	_, err := run(t, "export")
	require.Error(t, err)
}

func TestInvalidBackend(t *testing.T) {
	_, err := run(t, "--backend", "postgres", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
