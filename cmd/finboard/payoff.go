package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/finance"
	"finboard/internal/ui"
)

func payoffCmd(_ *app) *cobra.Command {
	var balance, payment string
	var rate float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Estimate how long a debt takes to pay off",
		Long: `Estimate the number of monthly payments needed to clear a balance at a fixed
annual interest rate, e.g. finboard payoff --balance 1200 --payment 35 --rate 18.99`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := core.ParseAmount(balance, true)
			if err != nil {
				return fmt.Errorf("--balance: %w", err)
			}
			p, err := core.ParseAmount(payment, true)
			if err != nil {
				return fmt.Errorf("--payment: %w", err)
			}
			if rate < 0 {
				return fmt.Errorf("--rate: %w", core.ErrInvalidInterestRate)
			}

			res := finance.PayoffTime(b, p, rate)
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(res)
			}

			fmt.Fprintln(out, res)
			if res.Amortizes() {
				total := p.Mul(decimal.NewFromInt(int64(res.Months)))
				ui.Line(out, "Months", res.Months)
				ui.Line(out, "Paid at most", ui.FormatMoney(total, "USD"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "0", "current balance")
	cmd.Flags().StringVar(&payment, "payment", "0", "monthly payment")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}
