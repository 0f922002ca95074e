// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed by users
// into exact decimals. Amounts are never held as floats.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered decimal string to an exact decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up to two places. Negative values are rejected unless allowNegative is
// set, which account balances need for credit lines.
//
// Examples:
//
//	ParseAmount("12.34", false)   -> 12.34, nil
//	ParseAmount("12,345", false)  -> 12.35, nil
//	ParseAmount("-450.00", true)  -> -450, nil
//	ParseAmount("-1", false)      -> error
func ParseAmount(s string, allowNegative bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch s[0] {
	case '-':
		if !allowNegative {
			return decimal.Zero, ErrInvalidAmount
		}
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// Sum adds up amounts without mutating the input.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
