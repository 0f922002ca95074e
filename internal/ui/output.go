package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan, color.Bold)
)

// Header writes a section title underlined to its width.
func Header(w io.Writer, text string) {
	cyan.Fprintf(w, "\n%s\n", text)
	cyan.Fprintf(w, "%s\n", strings.Repeat("=", len(text)))
}

// Signed formats amount as money, green when positive and red when negative.
func Signed(amount decimal.Decimal, code string) string {
	s := FormatMoney(amount, code)
	switch amount.Sign() {
	case 1:
		return green.Sprint("+" + s)
	case -1:
		return red.Sprint(s)
	}
	return s
}

// Priority colours an insight priority label.
func Priority(p core.Priority) string {
	label := strings.ToUpper(string(p))
	switch p {
	case core.High:
		return red.Sprint(label)
	case core.Medium:
		return yellow.Sprint(label)
	}
	return label
}

// Warning writes a highlighted warning line.
func Warning(w io.Writer, text string) {
	yellow.Fprintf(w, "! %s\n", text)
}

// Line writes a "label: value" pair padded for alignment.
func Line(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %-24s %v\n", label+":", value)
}
