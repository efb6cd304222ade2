package view

import (
	"context"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const apiTimeout = 30 * time.Second

var frenchPrinter = message.NewPrinter(language.French)

// FormatAmount renders an amount with French digit grouping and the euro
// sign, e.g. 1500 -> "1 500 €".
func FormatAmount(amount int64) string {
	return frenchPrinter.Sprintf("%d €", amount)
}

// APICtx returns a context with the standard timeout for store calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
