// Package moneyfmt renders amounts and movement dates for display.
//
// Monetary formatting is delegated to golang.org/x/text so symbol,
// grouping and decimal rules follow the locale and currency pair.
package moneyfmt

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount formats the value according to the given BCP 47 locale and ISO
// 4217 currency code.
func Amount(value decimal.Decimal, locale, code string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("parse currency %q: %w", code, err)
	}

	v, _ := value.Float64()
	p := message.NewPrinter(tag)

	return p.Sprintf("%v", currency.Symbol(unit.Amount(v))), nil
}

// dateLayouts maps locales to their numeric calendar date layout. Locales
// not listed fall back to day/month/year.
var dateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"pt-PT": "02/01/2006",
	"de-DE": "2.1.2006",
}

const defaultDateLayout = "02/01/2006"

// datetimeLayouts maps locales to a numeric date plus time layout, used
// for the current date header.
var datetimeLayouts = map[string]string{
	"en-US": "1/2/2006, 3:04 PM",
	"pt-PT": "02/01/2006, 15:04",
	"de-DE": "2.1.2006, 15:04",
}

const defaultDatetimeLayout = "02/01/2006, 15:04"

// MovementDate renders a movement timestamp relative to now: "Today",
// "Yesterday", "{n} days ago" up to a week, then the locale calendar date.
// now is passed in by the caller so rendering stays deterministic.
func MovementDate(ts time.Time, locale string, now time.Time) string {
	daysPassed := int(math.Round(math.Abs(now.Sub(ts).Hours() / 24)))

	switch {
	case daysPassed == 0:
		return "Today"
	case daysPassed == 1:
		return "Yesterday"
	case daysPassed <= 7:
		return fmt.Sprintf("%d days ago", daysPassed)
	}

	layout, ok := dateLayouts[locale]
	if !ok {
		layout = defaultDateLayout
	}

	return ts.Format(layout)
}

// CurrentDate renders now as the locale date and time header shown after
// login.
func CurrentDate(now time.Time, locale string) string {
	layout, ok := datetimeLayouts[locale]
	if !ok {
		layout = defaultDatetimeLayout
	}

	return now.Format(layout)
}
