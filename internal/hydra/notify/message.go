package notify

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// ParseModeHTML marks message text as Telegram HTML.
const ParseModeHTML = "HTML"

// Message is a rendered notification.
type Message struct {
	Text      string `json:"text"`
	ParseMode string `json:"parseMode,omitempty"`
}

// Quote is the unit price of one HYDRA in the subscriber's currency. A zero
// Quote renders no fiat values.
type Quote struct {
	Currency string
	Price    decimal.Decimal
}

// Valid reports whether a price was available.
func (q Quote) Valid() bool {
	return q.Currency != "" && q.Price.IsPositive()
}

// Value converts base units to currency, floored to cents.
func (q Quote) Value(units int64) decimal.Decimal {
	return floorCents(q.Price.Mul(decimal.New(units, -8)))
}

func floorCents(v decimal.Decimal) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(100)).Floor().Div(decimal.NewFromInt(100))
}

func (q Quote) format(v decimal.Decimal) string {
	return group(v.StringFixed(2)) + " " + q.Currency
}

// amount renders base units as HYDRA rounded to two places with thousands
// separators.
func amount(units int64) string {
	return group(decimal.New(units, -8).Round(2).String())
}

func signed(units int64) string {
	if units >= 0 {
		return "+" + amount(units)
	}
	return amount(units)
}

func tokenAmount(v decimal.Decimal) string {
	return group(v.String())
}

func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

var smallNumbers = []string{
	"zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "eleven", "twelve",
}

func words(n int) string {
	if n >= 0 && n < len(smallNumbers) {
		return smallNumbers[n]
	}
	return decimal.NewFromInt(int64(n)).String()
}

func ordinal(n int64) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return decimal.NewFromInt(n).String() + suffix
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// displayName is what a message calls the subscribed address.
func displayName(sub model.Subscription, ref model.AddressRef) string {
	if sub.Name != "" {
		return sub.Name
	}
	if ref.Native != "" {
		return ref.Native
	}
	return ref.Hex
}
