package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a club name into its URL id ("Royal Flush Poker" -> "royal-flush-poker").
// "&" is spelled out as "and".
func Slugify(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "&", " and ")
	slug := slugStrip.ReplaceAllString(name, "-")
	return strings.Trim(slug, "-")
}

// SplitCommaList splits "a, b,,c" into ["a" "b" "c"].
func SplitCommaList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// Amounts are shown with Indian digit grouping, matching the club cards.
var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency renders an amount prefixed with its currency symbol, e.g. "₹1,000".
func FormatCurrency(amount float64, currency string) string {
	if currency == "" {
		currency = "₹"
	}
	return currency + currencyPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

// StakeLabel renders a blind pair, e.g. "₹100/₹200".
func StakeLabel(smallBlind, bigBlind float64, currency string) string {
	return FormatCurrency(smallBlind, currency) + "/" + FormatCurrency(bigBlind, currency)
}
