package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/model"
)

const (
	messageGreeting = "Hello,I'd like to buy the following items"
	messageClosing  = "Kindly proceed to the payment and shipping section."
)

// BuildMessage renders the order summary sent to the shop.
func BuildMessage(cart model.Cart, prices *PriceFormatter) string {
	lines := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, FormatLine(item, prices))
	}

	var b strings.Builder
	b.WriteString(messageGreeting)
	b.WriteString("\n\nItems:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nTotal: ")
	b.WriteString(prices.Format(cart.Total))
	b.WriteString("\n\n")
	b.WriteString(messageClosing)

	return b.String()
}

// FormatLine renders one cart line as "<quantity>x <name> - <unit price>".
func FormatLine(item model.CartItem, prices *PriceFormatter) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(item.Quantity))
	b.WriteString("x ")
	b.WriteString(item.Name)
	b.WriteString(" - ")
	b.WriteString(prices.Format(item.Price))
	return b.String()
}

// uriComponentReplacer restores the characters encodeURIComponent leaves alone
// and turns QueryEscape's '+' into "%20". A literal '+' was already escaped to "%2B".
var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI component.
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

// NormalizeNumber strips a leading '+' and all spaces from a phone number.
func NormalizeNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	return strings.TrimPrefix(number, "+")
}

// DeepLink builds "<baseURL>/<number>?text=<encoded message>".
func DeepLink(baseURL, number, text string) string {
	return strings.TrimRight(baseURL, "/") + "/" + NormalizeNumber(number) + "?text=" + EncodeURIComponent(text)
}
