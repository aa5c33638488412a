// Package checkout turns cart contents into the outbound WhatsApp
// order message. Building the message and the link has no network
// effect; sending is the messaging app's business.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
)

// EmptyCartMessage is sent when the customer opens the chat without
// items in the cart.
const EmptyCartMessage = "Hola, estoy interesado en sus productos y servicios de climatización. ¿Podrían brindarme más información?"

const (
	orderIntro  = "Hola, quiero realizar el siguiente pedido:"
	closingLine = "Quedo atento a la confirmación del pedido. ¡Gracias!"
)

// BuildMessage renders the order message: one numbered block per line
// item, blocks separated by a blank line, closed by a total line and a
// fixed sign-off. Pure function.
func BuildMessage(items []domain.CartItem, total int64) string {
	if len(items) == 0 {
		return EmptyCartMessage
	}

	var b strings.Builder
	b.WriteString(orderIntro)
	b.WriteString("\n\n")

	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Title)
		fmt.Fprintf(&b, "   Precio: %s\n", item.PriceDisplay)
		fmt.Fprintf(&b, "   Cantidad: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Subtotal: %s\n", item.Subtotal().Format())
		if item.CapacityBTU > 0 {
			fmt.Fprintf(&b, "   Capacidad: %d BTU\n", item.CapacityBTU)
		}
		if item.Category != "" {
			fmt.Fprintf(&b, "   Categoría: %s\n", item.Category)
		}
	}

	fmt.Fprintf(&b, "\nTotal: %s\n\n", domain.FormatPrice(total))
	b.WriteString(closingLine)

	return b.String()
}

// WhatsAppLink builds the wa.me URL carrying the message text. The
// phone number is reduced to its digits (country code included).
func WhatsAppLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	u := url.URL{
		Scheme: "https",
		Host:   "wa.me",
		Path:   "/" + digits.String(),
		// percent-encoded spaces, wa.me does not unfold '+'
		RawQuery: "text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20"),
	}
	return u.String()
}
