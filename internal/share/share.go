// Package share builds the outbound share targets for an invoice: a
// prefilled mailto URL and a WhatsApp deep link. The package only
// constructs the templated text and URLs; opening them is owned by the
// user's platform.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aakashfurniture/invoicing/internal/config"
	"github.com/aakashfurniture/invoicing/internal/models"
	"github.com/aakashfurniture/invoicing/internal/money"
)

// EmailSubject is the subject line of the prefilled email.
func EmailSubject(inv models.Invoice, biz config.Business) string {
	return fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, biz.Name)
}

// EmailBody is the templated body of the prefilled email.
func EmailBody(inv models.Invoice, biz config.Business) string {
	return fmt.Sprintf(
		"Dear %s,\n\nPlease find attached invoice %s.\n\nTotal Amount: ₹%s\n\nThank you for your business.\n\nRegards,\n%s",
		inv.Customer.Name, inv.InvoiceNumber, money.Format(inv.GrandTotal), biz.Name,
	)
}

// Message is the short text used for the messaging deep link.
func Message(inv models.Invoice, biz config.Business) string {
	return fmt.Sprintf(
		"Hello %s, here is your invoice %s from %s for Amount ₹%s.",
		inv.Customer.Name, inv.InvoiceNumber, biz.Name, money.Format(inv.GrandTotal),
	)
}

// Mailto returns a mailto URL addressed to the customer with the templated
// subject and body.
func Mailto(inv models.Invoice, biz config.Business) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		inv.Customer.Email,
		escape(EmailSubject(inv, biz)),
		escape(EmailBody(inv, biz)),
	)
}

// WhatsApp returns a wa.me deep link addressed to the customer's phone with
// the prefilled message. Everything but digits is stripped from the phone
// number.
func WhatsApp(inv models.Invoice, biz config.Business) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		digits(inv.Customer.Phone),
		escape(Message(inv, biz)),
	)
}

// escape percent-encodes like encodeURIComponent: query escaping with
// spaces as %20, which mail clients handle more reliably than '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
