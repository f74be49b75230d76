// Package invoicerender renders invoices as standalone HTML documents.
package invoicerender

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"html/template"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

const ContentType = "text/html; charset=utf-8"

//go:embed invoice.html.tmpl
var invoiceTemplate string

var _ ports.InvoiceRenderer = (*HTMLRenderer)(nil)

type HTMLRenderer struct {
	tmpl     *template.Template
	currency string
}

func NewHTMLRenderer(currency string) (*HTMLRenderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl, currency: currency}, nil
}

type line struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

type payment struct {
	PaymentID      string
	GatewayOrderID string
}

type page struct {
	Number        string
	ForAdmin      bool
	IssuedAt      string
	OrderID       string
	PlacedAt      string
	MemberID      string
	FranchiseName string
	Address       struct{ Line1, Line2, City, PostalCode, Phone string }
	Lines         []line
	Subtotal      string
	DeliveryFee   string
	Discount      string
	Total         string
	Currency      string
	Payment       *payment
	AdminNotes    string
}

// Render produces the invoice page. Admin copies add member, gateway and note details
// that the franchise copy leaves out.
func (r *HTMLRenderer) Render(ctx context.Context, doc ports.InvoiceDocument) (string, []byte, error) {
	if doc.Order == nil {
		return "", nil, errors.New("invoice document has no order")
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	o := doc.Order

	p := page{
		Number:        invoiceNumber(o.ID(), doc.ForAdmin),
		ForAdmin:      doc.ForAdmin,
		IssuedAt:      doc.IssuedAt.UTC().Format("02 Jan 2006 15:04 MST"),
		OrderID:       o.ID().String(),
		PlacedAt:      o.CreatedAt().UTC().Format("02 Jan 2006"),
		FranchiseName: o.FranchiseName(),
		Subtotal:      o.Subtotal().String(),
		DeliveryFee:   o.EffectiveDeliveryFee().String(),
		Total:         o.TotalAmount().String(),
		Currency:      r.currency,
	}
	if discount := o.LoyaltyDiscount(); !discount.IsZero() {
		p.Discount = discount.String()
	}
	addr := o.ShippingAddress()
	p.Address.Line1, p.Address.Line2 = addr.Line1(), addr.Line2()
	p.Address.City, p.Address.PostalCode, p.Address.Phone = addr.City(), addr.PostalCode(), addr.Phone()
	for _, item := range o.Items() {
		p.Lines = append(p.Lines, line{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Total:     item.TotalPrice().String(),
		})
	}
	if doc.Payment != nil {
		p.Payment = &payment{PaymentID: doc.Payment.PaymentID(), GatewayOrderID: doc.Payment.GatewayOrderID()}
	}
	if doc.ForAdmin {
		p.MemberID = o.MemberID().String()
		p.AdminNotes = o.AdminNotes()
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return "", nil, err
	}
	return ContentType, buf.Bytes(), nil
}

func invoiceNumber(orderID kernel.UUID, forAdmin bool) string {
	n := "INV-" + strings.ToUpper(strings.ReplaceAll(orderID.String(), "-", "")[:12])
	if forAdmin {
		n += "-A"
	}
	return n
}
