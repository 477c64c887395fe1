package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); pm {
	case PaymentCard, PaymentCOD:
		return pm, nil
	default:
		return "", fmt.Errorf("payment method[%s] is not valid", s)
	}
}

type ShippingForm struct {
	Name          string
	Address       string
	PaymentMethod PaymentMethod
}

// Validate reports the first missing or invalid field.
func (f ShippingForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return NewValidationError("Enter your full name.")
	}
	if strings.TrimSpace(f.Address) == "" {
		return NewValidationError("Enter a shipping address.")
	}
	if f.PaymentMethod != PaymentCard && f.PaymentMethod != PaymentCOD {
		return NewValidationError("Choose card or cash on delivery.")
	}
	return nil
}

type OrderItem struct {
	ProductID string
	Title     string
	Price     decimal.Decimal
	Quantity  int
	Image     string
}

type OrderRequest struct {
	Name          string
	Address       string
	PaymentMethod PaymentMethod
	Items         []OrderItem
}

// NewOrderRequest copies every cart line into an order item.
func NewOrderRequest(form ShippingForm, lines []CartLine) OrderRequest {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	return OrderRequest{
		Name:          form.Name,
		Address:       form.Address,
		PaymentMethod: form.PaymentMethod,
		Items:         items,
	}
}

type OrderReceipt struct {
	Total decimal.Decimal
}

type ProductDraft struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
}
