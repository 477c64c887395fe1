package apiclient

import (
	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/shopspring/decimal"
)

// Prices go out as JSON numbers; decimal.Decimal would marshal as a string.

type orderItemJSON struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type orderJSON struct {
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	Items         []orderItemJSON `json:"items"`
}

type orderResponse struct {
	Total decimal.NullDecimal `json:"total"`
}

type productJSON struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func mapOrderToJSON(req domain.OrderRequest) orderJSON {
	items := make([]orderItemJSON, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItemJSON{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price.InexactFloat64(),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return orderJSON{
		Name:          req.Name,
		Address:       req.Address,
		PaymentMethod: string(req.PaymentMethod),
		Items:         items,
	}
}

func mapDraftToJSON(draft domain.ProductDraft) productJSON {
	return productJSON{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price.InexactFloat64(),
		Category:    draft.Category,
		Image:       draft.Image,
	}
}
