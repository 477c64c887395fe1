// Package checkout turns the cart into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const fallbackReason = "Failed to place order"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmissionInProgress = errors.New("submission in progress")
	// ErrCartNotCleared means the order was placed but the cart still holds its lines.
	ErrCartNotCleared       = errors.New("order placed, cart not cleared")
)

// Cart is the part of the cart manager checkout needs.
type Cart interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context) error
}

type Receipt struct {
	Total domain.Money
	Items int
}

type Flow struct {
	cart     Cart
	api      port.OrderAPI
	currency currency.Unit
	logger   *zap.Logger

	submitting atomic.Bool
}

func New(cart Cart, api port.OrderAPI, unit currency.Unit, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Flow{
		cart:     cart,
		api:      api,
		currency: unit,
		logger:   logger,
	}
}

// Submitting reports whether an order request is in flight.
func (f *Flow) Submitting() bool {
	return f.submitting.Load()
}

// Submit places one order for the whole cart and clears the cart on success.
// On failure the cart is left untouched.
func (f *Flow) Submit(ctx context.Context, form domain.ShippingForm) (Receipt, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return Receipt{}, ErrSubmissionInProgress
	}
	defer f.submitting.Store(false)

	lines := f.cart.Lines()
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	if err := form.Validate(); err != nil {
		return Receipt{}, err
	}

	req := domain.NewOrderRequest(form, lines)

	orderReceipt, err := f.api.PlaceOrder(ctx, req)
	if err != nil {
		f.logger.Warn("order rejected", zap.Int("items", len(req.Items)), zap.Error(err))
		return Receipt{}, fmt.Errorf("api.PlaceOrder: %w", err)
	}

	receipt := Receipt{
		Total: domain.NewMoney(orderReceipt.Total, f.currency),
		Items: len(req.Items),
	}
	f.logger.Info("order placed", zap.Int("items", receipt.Items), zap.Stringer("total", receipt.Total))

	if err := f.cart.Clear(ctx); err != nil {
		return receipt, fmt.Errorf("%w: cart.Clear: %w", ErrCartNotCleared, err)
	}

	return receipt, nil
}

// FailureReason is the text shown to the user when Submit fails.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty."
	case errors.Is(err, ErrSubmissionInProgress):
		return "Placing order..."
	default:
		return domain.Reason(err, fallbackReason)
	}
}
