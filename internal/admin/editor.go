// Package admin edits the product catalog on behalf of an admin session.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrAdminOnly = errors.New("admin only")

type Session interface {
	Token() string
	IsAdmin() bool
}

type Editor struct {
	api     port.ProductAPI
	session Session
	logger  *zap.Logger
}

func NewEditor(api port.ProductAPI, session Session, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Editor{
		api:     api,
		session: session,
		logger:  logger,
	}
}

func (e *Editor) List(ctx context.Context) ([]domain.Product, error) {
	products, err := e.api.ListProducts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("api.ListProducts: %w", err)
	}
	return products, nil
}

// Save creates a product when editingID is empty and updates it otherwise.
func (e *Editor) Save(ctx context.Context, editingID string, draft domain.ProductDraft) (domain.Product, error) {
	if !e.session.IsAdmin() {
		return domain.Product{}, ErrAdminOnly
	}
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Product{}, domain.NewValidationError("Title is required.")
	}

	if editingID == "" {
		p, err := e.api.CreateProduct(ctx, e.session.Token(), draft)
		if err != nil {
			return domain.Product{}, fmt.Errorf("api.CreateProduct: %w", err)
		}
		e.logger.Info("product created", zap.String("product_id", p.ID))
		return p, nil
	}

	p, err := e.api.UpdateProduct(ctx, e.session.Token(), editingID, draft)
	if err != nil {
		return domain.Product{}, fmt.Errorf("api.UpdateProduct: %w", err)
	}
	e.logger.Info("product updated", zap.String("product_id", editingID))
	return p, nil
}

func (e *Editor) Delete(ctx context.Context, id string) error {
	if !e.session.IsAdmin() {
		return ErrAdminOnly
	}

	if err := e.api.DeleteProduct(ctx, e.session.Token(), id); err != nil {
		return fmt.Errorf("api.DeleteProduct: %w", err)
	}
	e.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// DraftFromForm builds a draft from raw form fields. A blank price means zero.
func DraftFromForm(title, description, price, category, image string) (domain.ProductDraft, error) {
	if strings.TrimSpace(title) == "" {
		return domain.ProductDraft{}, domain.NewValidationError("Title is required.")
	}

	amount := decimal.Zero
	if price = strings.TrimSpace(price); price != "" {
		var err error
		amount, err = decimal.NewFromString(price)
		if err != nil || amount.IsNegative() {
			return domain.ProductDraft{}, domain.NewValidationError("Price must be a non-negative number.")
		}
	}

	return domain.ProductDraft{
		Title:       strings.TrimSpace(title),
		Description: description,
		Price:       amount,
		Category:    category,
		Image:       image,
	}, nil
}

func SaveFailure(err error) string {
	if errors.Is(err, ErrAdminOnly) {
		return "Admin only"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return "Failed to save"
}
