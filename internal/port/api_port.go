package port

import (
	"context"

	"github.com/nikolayk812/fluxshop/internal/domain"
)

type ProfileAPI interface {
	Me(ctx context.Context, token string) (domain.Profile, error)
}

type CatalogAPI interface {
	ListProducts(ctx context.Context, search string) ([]domain.Product, error)
}

type ProductAPI interface {
	CatalogAPI
	CreateProduct(ctx context.Context, token string, draft domain.ProductDraft) (domain.Product, error)
	UpdateProduct(ctx context.Context, token, id string, draft domain.ProductDraft) (domain.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

type OrderAPI interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderReceipt, error)
}

type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Signup(ctx context.Context, req domain.SignupRequest) (string, error)
}
