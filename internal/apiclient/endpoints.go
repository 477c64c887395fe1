package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nikolayk812/fluxshop/internal/domain"
)

func (c *Client) Me(ctx context.Context, token string) (domain.Profile, error) {
	if token == "" {
		return domain.Profile{}, fmt.Errorf("token is empty")
	}

	var profile *domain.Profile
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/me", token: token, out: &profile})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("c.do: %w", err)
	}
	if profile == nil {
		return domain.Profile{}, fmt.Errorf("profile is missing in response")
	}

	return *profile, nil
}

func (c *Client) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	var resp productsResponse
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/products",
		query:  url.Values{"search": []string{search}},
		out:    &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("c.do: %w", err)
	}

	if resp.Products == nil {
		return []domain.Product{}, nil
	}
	return resp.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, draft domain.ProductDraft) (domain.Product, error) {
	var product domain.Product
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/products",
		token:  token,
		body:   mapDraftToJSON(draft),
		out:    &product,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("c.do: %w", err)
	}

	return product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, draft domain.ProductDraft) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, fmt.Errorf("id is empty")
	}

	var product domain.Product
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/api/products/" + url.PathEscape(id),
		token:  token,
		body:   mapDraftToJSON(draft),
		out:    &product,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("c.do: %w", err)
	}

	return product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	if id == "" {
		return fmt.Errorf("id is empty")
	}

	err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/api/products/" + url.PathEscape(id),
		token:  token,
	})
	if err != nil {
		return fmt.Errorf("c.do: %w", err)
	}

	return nil
}

func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderReceipt, error) {
	var resp orderResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/orders",
		body:   mapOrderToJSON(req),
		out:    &resp,
	})
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("c.do: %w", err)
	}
	if !resp.Total.Valid {
		return domain.OrderReceipt{}, fmt.Errorf("total is missing in response")
	}

	return domain.OrderReceipt{Total: resp.Total.Decimal}, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.exchange(ctx, "/api/auth/login", creds)
}

func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	return c.exchange(ctx, "/api/auth/signup", req)
}

func (c *Client) exchange(ctx context.Context, path string, body any) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, call{method: http.MethodPost, path: path, body: body, out: &resp})
	if err != nil {
		return "", fmt.Errorf("c.do: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("token is missing in response")
	}

	return resp.Token, nil
}
