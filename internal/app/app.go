// Package app wires the client core together. One App per process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nikolayk812/fluxshop/internal/admin"
	"github.com/nikolayk812/fluxshop/internal/apiclient"
	"github.com/nikolayk812/fluxshop/internal/auth"
	"github.com/nikolayk812/fluxshop/internal/cart"
	"github.com/nikolayk812/fluxshop/internal/checkout"
	"github.com/nikolayk812/fluxshop/internal/config"
	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/session"
	"github.com/nikolayk812/fluxshop/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

var ErrProductNotFound = errors.New("product not found")

type App struct {
	Config config.Config
	Logger *zap.Logger

	Store    store.Backend
	API      *apiclient.Client
	Session  *session.Manager
	Cart     *cart.Manager
	Checkout *checkout.Flow
	Auth     *auth.Service
	Admin    *admin.Editor

	currency currency.Unit
}

// New opens the store and restores the session and the cart from it.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	backend, err := store.Open(ctx, store.Options{
		Driver: cfg.Store.Driver,
		Path:   cfg.Store.Path,
		DSN:    cfg.Store.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}

	client := apiclient.New(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, logger.Named("api"))
	sess := session.New(backend, client, logger.Named("session"))
	cartManager := cart.New(backend, logger.Named("cart"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sess.Init(gctx); err != nil {
			return fmt.Errorf("session.Init: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cartManager.Init(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Join(err, backend.Close())
	}

	logger.Debug("app ready",
		zap.String("api", cfg.API.BaseURL),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("authenticated", sess.Token() != ""),
		zap.Int("cart_lines", cartManager.Len()),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    backend,
		API:      client,
		Session:  sess,
		Cart:     cartManager,
		Checkout: checkout.New(cartManager, client, unit, logger.Named("checkout")),
		Auth:     auth.NewService(client, sess, logger.Named("auth")),
		Admin:    admin.NewEditor(client, sess, logger.Named("admin")),
		currency: unit,
	}, nil
}

// FindProduct looks id up in the catalog.
func (a *App) FindProduct(ctx context.Context, id string) (domain.Product, error) {
	products, err := a.API.ListProducts(ctx, "")
	if err != nil {
		return domain.Product{}, fmt.Errorf("API.ListProducts: %w", err)
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product[%s]: %w", id, ErrProductNotFound)
}

func (a *App) CartTotal() domain.Money {
	return domain.NewMoney(a.Cart.Total(), a.currency)
}

func (a *App) Close() error {
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("Store.Close: %w", err)
	}
	return nil
}
