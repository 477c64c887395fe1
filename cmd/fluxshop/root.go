package main

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/app"
	"github.com/nikolayk812/fluxshop/internal/config"
	"github.com/nikolayk812/fluxshop/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	root *cobra.Command

	// global flags
	configPath string
	apiURL     string
	storeKind  string
	storePath  string
	verbose    bool

	logger *zap.Logger
	app    *app.App
}

func newCLI() *cli {
	c := &cli{}

	c.root = &cobra.Command{
		Use:   "fluxshop",
		Short: "FluxShop storefront client",
		Long: `fluxshop browses the FluxShop catalog, keeps a local cart,
places orders and manages the account session.

The auth token and the cart are kept in a local store and survive restarts.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&c.apiURL, "api-url", "", "shop API base URL (overrides config)")
	flags.StringVar(&c.storeKind, "store", "", "local store driver: sqlite, memory or postgres (overrides config)")
	flags.StringVar(&c.storePath, "store-path", "", "sqlite store file (overrides config)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	c.root.AddCommand(
		c.productsCmd(),
		c.cartCmd(),
		c.checkoutCmd(),
		c.loginCmd(),
		c.signupCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.adminCmd(),
	)

	return c
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	if c.storeKind != "" {
		cfg.Store.Driver = c.storeKind
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Encoding, c.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.app, err = app.New(cmd.Context(), cfg, c.logger)
	if err != nil {
		return fmt.Errorf("app.New: %w", err)
	}

	return nil
}

func (c *cli) close() error {
	var errs []error
	if c.app != nil {
		errs = append(errs, c.app.Close())
		c.app = nil
	}
	if c.logger != nil {
		// stderr sync fails on some terminals; ignore
		_ = c.logger.Sync()
	}
	return errors.Join(errs...)
}

// userError logs the underlying error and returns only the text meant for the user.
func (c *cli) userError(err error, reason string) error {
	c.logger.Debug("command failed", zap.Error(err))
	return errors.New(reason)
}
