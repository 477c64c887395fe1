package store

import (
	"context"
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/port"
)

// Well-known keys.
const (
	TokenKey = "token"
	CartKey  = "cart"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Backend is a port.Store that holds resources until closed.
type Backend interface {
	port.Store
	Close() error
}

type Options struct {
	Driver string
	Path   string // sqlite file
	DSN    string // postgres connection string
}

func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		s, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, fmt.Errorf("OpenSQLite: %w", err)
		}
		return s, nil
	case DriverPostgres:
		s, err := OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("OpenPostgres: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("driver[%s] is not supported", opts.Driver)
	}
}
