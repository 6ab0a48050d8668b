package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tableval/internal/config"
	"github.com/sells-group/tableval/internal/store"
)

// openStore opens the configured run store and runs migrations.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
