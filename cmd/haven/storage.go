package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	// database/sql drivers for the sqlite and postgres backends.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	firestorestore "github.com/PabloGalante/haven/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/haven/internal/adapters/storage/memory"
	"github.com/PabloGalante/haven/internal/adapters/storage/sqlstore"
	"github.com/PabloGalante/haven/internal/config"
	"github.com/PabloGalante/haven/internal/domain"
	"github.com/PabloGalante/haven/internal/observability"
)

type stores struct {
	sessions domain.SessionStore
	messages domain.MessageStore
	close    func() error
}

func openStores(ctx context.Context, sc config.StorageConfig) (*stores, error) {
	log := observability.WithFields(zap.String("backend", sc.Backend))

	switch strings.ToLower(sc.Backend) {
	case config.StorageSQLite, config.StoragePostgres:
		dialect := sqlstore.SQLite
		if strings.EqualFold(sc.Backend, config.StoragePostgres) {
			dialect = sqlstore.Postgres
		}
		s, err := sqlstore.Open(ctx, dialect, sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", sc.Backend, err)
		}
		log.Info("using sql storage")
		return &stores{sessions: s, messages: s, close: s.Close}, nil

	case config.StorageFirestore:
		s, err := firestorestore.NewStore(ctx, sc.GCPProject)
		if err != nil {
			return nil, fmt.Errorf("open firestore store: %w", err)
		}
		log.Info("using firestore storage", zap.String("project", sc.GCPProject))
		// 1 store, implements 2 interfaces
		return &stores{sessions: s, messages: s, close: s.Close}, nil

	default:
		log.Info("using in-memory storage")
		return &stores{
			sessions: memstore.NewSessionStore(),
			messages: memstore.NewMessageStore(),
			close:    func() error { return nil },
		}, nil
	}
}
