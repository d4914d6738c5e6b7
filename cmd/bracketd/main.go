// Command bracketd runs the tournament engine as an HTTP daemon: it loads
// configuration and the last persisted snapshot, then serves the
// command/query API over chi (internal/api).
package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/braccet/tournament-engine/internal/api"
	"github.com/braccet/tournament-engine/internal/clock"
	"github.com/braccet/tournament-engine/internal/config"
	"github.com/braccet/tournament-engine/internal/idgen"
	"github.com/braccet/tournament-engine/internal/logging"
	"github.com/braccet/tournament-engine/internal/standingscache"
	"github.com/braccet/tournament-engine/internal/store"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.IsProduction())
	defer logging.Log.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("open database", logging.Err(err))
	}
	defer db.Close()

	snapshotStore := store.NewSnapshotStore(db, cfg.SnapshotKey)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := snapshotStore.EnsureSchema(ctx); err != nil {
		logging.Fatal("ensure snapshot schema", logging.Err(err))
	}
	initial, err := snapshotStore.Load(ctx)
	if err != nil {
		logging.Fatal("load snapshot", logging.Err(err))
	}

	cache, err := standingscache.New(cfg.RedisURL)
	if err != nil {
		logging.Warn("standings cache unavailable, continuing without it", logging.Err(err))
		cache = nil
	} else {
		defer cache.Close()
	}

	srv := api.NewServer(initial, snapshotStore, cache, idgen.UUID{}, clock.New())
	router := api.NewRouter(srv, []byte(cfg.JWTSecret), cfg.CORSOrigins)

	logging.Info("bracketd starting", logging.String("port", cfg.Port), logging.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logging.Fatal("server failed", logging.Err(err))
	}
}
