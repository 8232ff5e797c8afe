package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/clients/classifier"
	"github.com/KirkDiggler/ecosnap-api/internal/clients/inat"
	"github.com/KirkDiggler/ecosnap-api/internal/config"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/species"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/clock"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/ecosnap-api/internal/redis"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
)

const shutdownTimeout = 10 * time.Second

var _ progression.Persister = (*collection.AsyncWriter)(nil)

// app wires the game together for one player
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	clock   clock.Clock
	repo    collection.Repository
	redis   redisclient.Client
	writer  *collection.AsyncWriter
	store   *progression.Store
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:     cfg,
		catalog: catalog.Default(),
		clock:   clock.New(),
	}

	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		a.redis = client

		repo, err := collection.NewRedisRepository(&collection.Config{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "failed to create collection repository")
		}
		a.repo = repo
	default:
		a.repo = collection.NewInMemory()
	}

	doc, err := a.load(ctx)
	if err != nil {
		a.closeRedis()
		return nil, err
	}

	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: a.repo,
		PlayerID:   cfg.PlayerID,
	})
	if err != nil {
		a.closeRedis()
		return nil, errors.Wrap(err, "failed to create collection writer")
	}
	a.writer = writer

	store, err := progression.NewStore(&progression.Config{
		Catalog:   a.catalog,
		Persister: writer,
		Document:  doc,
	})
	if err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "failed to create progression store")
	}
	a.store = store

	return a, nil
}

// load fetches the saved collection; a new player starts empty
func (a *app) load(ctx context.Context) (*collection.Document, error) {
	out, err := a.repo.Load(ctx, collection.LoadInput{PlayerID: a.cfg.PlayerID})
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Info("Starting a new collection", "player_id", a.cfg.PlayerID)
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load collection")
	}
	return out.Document, nil
}

// Close drains pending writes and releases connections
func (a *app) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if a.writer != nil {
		err = a.writer.Close(ctx)
	}
	a.closeRedis()
	return err
}

func (a *app) closeRedis() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
}

func (a *app) captureService(labels []string) (capture.Service, error) {
	return capture.NewOrchestrator(&capture.Config{
		Classifier: classifier.NewStatic(labels...),
		Catalog:    a.catalog,
		Store:      a.store,
		Clock:      a.clock,
	})
}

func (a *app) speciesService() (species.Service, error) {
	taxa, err := inat.New(&inat.Config{BaseURL: a.cfg.INatBaseURL})
	if err != nil {
		return nil, err
	}

	return species.NewOrchestrator(&species.Config{
		Catalog: a.catalog,
		Store:   a.store,
		Clock:   a.clock,
		Taxa:    taxa,
	})
}

func (a *app) battleSession(bus events.EventBus) (*battle.Session, error) {
	delay := a.cfg.OpponentDelay
	if delay == 0 {
		delay = -1
	}

	return battle.NewSession(&battle.Config{
		Party:         a.store,
		Catalog:       a.catalog,
		Roller:        dice.DefaultRoller,
		EventBus:      bus,
		IDGenerator:   idgen.NewUUID("battle"),
		Clock:         a.clock,
		OpponentDelay: delay,
	})
}

// withApp runs fn against a freshly wired app and always closes it
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	runErr := fn(a)
	if closeErr := a.Close(); closeErr != nil {
		slog.Error("Failed to flush collection", "error", closeErr)
		if runErr == nil {
			runErr = closeErr
		}
	}
	return runErr
}
