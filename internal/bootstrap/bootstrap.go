// Package bootstrap opens the backing services named by the configuration.
// The API server and the operator CLI share it.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	fbapp "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"souqmanaqil/internal/domain/service"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/internal/infrastructure/firebase"
	"souqmanaqil/internal/infrastructure/session"
	"souqmanaqil/internal/infrastructure/storage"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/config"
	"souqmanaqil/pkg/logger"
)

const (
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
	DriverRedis     = "redis"
)

type Resources struct {
	Store    datastore.Store
	Sessions session.Store
	Files    service.FileUploadService
	// Realtime is nil without a Firebase app.
	Realtime usecase.RealtimeTokenIssuer

	closers []func() error
}

// Close releases everything Open acquired, newest first.
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			logger.Warn("Failed to close resource: %v", err)
		}
	}
	r.closers = nil
}

// Open connects the datastore, session store and file storage. On error
// anything already opened is closed.
func Open(ctx context.Context, cfg *config.Config) (_ *Resources, err error) {
	res := &Resources{}
	defer func() {
		if err != nil {
			res.Close()
		}
	}()

	var (
		app  *fbapp.App
		opts []option.ClientOption
	)
	if cfg.DatastoreDriver == DriverFirestore || cfg.StorageBucket != "" {
		opts, err = firebase.ClientOptions(cfg)
		if err != nil {
			return nil, err
		}
		app, err = firebase.NewApp(ctx, cfg, opts...)
		if err != nil {
			return nil, err
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
		}
		res.Realtime = firebase.NewFirebaseAuthClient(authClient)
	}

	if res.Store, err = openStore(ctx, cfg, app); err != nil {
		return nil, err
	}
	res.closers = append(res.closers, res.Store.Close)

	if res.Sessions, err = openSessions(ctx, cfg, res); err != nil {
		return nil, err
	}

	if cfg.StorageBucket != "" {
		files, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cloud Storage: %w", err)
		}
		res.Files = files
		logger.Info("Media uploads go to bucket %s", cfg.StorageBucket)
	} else {
		res.Files = storage.NewDataURIStorage()
		logger.Info("No storage bucket configured, media is stored inline")
	}
	res.closers = append(res.closers, res.Files.Close)

	return res, nil
}

func openStore(ctx context.Context, cfg *config.Config, app *fbapp.App) (datastore.Store, error) {
	switch cfg.DatastoreDriver {
	case DriverFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		store, err := datastore.NewFirestoreStore(client, cfg.DatastoreRoot)
		if err != nil {
			client.Close()
			return nil, err
		}
		logger.Info("Using Firestore datastore rooted at %q", cfg.DatastoreRoot)
		return store, nil

	case DriverMemory:
		logger.Warn("Using in-memory datastore; data is lost on exit")
		return datastore.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown datastore driver %q", cfg.DatastoreDriver)
}

func openSessions(ctx context.Context, cfg *config.Config, res *Resources) (session.Store, error) {
	switch cfg.SessionDriver {
	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		res.closers = append(res.closers, rdb.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("Sessions stored in redis at %s", cfg.RedisAddr)
		return session.NewRedisStore(rdb), nil

	case DriverMemory:
		logger.Warn("Using in-memory sessions; sign-ins are lost on exit")
		return session.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown session driver %q", cfg.SessionDriver)
}
