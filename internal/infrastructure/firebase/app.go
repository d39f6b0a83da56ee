package firebase

import (
	"context"
	"fmt"
	"os"

	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"souqmanaqil/pkg/config"
	"souqmanaqil/pkg/logger"
)

// ClientOptions resolves service account credentials: inline JSON first,
// then a key file. With neither, application default credentials apply.
func ClientOptions(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseCredentialsJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))}, nil
	}
	if cfg.FirebaseCredentialsPath != "" {
		if _, err := os.Stat(cfg.FirebaseCredentialsPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", cfg.FirebaseCredentialsPath, err)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseCredentialsPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseCredentialsPath)}, nil
	}
	logger.Info("Using application default credentials")
	return nil, nil
}

func NewApp(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*fbapp.App, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}
	return app, nil
}
