package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type ActivityRepository interface {
	Append(ctx context.Context, userID string, activity *entity.Activity) error
	// List returns the log newest first.
	List(ctx context.Context, userID string, limit int) ([]*entity.Activity, error)
	Watch(ctx context.Context, userID string, limit int, fn func([]*entity.Activity)) error
}
