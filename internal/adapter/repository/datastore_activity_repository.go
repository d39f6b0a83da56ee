package repository

import (
	"context"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/logger"
)

type activityRepository struct {
	store datastore.Store
}

func NewActivityRepository(store datastore.Store) repository.ActivityRepository {
	return &activityRepository{
		store: store,
	}
}

func activityOf(userID string) string {
	return datastore.Join(usersCollection, userID, activityCollection)
}

func recentActivity(limit int) datastore.Query {
	q := datastore.Query{}.Order("createdAt", true)
	q.Limit = limit
	return q
}

func (r *activityRepository) Append(ctx context.Context, userID string, activity *entity.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now()
	}

	p := datastore.Join(activityOf(userID), activity.ID)
	return mapError("Activity", r.store.Create(ctx, p, activity))
}

func (r *activityRepository) List(ctx context.Context, userID string, limit int) ([]*entity.Activity, error) {
	docs, err := r.store.List(ctx, activityOf(userID), recentActivity(limit))
	if err != nil {
		return nil, mapError("Activity", err)
	}
	activities, err := datastore.Decode[entity.Activity](docs)
	if err != nil {
		return nil, mapError("Activity", err)
	}
	return activities, nil
}

func (r *activityRepository) Watch(ctx context.Context, userID string, limit int, fn func([]*entity.Activity)) error {
	return r.store.Watch(ctx, activityOf(userID), recentActivity(limit), func(docs []*datastore.Document) {
		activities, err := datastore.Decode[entity.Activity](docs)
		if err != nil {
			logger.Warn("Skipping undecodable activity snapshot for %s: %v", userID, err)
			return
		}
		fn(activities)
	})
}
