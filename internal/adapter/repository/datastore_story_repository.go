package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
)

type storyRepository struct {
	store datastore.Store
}

func NewStoryRepository(store datastore.Store) repository.StoryRepository {
	return &storyRepository{
		store: store,
	}
}

func (r *storyRepository) Create(ctx context.Context, story *entity.MarketStory) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = now()
	}

	return mapError("Story", r.store.Create(ctx, datastore.Join(storiesCollection, story.ID), story))
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*entity.MarketStory, error) {
	var story entity.MarketStory
	if err := r.store.Get(ctx, datastore.Join(storiesCollection, id), &story); err != nil {
		return nil, mapError("Story", err)
	}
	if story.ID == "" {
		story.ID = id
	}
	return &story, nil
}

func (r *storyRepository) List(ctx context.Context) ([]*entity.MarketStory, error) {
	docs, err := r.store.List(ctx, storiesCollection, datastore.Query{})
	if err != nil {
		return nil, mapError("Story", err)
	}
	stories, err := datastore.Decode[entity.MarketStory](docs)
	if err != nil {
		return nil, mapError("Story", err)
	}
	for i, story := range stories {
		if story.ID == "" {
			story.ID = docs[i].ID
		}
	}
	byCreation(stories, func(s *entity.MarketStory) time.Time { return s.CreatedAt }, true)
	return stories, nil
}

func (r *storyRepository) Delete(ctx context.Context, id string) error {
	return mapError("Story", r.store.Delete(ctx, datastore.Join(storiesCollection, id)))
}
