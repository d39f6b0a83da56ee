package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type StoryRepository interface {
	Create(ctx context.Context, story *entity.MarketStory) error
	GetByID(ctx context.Context, id string) (*entity.MarketStory, error)
	List(ctx context.Context) ([]*entity.MarketStory, error)
	Delete(ctx context.Context, id string) error
}
