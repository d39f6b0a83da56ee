package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

// DiagnosisRepository stores consultations nested under their owner.
type DiagnosisRepository interface {
	Create(ctx context.Context, diagnosis *entity.AgriDiagnosis) error
	ListByUserID(ctx context.Context, userID string) ([]*entity.AgriDiagnosis, error)
	// ListAll flattens every user's log into one list, newest first.
	ListAll(ctx context.Context) ([]*entity.AgriDiagnosis, error)
	Delete(ctx context.Context, userID, id string) error
	WatchAll(ctx context.Context, fn func([]*entity.AgriDiagnosis)) error
}
