package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type WalletTransactionRepository interface {
	Create(ctx context.Context, txn *entity.WalletTransaction) error
	GetByID(ctx context.Context, id string) (*entity.WalletTransaction, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.WalletTransaction, error)
	List(ctx context.Context) ([]*entity.WalletTransaction, error)
	Delete(ctx context.Context, id string) error
	WatchAll(ctx context.Context, fn func([]*entity.WalletTransaction)) error
}
