package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/logger"
)

type walletTransactionRepository struct {
	store datastore.Store
}

func NewWalletTransactionRepository(store datastore.Store) repository.WalletTransactionRepository {
	return &walletTransactionRepository{
		store: store,
	}
}

func transactionPath(id string) string {
	return datastore.Join(transactionsCollection, id)
}

func (r *walletTransactionRepository) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now()
	}

	return mapError("Transaction", r.store.Create(ctx, transactionPath(txn.ID), txn))
}

func (r *walletTransactionRepository) GetByID(ctx context.Context, id string) (*entity.WalletTransaction, error) {
	var txn entity.WalletTransaction
	if err := r.store.Get(ctx, transactionPath(id), &txn); err != nil {
		return nil, mapError("Transaction", err)
	}
	if txn.ID == "" {
		txn.ID = id
	}
	return &txn, nil
}

func (r *walletTransactionRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.WalletTransaction, error) {
	q := datastore.Query{}.Where("userId", datastore.OpEqual, userID)
	docs, err := r.store.List(ctx, transactionsCollection, q)
	if err != nil {
		return nil, mapError("Transaction", err)
	}
	return decodeTransactions(docs)
}

func (r *walletTransactionRepository) List(ctx context.Context) ([]*entity.WalletTransaction, error) {
	docs, err := r.store.List(ctx, transactionsCollection, datastore.Query{})
	if err != nil {
		return nil, mapError("Transaction", err)
	}
	return decodeTransactions(docs)
}

func (r *walletTransactionRepository) Delete(ctx context.Context, id string) error {
	return mapError("Transaction", r.store.Delete(ctx, transactionPath(id)))
}

func (r *walletTransactionRepository) WatchAll(ctx context.Context, fn func([]*entity.WalletTransaction)) error {
	return r.store.Watch(ctx, transactionsCollection, datastore.Query{}, func(docs []*datastore.Document) {
		txns, err := decodeTransactions(docs)
		if err != nil {
			logger.Warn("Skipping undecodable transactions snapshot: %v", err)
			return
		}
		fn(txns)
	})
}

func decodeTransactions(docs []*datastore.Document) ([]*entity.WalletTransaction, error) {
	txns, err := datastore.Decode[entity.WalletTransaction](docs)
	if err != nil {
		return nil, mapError("Transaction", err)
	}
	for i, txn := range txns {
		if txn.ID == "" {
			txn.ID = docs[i].ID
		}
	}
	byCreation(txns, func(t *entity.WalletTransaction) time.Time { return t.CreatedAt }, true)
	return txns, nil
}
