package usecase

import (
	"context"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
)

type WalletSummary struct {
	Balance      float64                     `json:"balance"`
	Credits      float64                     `json:"credits"`
	Debits       float64                     `json:"debits"`
	Transactions []*entity.WalletTransaction `json:"transactions"`
}

// WalletUseCase reads the wallet log. Entries are written by the payment
// side of the platform.
type WalletUseCase struct {
	txnRepo  repository.WalletTransactionRepository
	userRepo repository.UserRepository
}

func NewWalletUseCase(txnRepo repository.WalletTransactionRepository, userRepo repository.UserRepository) *WalletUseCase {
	return &WalletUseCase{
		txnRepo:  txnRepo,
		userRepo: userRepo,
	}
}

func (uc *WalletUseCase) History(ctx context.Context, identity entity.Identity) ([]*entity.WalletTransaction, error) {
	if !identity.Authenticated() {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	return uc.txnRepo.ListByUserID(ctx, identity.UserID)
}

func (uc *WalletUseCase) Balance(ctx context.Context, identity entity.Identity) (float64, error) {
	if !identity.Authenticated() {
		return 0, errors.Unauthorized("Sign in required", nil)
	}
	user, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

func (uc *WalletUseCase) Summary(ctx context.Context, identity entity.Identity) (*WalletSummary, error) {
	balance, err := uc.Balance(ctx, identity)
	if err != nil {
		return nil, err
	}
	txns, err := uc.History(ctx, identity)
	if err != nil {
		return nil, err
	}

	summary := &WalletSummary{
		Balance:      balance,
		Transactions: txns,
	}
	for _, t := range txns {
		switch t.Type {
		case entity.TransactionCredit:
			summary.Credits += t.Amount
		case entity.TransactionDebit:
			summary.Debits += t.Amount
		}
	}
	return summary, nil
}
