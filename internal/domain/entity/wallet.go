package entity

import (
	"time"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionCredit || t == TransactionDebit
}

type WalletTransaction struct {
	ID        string          `json:"id" firestore:"id"`
	UserID    string          `json:"userId" firestore:"userId"`
	Type      TransactionType `json:"type" firestore:"type"`
	Title     string          `json:"title" firestore:"title"`
	Amount    float64         `json:"amount" firestore:"amount"`
	CreatedAt time.Time       `json:"createdAt" firestore:"createdAt"`
}

// Signed returns the amount with debits negative.
func (t *WalletTransaction) Signed() float64 {
	if t.Type == TransactionDebit {
		return -t.Amount
	}
	return t.Amount
}
