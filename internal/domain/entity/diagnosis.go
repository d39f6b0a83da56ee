package entity

import (
	"time"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

func (u Urgency) Valid() bool {
	return u == UrgencyHigh || u == UrgencyMedium || u == UrgencyLow
}

// AgriDiagnosis is one AI crop consultation, stored under its owner.
type AgriDiagnosis struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"userId"`
	Image     string    `json:"image" firestore:"image"`
	Issue     string    `json:"issue" firestore:"issue"`
	Urgency   Urgency   `json:"urgency" firestore:"urgency"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
