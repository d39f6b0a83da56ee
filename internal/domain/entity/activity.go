package entity

import (
	"time"
)

// Activity is one line of a trader's activity log.
type Activity struct {
	ID        string    `json:"id" firestore:"id"`
	ActorID   string    `json:"actorId" firestore:"actorId"`
	Action    string    `json:"action" firestore:"action"`
	Details   string    `json:"details,omitempty" firestore:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
