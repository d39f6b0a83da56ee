package repository

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"souqmanaqil/internal/infrastructure/datastore"
	apperrors "souqmanaqil/pkg/errors"
)

const (
	usersCollection        = "users"
	productsCollection     = "products"
	ordersCollection       = "orders"
	transactionsCollection = "transactions"
	storiesCollection      = "stories"

	// Nested under users/{id}.
	diagnosesCollection = "diagnoses"
	activityCollection  = "activity"
)

func now() time.Time {
	return time.Now().UTC()
}

// mapError translates gateway failures into application errors. Errors that
// already carry an application code pass through untouched.
func mapError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, datastore.ErrNotFound):
		return apperrors.NotFound(resource, err)
	case errors.Is(err, datastore.ErrAlreadyExists):
		return apperrors.New(apperrors.CodeConflict, resource+" already exists", http.StatusConflict, err)
	case errors.Is(err, datastore.ErrInvalidPath):
		return apperrors.BadRequest("Invalid "+resource+" key", err)
	default:
		return apperrors.Internal("Failed to access "+resource, err)
	}
}

// withUpdatedAt copies fields and stamps the modification time.
func withUpdatedAt(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["updatedAt"] = now()
	return out
}

// byCreation orders records by creation time in memory. Records written
// without a createdAt field sort as the oldest and are never dropped.
func byCreation[T any](items []*T, createdAt func(*T) time.Time, newestFirst bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := createdAt(items[i]), createdAt(items[j])
		if newestFirst {
			return a.After(b)
		}
		return a.Before(b)
	})
}
