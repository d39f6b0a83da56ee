package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/logger"
)

type diagnosisRepository struct {
	store datastore.Store
}

func NewDiagnosisRepository(store datastore.Store) repository.DiagnosisRepository {
	return &diagnosisRepository{
		store: store,
	}
}

func diagnosesOf(userID string) string {
	return datastore.Join(usersCollection, userID, diagnosesCollection)
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *entity.AgriDiagnosis) error {
	if diagnosis.ID == "" {
		diagnosis.ID = uuid.New().String()
	}
	if diagnosis.CreatedAt.IsZero() {
		diagnosis.CreatedAt = now()
	}

	p := datastore.Join(diagnosesOf(diagnosis.UserID), diagnosis.ID)
	return mapError("Diagnosis", r.store.Create(ctx, p, diagnosis))
}

func (r *diagnosisRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.AgriDiagnosis, error) {
	docs, err := r.store.List(ctx, diagnosesOf(userID), datastore.Query{})
	if err != nil {
		return nil, mapError("Diagnosis", err)
	}
	return decodeDiagnoses(docs)
}

func (r *diagnosisRepository) ListAll(ctx context.Context) ([]*entity.AgriDiagnosis, error) {
	docs, err := r.store.ListGroup(ctx, diagnosesCollection, datastore.Query{})
	if err != nil {
		return nil, mapError("Diagnosis", err)
	}
	return decodeDiagnoses(docs)
}

func (r *diagnosisRepository) Delete(ctx context.Context, userID, id string) error {
	return mapError("Diagnosis", r.store.Delete(ctx, datastore.Join(diagnosesOf(userID), id)))
}

func (r *diagnosisRepository) WatchAll(ctx context.Context, fn func([]*entity.AgriDiagnosis)) error {
	return r.store.WatchGroup(ctx, diagnosesCollection, datastore.Query{}, func(docs []*datastore.Document) {
		diagnoses, err := decodeDiagnoses(docs)
		if err != nil {
			logger.Warn("Skipping undecodable diagnoses snapshot: %v", err)
			return
		}
		fn(diagnoses)
	})
}

// decodeDiagnoses fills the owner from the document path for records
// written without a userId field.
func decodeDiagnoses(docs []*datastore.Document) ([]*entity.AgriDiagnosis, error) {
	diagnoses, err := datastore.Decode[entity.AgriDiagnosis](docs)
	if err != nil {
		return nil, mapError("Diagnosis", err)
	}
	for i, d := range diagnoses {
		if d.ID == "" {
			d.ID = docs[i].ID
		}
		if d.UserID == "" {
			d.UserID = ownerOf(docs[i].Path)
		}
	}
	byCreation(diagnoses, func(d *entity.AgriDiagnosis) time.Time { return d.CreatedAt }, true)
	return diagnoses, nil
}

// ownerOf extracts {id} from "users/{id}/...".
func ownerOf(p string) string {
	parts := strings.Split(p, "/")
	if len(parts) >= 2 && parts[0] == usersCollection {
		return parts[1]
	}
	return ""
}
