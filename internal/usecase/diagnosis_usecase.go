package usecase

import (
	"context"
	"strings"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
)

type DiagnosisInput struct {
	Image   string
	Issue   string
	Urgency entity.Urgency
}

// DiagnosisUseCase keeps each user's crop consultation log.
type DiagnosisUseCase struct {
	diagnosisRepo repository.DiagnosisRepository
}

func NewDiagnosisUseCase(diagnosisRepo repository.DiagnosisRepository) *DiagnosisUseCase {
	return &DiagnosisUseCase{
		diagnosisRepo: diagnosisRepo,
	}
}

func (uc *DiagnosisUseCase) Submit(ctx context.Context, identity entity.Identity, input DiagnosisInput) (*entity.AgriDiagnosis, error) {
	if !identity.Authenticated() {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	issue := strings.TrimSpace(input.Issue)
	if issue == "" {
		return nil, errors.BadRequest("Issue is required", nil)
	}
	urgency := input.Urgency
	if urgency == "" {
		urgency = entity.UrgencyMedium
	}
	if !urgency.Valid() {
		return nil, errors.BadRequest("Invalid urgency", nil)
	}

	diagnosis := &entity.AgriDiagnosis{
		UserID:  identity.UserID,
		Image:   input.Image,
		Issue:   issue,
		Urgency: urgency,
	}
	if err := uc.diagnosisRepo.Create(ctx, diagnosis); err != nil {
		return nil, err
	}
	return diagnosis, nil
}

func (uc *DiagnosisUseCase) Mine(ctx context.Context, identity entity.Identity) ([]*entity.AgriDiagnosis, error) {
	if !identity.Authenticated() {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	return uc.diagnosisRepo.ListByUserID(ctx, identity.UserID)
}
