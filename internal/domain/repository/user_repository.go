package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type UserRepository interface {
	// Create fails with a conflict when the key is taken.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// UpdateStaff rewrites the staff list atomically through fn.
	UpdateStaff(ctx context.Context, id string, fn func(staff []entity.StaffMember) ([]entity.StaffMember, error)) ([]entity.StaffMember, error)
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, id string, fn func(*entity.User)) error
	WatchAll(ctx context.Context, fn func([]*entity.User)) error
}
