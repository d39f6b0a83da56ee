package repository

import (
	"context"
	"time"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/logger"
)

type userRepository struct {
	store datastore.Store
}

func NewUserRepository(store datastore.Store) repository.UserRepository {
	return &userRepository{
		store: store,
	}
}

func userPath(id string) string {
	return datastore.Join(usersCollection, id)
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	ts := now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = ts
	}
	user.UpdatedAt = ts

	return mapError("User", r.store.Create(ctx, userPath(user.ID), user))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.store.Get(ctx, userPath(id), &user); err != nil {
		return nil, mapError("User", err)
	}
	if user.ID == "" {
		user.ID = id
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := r.store.List(ctx, usersCollection, datastore.Query{})
	if err != nil {
		return nil, mapError("User", err)
	}
	return decodeUsers(docs)
}

func (r *userRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return mapError("User", r.store.Update(ctx, userPath(id), withUpdatedAt(fields)))
}

func (r *userRepository) UpdateStaff(ctx context.Context, id string, fn func([]entity.StaffMember) ([]entity.StaffMember, error)) ([]entity.StaffMember, error) {
	var (
		user  entity.User
		staff []entity.StaffMember
	)
	err := r.store.Mutate(ctx, userPath(id), &user, func() (map[string]interface{}, error) {
		next, err := fn(user.Staff)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []entity.StaffMember{}
		}
		staff = next
		return map[string]interface{}{
			"staff":     next,
			"updatedAt": now(),
		}, nil
	})
	if err != nil {
		return nil, mapError("User", err)
	}
	return staff, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return mapError("User", r.store.Delete(ctx, userPath(id)))
}

func (r *userRepository) Watch(ctx context.Context, id string, fn func(*entity.User)) error {
	return r.store.WatchDoc(ctx, userPath(id), func(doc *datastore.Document) {
		if doc == nil {
			fn(nil)
			return
		}
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping undecodable user %s: %v", id, err)
			return
		}
		if user.ID == "" {
			user.ID = doc.ID
		}
		fn(&user)
	})
}

func (r *userRepository) WatchAll(ctx context.Context, fn func([]*entity.User)) error {
	return r.store.Watch(ctx, usersCollection, datastore.Query{}, func(docs []*datastore.Document) {
		users, err := decodeUsers(docs)
		if err != nil {
			logger.Warn("Skipping undecodable users snapshot: %v", err)
			return
		}
		fn(users)
	})
}

func decodeUsers(docs []*datastore.Document) ([]*entity.User, error) {
	users, err := datastore.Decode[entity.User](docs)
	if err != nil {
		return nil, mapError("User", err)
	}
	for i, user := range users {
		if user.ID == "" {
			user.ID = docs[i].ID
		}
	}
	byCreation(users, func(u *entity.User) time.Time { return u.CreatedAt }, false)
	return users, nil
}
