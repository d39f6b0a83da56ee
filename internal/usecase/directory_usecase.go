package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/utils"
)

const avatarBaseURL = "https://ui-avatars.com/api/"

// DirectoryUseCase looks up and maintains user profiles keyed by their
// sanitized phone number.
type DirectoryUseCase struct {
	userRepo repository.UserRepository
}

func NewDirectoryUseCase(userRepo repository.UserRepository) *DirectoryUseCase {
	return &DirectoryUseCase{
		userRepo: userRepo,
	}
}

type RegisterInput struct {
	Phone    string
	Name     string
	Password string
	Role     entity.Role
	Location string
	Avatar   string
	Bio      string
}

type ProfileUpdate struct {
	Name     *string
	Location *string
	Avatar   *string
	Bio      *string
	Store    *entity.StoreConfig
}

type StaffInput struct {
	Name     string
	Phone    string
	Position string
}

func (uc *DirectoryUseCase) SanitizeIdentifier(phone string) string {
	return utils.SanitizeKey(phone)
}

// FindByPhone returns nil without error when no profile exists.
func (uc *DirectoryUseCase) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	id := uc.SanitizeIdentifier(phone)
	if id == "" {
		return nil, errors.BadRequest("Phone number is required", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Register writes a new profile. It never overwrites: a profile that
// appears between lookup and write is reported as already registered.
func (uc *DirectoryUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	id := uc.SanitizeIdentifier(input.Phone)
	if id == "" {
		return nil, errors.BadRequest("Phone number is required", nil)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if input.Password == "" {
		return nil, errors.BadRequest("Password is required", nil)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, errors.BadRequest("Invalid role", nil)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	avatar := input.Avatar
	if avatar == "" {
		avatar = defaultAvatar(name)
	}

	user := &entity.User{
		ID:       id,
		Phone:    strings.TrimSpace(input.Phone),
		Name:     name,
		Password: hash,
		Role:     role,
		Location: strings.TrimSpace(input.Location),
		Balance:  0,
		Verified: false,
		Avatar:   avatar,
		Bio:      input.Bio,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return nil, errors.AlreadyRegistered(err)
		}
		return nil, err
	}
	return user, nil
}

func (uc *DirectoryUseCase) ListAll(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *DirectoryUseCase) SetRole(ctx context.Context, phone string, role entity.Role) error {
	if !role.Valid() {
		return errors.BadRequest("Invalid role", nil)
	}
	id := uc.SanitizeIdentifier(phone)
	if id == "" {
		return errors.BadRequest("Phone number is required", nil)
	}
	return uc.userRepo.UpdateFields(ctx, id, map[string]interface{}{
		"role": role,
	})
}

func (uc *DirectoryUseCase) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies every set field in one partial write.
func (uc *DirectoryUseCase) UpdateProfile(ctx context.Context, id string, patch ProfileUpdate) (*entity.User, error) {
	fields := make(map[string]interface{})
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errors.BadRequest("Name cannot be empty", nil)
		}
		fields["name"] = name
	}
	if patch.Location != nil {
		fields["location"] = strings.TrimSpace(*patch.Location)
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if patch.Store != nil {
		fields["store"] = *patch.Store
	}
	if len(fields) == 0 {
		return nil, errors.BadRequest("Nothing to update", nil)
	}

	if err := uc.userRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *DirectoryUseCase) AddStaff(ctx context.Context, ownerID string, input StaffInput) (*entity.StaffMember, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, errors.BadRequest("Staff name and phone are required", nil)
	}

	member := entity.StaffMember{
		ID:       uuid.New().String(),
		Name:     name,
		Phone:    phone,
		Position: strings.TrimSpace(input.Position),
		AddedAt:  time.Now().UTC(),
	}

	_, err := uc.userRepo.UpdateStaff(ctx, ownerID, func(staff []entity.StaffMember) ([]entity.StaffMember, error) {
		for _, s := range staff {
			if utils.SanitizeKey(s.Phone) == utils.SanitizeKey(phone) {
				return nil, errors.Conflict("Staff member already added")
			}
		}
		return append(staff, member), nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (uc *DirectoryUseCase) RemoveStaff(ctx context.Context, ownerID, staffID string) error {
	_, err := uc.userRepo.UpdateStaff(ctx, ownerID, func(staff []entity.StaffMember) ([]entity.StaffMember, error) {
		out := make([]entity.StaffMember, 0, len(staff))
		found := false
		for _, s := range staff {
			if s.ID == staffID {
				found = true
				continue
			}
			out = append(out, s)
		}
		if !found {
			return nil, errors.NotFound("Staff member", nil)
		}
		return out, nil
	})
	return err
}

func defaultAvatar(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "random")
	return avatarBaseURL + "?" + q.Encode()
}
