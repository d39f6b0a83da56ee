package usecase

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/utils"
)

type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

func (m AuthMode) Valid() bool {
	return m == AuthModeLogin || m == AuthModeSignup
}

// Toggle switches between the login and signup forms.
func (m AuthMode) Toggle() AuthMode {
	if m == AuthModeSignup {
		return AuthModeLogin
	}
	return AuthModeSignup
}

type Credentials struct {
	Phone    string
	Password string
	// Signup only.
	Name     string
	Role     entity.Role
	Location string
}

type AuthResult struct {
	User  *entity.User
	Token string
	Guest bool
}

type AuthUseCase struct {
	directory *DirectoryUseCase
	sessions  SessionStore
	realtime  RealtimeTokenIssuer
	secret    string
	ttl       time.Duration
	inflight  singleflight.Group
}

func NewAuthUseCase(directory *DirectoryUseCase, sessions SessionStore, realtime RealtimeTokenIssuer, secret string, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{
		directory: directory,
		sessions:  sessions,
		realtime:  realtime,
		secret:    secret,
		ttl:       ttl,
	}
}

// Submit runs the form in the given mode. Identical submits that arrive
// while one is in flight share its outcome.
func (uc *AuthUseCase) Submit(ctx context.Context, mode AuthMode, creds Credentials) (*AuthResult, error) {
	if !mode.Valid() {
		return nil, errors.BadRequest("Invalid auth mode", nil)
	}

	key := fmt.Sprintf("%s:%s:%x", mode, uc.directory.SanitizeIdentifier(creds.Phone), sha256.Sum256([]byte(creds.Password)))
	v, err, _ := uc.inflight.Do(key, func() (interface{}, error) {
		// The shared call outlives any single caller.
		ctx := context.WithoutCancel(ctx)
		if mode == AuthModeSignup {
			return uc.signup(ctx, creds)
		}
		return uc.login(ctx, creds)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AuthResult), nil
}

func (uc *AuthUseCase) Login(ctx context.Context, phone, password string) (*AuthResult, error) {
	return uc.Submit(ctx, AuthModeLogin, Credentials{Phone: phone, Password: password})
}

func (uc *AuthUseCase) Signup(ctx context.Context, creds Credentials) (*AuthResult, error) {
	return uc.Submit(ctx, AuthModeSignup, creds)
}

// Guest enters without an identity and never consults the directory.
func (uc *AuthUseCase) Guest() *AuthResult {
	return &AuthResult{Guest: true}
}

func (uc *AuthUseCase) login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	if creds.Password == "" {
		return nil, errors.BadRequest("Password is required", nil)
	}

	user, err := uc.directory.FindByPhone(ctx, creds.Phone)
	if err != nil {
		return nil, connectionError(err)
	}
	if user == nil {
		return nil, errors.AccountNotFound()
	}
	if !checkPassword(user.Password, creds.Password) {
		return nil, errors.WrongPassword()
	}

	if !isHashed(user.Password) {
		uc.upgradePassword(ctx, user.ID, creds.Password)
	}

	return uc.establish(ctx, user)
}

func (uc *AuthUseCase) signup(ctx context.Context, creds Credentials) (*AuthResult, error) {
	if creds.Role == entity.RoleAdmin {
		return nil, errors.BadRequest("Role cannot be chosen at signup", nil)
	}

	existing, err := uc.directory.FindByPhone(ctx, creds.Phone)
	if err != nil {
		return nil, connectionError(err)
	}
	if existing != nil {
		return nil, errors.AlreadyRegistered(nil)
	}

	user, err := uc.directory.Register(ctx, RegisterInput{
		Phone:    creds.Phone,
		Name:     creds.Name,
		Password: creds.Password,
		Role:     creds.Role,
		Location: creds.Location,
	})
	if err != nil {
		return nil, connectionError(err)
	}

	logger.Info("Registered %s as %s", user.ID, user.Role)
	return uc.establish(ctx, user)
}

func (uc *AuthUseCase) establish(ctx context.Context, user *entity.User) (*AuthResult, error) {
	sessionID := uuid.New().String()

	token, err := utils.GenerateJWT(user.ID, sessionID, string(user.Role), uc.secret, uc.ttl)
	if err != nil {
		return nil, errors.Internal("Failed to issue session token", err)
	}
	if err := uc.sessions.Save(ctx, sessionID, user.ID, uc.ttl); err != nil {
		return nil, errors.Connection(err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) upgradePassword(ctx context.Context, id, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		logger.Warn("Failed to hash legacy password for %s: %v", id, err)
		return
	}
	if err := uc.directory.userRepo.UpdateFields(ctx, id, map[string]interface{}{"password": hash}); err != nil {
		logger.Warn("Failed to upgrade legacy password for %s: %v", id, err)
		return
	}
	logger.Info("Upgraded legacy password for %s", id)
}

// Logout clears the session behind token.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseJWT(token, uc.secret)
	if err != nil {
		return errors.Unauthorized("Invalid token", err)
	}
	if err := uc.sessions.Clear(ctx, claims.ID); err != nil {
		return errors.Connection(err)
	}
	return nil
}

// Resolve turns a session token into the caller's identity. The role is read
// from the directory so role changes apply to open sessions.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (entity.Identity, error) {
	claims, err := utils.ParseJWT(token, uc.secret)
	if err != nil {
		return entity.Identity{}, errors.Unauthorized("Invalid token", err)
	}

	identifier, ok, err := uc.sessions.Load(ctx, claims.ID)
	if err != nil {
		return entity.Identity{}, errors.Connection(err)
	}
	if !ok || identifier != claims.Subject {
		return entity.Identity{}, errors.Unauthorized("Session expired", nil)
	}

	user, err := uc.directory.GetProfile(ctx, identifier)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return entity.Identity{}, errors.Unauthorized("Account no longer exists", err)
		}
		return entity.Identity{}, errors.Connection(err)
	}

	return entity.Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		SessionID: claims.ID,
	}, nil
}

// RealtimeToken mints a store token for the caller, carrying its role.
func (uc *AuthUseCase) RealtimeToken(ctx context.Context, identity entity.Identity) (string, error) {
	if !identity.Authenticated() {
		return "", errors.Unauthorized("Sign in required", nil)
	}
	if uc.realtime == nil {
		return "", errors.Internal("Realtime access is not configured", nil)
	}

	token, err := uc.realtime.CustomToken(ctx, identity.UserID, map[string]interface{}{
		"role": string(identity.Role),
	})
	if err != nil {
		return "", errors.Connection(err)
	}
	return token, nil
}

// connectionError keeps user-facing outcomes and collapses every other
// failure into the generic connection error.
func connectionError(err error) error {
	if appErr, ok := errors.As(err); ok {
		switch appErr.Code {
		case errors.CodeBadRequest, errors.CodeAlreadyRegistered, errors.CodeAccountNotFound, errors.CodeWrongPassword:
			return err
		}
	}
	logger.Error("Auth request failed: %v", err)
	return errors.Connection(err)
}
