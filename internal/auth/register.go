package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/niastore/nia-storefront/internal/users"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/db"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/security"
	"gorm.io/gorm"
)

const alreadyRegisteredMessage = "email already registered"

func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	return s.createUser(ctx, req.Email, req.Password, req.Name, false)
}

// EnsureAdmin creates the configured default admin when it does not exist yet.
// The bool reports whether a user was created.
func (s *service) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (*users.UserDTO, bool, error) {
	email := normalizeEmail(cfg.Email)
	if email == "" || cfg.Password == "" {
		return nil, false, nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return users.FromModel(existing), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin email")
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Administrator"
	}
	created, err := s.createUser(ctx, email, cfg.Password, name, true)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return created, true, nil
}

func (s *service) createUser(ctx context.Context, rawEmail, password, rawName string, isAdmin bool) (*users.UserDTO, error) {
	email := normalizeEmail(rawEmail)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required").WithDetails(map[string]string{"email": "is required"})
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").WithDetails(map[string]string{"name": "is required"})
	}

	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	var created *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, alreadyRegisteredMessage)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         name,
			IsAdmin:      isAdmin,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, alreadyRegisteredMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
