package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/orphanage-admin/internal/auth"
	"github.com/spec-kit/orphanage-admin/internal/config"
	"github.com/spec-kit/orphanage-admin/internal/domain"
	"github.com/spec-kit/orphanage-admin/internal/repository"
	apperrors "github.com/spec-kit/orphanage-admin/pkg/util/errorutil"
)

// IdentityService owns user accounts and their staff profiles, together with
// the rules relating them: unique emails, at most one profile per user, cascade
// on user deletion, and protection of the last remaining admin.
type IdentityService struct {
	db         repository.DB
	users      repository.UserRepository
	staff      repository.StaffRepository
	bcryptCost int
}

// IdentityDependencies encapsulates storage requirements for the service.
type IdentityDependencies struct {
	DB        repository.DB
	UserRepo  repository.UserRepository
	StaffRepo repository.StaffRepository
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		db:         deps.DB,
		users:      deps.UserRepo,
		staff:      deps.StaffRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// UpdateUserInput carries optional replacement values; nil fields are left
// untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Role     *domain.Role
}

// CreateStaffProfileInput carries the fields for a new staff profile bound to
// an existing user.
type CreateStaffProfileInput struct {
	UserID      int64
	Name        string
	Email       string
	PhoneNumber *string
	Position    string
}

// UpdateStaffProfileInput carries optional replacement values. PhoneNumber is
// tri-state: nil fields leave the stored value alone, ClearPhoneNumber sets it
// to absent.
type UpdateStaffProfileInput struct {
	Name             *string
	Email            *string
	PhoneNumber      *string
	ClearPhoneNumber bool
	Position         *string
}

// withinTx runs fn with transaction-scoped repositories so check-then-write
// sequences cannot interleave with concurrent conflicting writes.
func (s *IdentityService) withinTx(ctx context.Context, fn func(users repository.UserRepository, staff repository.StaffRepository) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repository.NewUserRepository(tx), repository.NewStaffRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// CreateUser registers a new login account. The email uniqueness check and the
// insert run in one transaction; a unique-constraint violation from a racing
// insert maps to the same duplicate-email failure.
func (s *IdentityService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Email: email, PasswordHash: hash, Role: role}
	err = s.withinTx(ctx, func(users repository.UserRepository, _ repository.StaffRepository) error {
		if _, err := users.GetByEmail(ctx, email); err == nil {
			return apperrors.NewDuplicateEmail(email)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}

		if err := users.Create(ctx, user); err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewDuplicateEmail(email)
			}
			return apperrors.MapError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by exact email match and password verification. An
// unknown email and a wrong password produce the identical failure so callers
// cannot probe which addresses are registered. On success the linked staff
// profile is returned alongside the user, or nil when none exists.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, *domain.StaffProfile, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.MapError(err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	profile, err := s.staff.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, nil, nil
		}
		return nil, nil, apperrors.MapError(err)
	}
	return user, profile, nil
}

// UpdateUser applies a partial update; updated_at is refreshed even when no
// field changed.
func (s *IdentityService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		if isUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEmail(user.Email)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account and its staff profile in one transaction. The
// last remaining admin can never be deleted.
func (s *IdentityService) DeleteUser(ctx context.Context, id int64) error {
	return s.withinTx(ctx, func(users repository.UserRepository, staff repository.StaffRepository) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("user", map[string]any{"id": id})
			}
			return apperrors.MapError(err)
		}

		if user.Role == domain.RoleAdmin {
			count, err := users.CountByRole(ctx, domain.RoleAdmin)
			if err != nil {
				return apperrors.MapError(err)
			}
			if count <= 1 {
				return apperrors.NewLastAdminProtected()
			}
		}

		if err := staff.DeleteByUserID(ctx, id); err != nil {
			return apperrors.MapError(err)
		}
		if err := users.Delete(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("user", map[string]any{"id": id})
			}
			return apperrors.MapError(err)
		}
		return nil
	})
}

// ResetPassword replaces the stored credential hash; email and role are left
// untouched.
func (s *IdentityService) ResetPassword(ctx context.Context, id int64, newPassword string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// CreateStaffProfile binds a new profile to an existing user. The existence
// and one-profile-per-user checks run in the same transaction as the insert.
func (s *IdentityService) CreateStaffProfile(ctx context.Context, input CreateStaffProfileInput) (*domain.StaffProfile, error) {
	profile := &domain.StaffProfile{
		UserID:      input.UserID,
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Position:    input.Position,
	}

	err := s.withinTx(ctx, func(users repository.UserRepository, staff repository.StaffRepository) error {
		if _, err := users.GetByID(ctx, input.UserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUserNotFound(input.UserID)
			}
			return apperrors.MapError(err)
		}

		if _, err := staff.GetByUserID(ctx, input.UserID); err == nil {
			return apperrors.NewProfileAlreadyExists(input.UserID)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}

		if err := staff.Create(ctx, profile); err != nil {
			return apperrors.MapError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateStaffProfile applies a partial update with tri-state phone number
// semantics; updated_at is refreshed even when no field changed.
func (s *IdentityService) UpdateStaffProfile(ctx context.Context, id int64, input UpdateStaffProfileInput) (*domain.StaffProfile, error) {
	profile, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff profile", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Position != nil {
		profile.Position = *input.Position
	}
	switch {
	case input.ClearPhoneNumber:
		profile.PhoneNumber = nil
	case input.PhoneNumber != nil:
		profile.PhoneNumber = input.PhoneNumber
	}

	if err := s.staff.Update(ctx, profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff profile", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// DeleteStaffProfile removes only the profile; the referenced user remains.
func (s *IdentityService) DeleteStaffProfile(ctx context.Context, id int64) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff profile", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListUsers returns all accounts with the credential hash stripped.
func (s *IdentityService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListStaffProfiles returns all staff profiles.
func (s *IdentityService) ListStaffProfiles(ctx context.Context) ([]domain.StaffProfile, error) {
	profiles, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// GetStaffProfileByID returns the profile, or (nil, nil) when it does not
// exist; absence is a normal lookup outcome here, not a failure.
func (s *IdentityService) GetStaffProfileByID(ctx context.Context, id int64) (*domain.StaffProfile, error) {
	profile, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
