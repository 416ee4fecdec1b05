package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the user row and its empty profile in one transaction: either both
// commit or nothing persists
func (r *Repository) Create(ctx context.Context, p CreateParams) (*User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck,gosec // no-op after commit

	var user User

	err = tx.QueryRow(
		ctx,
		queryCreateUser,
		uuid.NewString(),
		p.ExternalID,
		strings.ToLower(p.Email),
		strings.ToLower(p.Username),
		nullIfEmpty(p.FirstName),
		nullIfEmpty(p.LastName),
	).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)

	if err != nil {
		return nil, mapConstraintError(err)
	}

	if _, err := tx.Exec(ctx, queryCreateEmptyProfile, uuid.NewString(), user.ID); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return &user, nil
}

// finds a user by email (lowercased before lookup)
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, queryFindByEmail, strings.ToLower(email))
}

// finds a user by the identity provider's subject identifier
func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	return r.findOne(ctx, queryFindByExternalID, externalID)
}

// stamps last_login for the given email
func (r *Repository) UpdateLastLogin(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, queryUpdateLastLogin, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// deletes a user and, via cascade, their profile
func (r *Repository) Delete(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, queryDeleteUser, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// applies a partial profile update, creating the profile lazily if absent.
// Nil fields are left untouched; has_completed_onboarding is set
// unconditionally on every call.
func (r *Repository) UpsertProfile(ctx context.Context, userID string, u ProfileUpdate) (*Profile, error) {
	var profile Profile

	err := r.db.QueryRow(
		ctx,
		queryUpsertProfile,
		uuid.NewString(),
		userID,
		u.FitnessLevel,
		u.Goals,
		u.Equipment,
		u.Age,
		u.HeightCm,
		u.WeightKg,
		u.PreferredWorkoutTime,
		u.InjuryNotes,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FitnessLevel,
		&profile.Goals,
		&profile.Equipment,
		&profile.Age,
		&profile.HeightCm,
		&profile.WeightKg,
		&profile.PreferredWorkoutTime,
		&profile.InjuryNotes,
		&profile.HasCompletedOnboarding,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return &profile, nil
}

func (r *Repository) findOne(ctx context.Context, query, arg string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
