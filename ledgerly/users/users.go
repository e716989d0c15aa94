package users

import (
	"context"
	"errors"
	"fmt"

	apperrors "codeberg.org/ledgerly/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name, avatarURL string,
) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		name,
		avatarURL,
	)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindNotFound, fmt.Errorf("user %s: %w", userID, err))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Role,
		&user.Permissions,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
