package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ultron-crm/assistant-backend/internal/entity"
)

// OrganizationRepository resolves tenants for the auth layer
type OrganizationRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*entity.Organization, error)
}

var _ OrganizationRepository = &OrganizationPostgres{}

// OrganizationPostgres implements OrganizationRepository using PostgreSQL
type OrganizationPostgres struct {
	db *pgxpool.Pool
}

func NewOrganizationPostgres(db *pgxpool.Pool) *OrganizationPostgres {
	return &OrganizationPostgres{db: db}
}

func (r *OrganizationPostgres) GetByAPIKey(ctx context.Context, apiKey string) (*entity.Organization, error) {
	const query = `
		SELECT id, nom, api_key, created_at
		FROM organizations
		WHERE api_key = $1`

	var org entity.Organization
	err := r.db.QueryRow(ctx, query, apiKey).Scan(&org.ID, &org.Nom, &org.APIKey, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization by api key: %w", err)
	}

	return &org, nil
}
