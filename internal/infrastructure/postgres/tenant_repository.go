package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementação do porto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	db DBTX
}

// NewTenantRepository constrói o adaptador de persistência de organizações.
func NewTenantRepository(db DBTX) *TenantRepo {
	return &TenantRepo{db: db}
}

const tenantColumns = `id, name, slug, status, expires_at, created_at, created_by, updated_at, updated_by, row_version`

// Create persiste uma organização nova.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		t.ID.UUID(), t.Name, t.Slug, string(t.Status), t.ExpiresAt,
		t.CreatedAt, t.CreatedBy.UUID(), t.UpdatedAt, t.UpdatedBy.UUID(), t.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtém uma organização por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id identifier.TenantID) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id.UUID()), "get tenant by id")
}

// GetBySlug obtém uma organização pelo slug.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, slug), "get tenant by slug")
}

// ExistsBySlug verifica a unicidade global do slug.
func (r *TenantRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tenants WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists tenant by slug: %w", err)
	}
	return exists, nil
}

// Update persiste uma organização mutada, guardado por row_version.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, status = $3, expires_at = $4, updated_at = $5, updated_by = $6,
		    row_version = row_version + 1
		WHERE id = $1 AND row_version = $7`
	tag, err := r.db.Exec(ctx, query,
		t.ID.UUID(), t.Name, string(t.Status), t.ExpiresAt, t.UpdatedAt, t.UpdatedBy.UUID(), t.RowVersion,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`, t.ID.UUID())
	}
	t.RowVersion++
	return nil
}

// List lista organizações com paginação.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TenantRepo) scanOne(row pgx.Row, op string) (*entity.Tenant, error) {
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var status string
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &status, &t.ExpiresAt,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy, &t.RowVersion)
	if err != nil {
		return nil, err
	}
	t.Status = entity.TenantStatus(status)
	return &t, nil
}
