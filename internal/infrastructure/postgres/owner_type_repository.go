package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.OwnerTypeRepository = (*OwnerTypeRepo)(nil)

// OwnerTypeRepo implementação do porto OwnerTypeRepository sobre PostgreSQL.
type OwnerTypeRepo struct {
	db DBTX
}

// NewOwnerTypeRepository constrói o adaptador de persistência de tipos de dono.
func NewOwnerTypeRepository(db DBTX) *OwnerTypeRepo {
	return &OwnerTypeRepo{db: db}
}

const ownerTypeColumns = `id, tenant_id, name, created_at, created_by, updated_at, updated_by, row_version`

// Create persiste um tipo de dono novo na organização informada.
func (r *OwnerTypeRepo) Create(ctx context.Context, tenantID identifier.TenantID, ot *entity.OwnerType) error {
	ot.StampTenant(tenantID)
	query := `
		INSERT INTO owner_types (` + ownerTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		ot.ID.UUID(), ot.TenantID.UUID(), ot.Name,
		ot.CreatedAt, ot.CreatedBy.UUID(), ot.UpdatedAt, ot.UpdatedBy.UUID(), ot.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert owner type: %w", err)
	}
	return nil
}

// GetByID obtém um tipo de dono com seus vínculos de compatibilidade.
func (r *OwnerTypeRepo) GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) (*entity.OwnerType, error) {
	query := `SELECT ` + ownerTypeColumns + ` FROM owner_types WHERE tenant_id = $1 AND id = $2`
	ot, err := r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), id.UUID()), "get owner type by id")
	if err != nil || ot == nil {
		return ot, err
	}
	links, err := loadTypeLinks(ctx, r.db, tenantID, `owner_type_id = $2`, id.UUID())
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		ot.AttachLink(l)
	}
	return ot, nil
}

// GetByName obtém um tipo de dono pelo nome, sem vínculos carregados.
func (r *OwnerTypeRepo) GetByName(ctx context.Context, tenantID identifier.TenantID, name string) (*entity.OwnerType, error) {
	query := `SELECT ` + ownerTypeColumns + ` FROM owner_types WHERE tenant_id = $1 AND name = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), name), "get owner type by name")
}

// ExistsByName verifica a unicidade do nome dentro da organização.
func (r *OwnerTypeRepo) ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM owner_types WHERE tenant_id = $1 AND name = $2)`,
		tenantID.UUID(), name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists owner type by name: %w", err)
	}
	return exists, nil
}

// Update persiste um tipo de dono mutado, guardado por row_version.
func (r *OwnerTypeRepo) Update(ctx context.Context, ot *entity.OwnerType) error {
	query := `
		UPDATE owner_types
		SET name = $3, updated_at = $4, updated_by = $5, row_version = row_version + 1
		WHERE tenant_id = $1 AND id = $2 AND row_version = $6`
	tag, err := r.db.Exec(ctx, query,
		ot.TenantID.UUID(), ot.ID.UUID(), ot.Name, ot.UpdatedAt, ot.UpdatedBy.UUID(), ot.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update owner type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db,
			`SELECT EXISTS (SELECT 1 FROM owner_types WHERE tenant_id = $1 AND id = $2)`,
			ot.TenantID.UUID(), ot.ID.UUID())
	}
	ot.RowVersion++
	return nil
}

// ListByTenant lista tipos de dono da organização com paginação.
func (r *OwnerTypeRepo) ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.OwnerType, error) {
	query := `SELECT ` + ownerTypeColumns + ` FROM owner_types
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID.UUID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list owner types: %w", err)
	}
	defer rows.Close()
	var list []*entity.OwnerType
	for rows.Next() {
		ot, err := scanOwnerType(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ot)
	}
	return list, rows.Err()
}

// Delete remove fisicamente um tipo de dono sem donos nem vínculos.
func (r *OwnerTypeRepo) Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM owner_types WHERE tenant_id = $1 AND id = $2`,
		tenantID.UUID(), id.UUID())
	if err != nil {
		return fmt.Errorf("delete owner type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OwnerTypeRepo) scanOne(row pgx.Row, op string) (*entity.OwnerType, error) {
	ot, err := scanOwnerType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ot, nil
}

func scanOwnerType(row pgx.Row) (*entity.OwnerType, error) {
	var ot entity.OwnerType
	err := row.Scan(&ot.ID, &ot.TenantID, &ot.Name,
		&ot.CreatedAt, &ot.CreatedBy, &ot.UpdatedAt, &ot.UpdatedBy, &ot.RowVersion)
	if err != nil {
		return nil, err
	}
	return &ot, nil
}

// loadTypeLinks carrega vínculos tipo de dono × tipo de documento da
// organização, filtrados pela condição sobre um dos lados ($2).
func loadTypeLinks(ctx context.Context, db DBTX, tenantID identifier.TenantID, cond string, arg any) ([]entity.TypeLink, error) {
	query := `SELECT id, tenant_id, owner_type_id, document_type_id, created_at, created_by
		FROM owner_type_document_types
		WHERE tenant_id = $1 AND ` + cond
	rows, err := db.Query(ctx, query, tenantID.UUID(), arg)
	if err != nil {
		return nil, fmt.Errorf("load type links: %w", err)
	}
	defer rows.Close()
	var links []entity.TypeLink
	for rows.Next() {
		var l entity.TypeLink
		if err := rows.Scan(&l.ID, &l.TenantID, &l.OwnerTypeID, &l.DocumentTypeID, &l.CreatedAt, &l.CreatedBy); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
