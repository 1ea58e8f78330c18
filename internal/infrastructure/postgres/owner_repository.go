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

var _ repository.OwnerRepository = (*OwnerRepo)(nil)

// OwnerRepo implementação do porto OwnerRepository sobre PostgreSQL. Os
// vínculos de posse vivem na tabela de junção document_owners e são
// persistidos via AddLink/RemoveLink, nunca pelo Update do agregado.
type OwnerRepo struct {
	db DBTX
}

// NewOwnerRepository constrói o adaptador de persistência de donos.
func NewOwnerRepository(db DBTX) *OwnerRepo {
	return &OwnerRepo{db: db}
}

const ownerColumns = `id, tenant_id, friendly_name, owner_type_id,
	created_at, created_by, updated_at, updated_by, row_version`

// Create persiste um dono novo na organização informada.
func (r *OwnerRepo) Create(ctx context.Context, tenantID identifier.TenantID, o *entity.Owner) error {
	o.StampTenant(tenantID)
	query := `
		INSERT INTO owners (` + ownerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		o.ID.UUID(), o.TenantID.UUID(), o.FriendlyName, o.OwnerTypeID.UUID(),
		o.CreatedAt, o.CreatedBy.UUID(), o.UpdatedAt, o.UpdatedBy.UUID(), o.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// GetByID obtém um dono com seus vínculos de posse.
func (r *OwnerRepo) GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerID) (*entity.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE tenant_id = $1 AND id = $2`
	o, err := r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), id.UUID()), "get owner by id")
	if err != nil || o == nil {
		return o, err
	}
	links, err := loadOwnershipLinks(ctx, r.db, tenantID, `owner_id = $2`, id.UUID())
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		o.AttachLink(l)
	}
	return o, nil
}

// Update persiste um dono mutado, guardado por row_version.
func (r *OwnerRepo) Update(ctx context.Context, o *entity.Owner) error {
	query := `
		UPDATE owners
		SET friendly_name = $3, owner_type_id = $4, updated_at = $5, updated_by = $6,
		    row_version = row_version + 1
		WHERE tenant_id = $1 AND id = $2 AND row_version = $7`
	tag, err := r.db.Exec(ctx, query,
		o.TenantID.UUID(), o.ID.UUID(), o.FriendlyName, o.OwnerTypeID.UUID(),
		o.UpdatedAt, o.UpdatedBy.UUID(), o.RowVersion,
	)
	if err != nil {
		return fmt.Errorf("update owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db,
			`SELECT EXISTS (SELECT 1 FROM owners WHERE tenant_id = $1 AND id = $2)`,
			o.TenantID.UUID(), o.ID.UUID())
	}
	o.RowVersion++
	return nil
}

// ListByTenant lista donos da organização com paginação.
func (r *OwnerRepo) ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners
		WHERE tenant_id = $1 ORDER BY friendly_name LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID.UUID(), limit, offset)
}

// ListByOwnerType lista donos de um tipo de dono com paginação.
func (r *OwnerRepo) ListByOwnerType(ctx context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, limit, offset int) ([]*entity.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners
		WHERE tenant_id = $1 AND owner_type_id = $2 ORDER BY friendly_name LIMIT $3 OFFSET $4`
	return r.list(ctx, query, tenantID.UUID(), ownerTypeID.UUID(), limit, offset)
}

// AddLink persiste um vínculo de posse já validado pelo domínio.
func (r *OwnerRepo) AddLink(ctx context.Context, l *entity.OwnershipLink) error {
	query := `
		INSERT INTO document_owners (id, tenant_id, document_id, owner_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT ownership_links_triple_key DO NOTHING`
	_, err := r.db.Exec(ctx, query,
		l.ID.UUID(), l.TenantID.UUID(), l.DocumentID.UUID(), l.OwnerID.UUID(),
		l.CreatedAt, l.CreatedBy.UUID(),
	)
	if err != nil {
		return fmt.Errorf("insert ownership link: %w", err)
	}
	return nil
}

// RemoveLink remove o vínculo entre o documento e o dono. Ausência do
// vínculo não é erro.
func (r *OwnerRepo) RemoveLink(ctx context.Context, tenantID identifier.TenantID, documentID identifier.DocumentID, ownerID identifier.OwnerID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM document_owners
		 WHERE tenant_id = $1 AND document_id = $2 AND owner_id = $3`,
		tenantID.UUID(), documentID.UUID(), ownerID.UUID())
	if err != nil {
		return fmt.Errorf("delete ownership link: %w", err)
	}
	return nil
}

// Delete remove fisicamente um dono sem vínculos de posse.
func (r *OwnerRepo) Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM owners WHERE tenant_id = $1 AND id = $2`,
		tenantID.UUID(), id.UUID())
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OwnerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Owner, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Owner
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OwnerRepo) scanOne(row pgx.Row, op string) (*entity.Owner, error) {
	o, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func scanOwner(row pgx.Row) (*entity.Owner, error) {
	var o entity.Owner
	err := row.Scan(&o.ID, &o.TenantID, &o.FriendlyName, &o.OwnerTypeID,
		&o.CreatedAt, &o.CreatedBy, &o.UpdatedAt, &o.UpdatedBy, &o.RowVersion)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// loadOwnershipLinks carrega vínculos documento × dono da organização,
// filtrados pela condição sobre um dos lados ($2).
func loadOwnershipLinks(ctx context.Context, db DBTX, tenantID identifier.TenantID, cond string, arg any) ([]entity.OwnershipLink, error) {
	query := `SELECT id, tenant_id, document_id, owner_id, created_at, created_by
		FROM document_owners
		WHERE tenant_id = $1 AND ` + cond
	rows, err := db.Query(ctx, query, tenantID.UUID(), arg)
	if err != nil {
		return nil, fmt.Errorf("load ownership links: %w", err)
	}
	defer rows.Close()
	var links []entity.OwnershipLink
	for rows.Next() {
		var l entity.OwnershipLink
		if err := rows.Scan(&l.ID, &l.TenantID, &l.DocumentID, &l.OwnerID, &l.CreatedAt, &l.CreatedBy); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
