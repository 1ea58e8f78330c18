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

var _ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)

// DocumentTypeRepo implementação do porto DocumentTypeRepository sobre
// PostgreSQL. Os vínculos de compatibilidade vivem na tabela de junção
// owner_type_document_types e são persistidos via AddLink/RemoveLink, nunca
// pelo Update do agregado.
type DocumentTypeRepo struct {
	db DBTX
}

// NewDocumentTypeRepository constrói o adaptador de persistência de tipos de documento.
func NewDocumentTypeRepository(db DBTX) *DocumentTypeRepo {
	return &DocumentTypeRepo{db: db}
}

const documentTypeColumns = `id, tenant_id, name, allows_multiple,
	created_at, created_by, updated_at, updated_by, row_version`

// Create persiste um tipo de documento novo na organização informada.
func (r *DocumentTypeRepo) Create(ctx context.Context, tenantID identifier.TenantID, dt *entity.DocumentType) error {
	dt.StampTenant(tenantID)
	query := `
		INSERT INTO document_types (` + documentTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		dt.ID.UUID(), dt.TenantID.UUID(), dt.Name, dt.AllowsMultipleDocuments,
		dt.CreatedAt, dt.CreatedBy.UUID(), dt.UpdatedAt, dt.UpdatedBy.UUID(), dt.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert document type: %w", err)
	}
	return nil
}

// GetByID obtém um tipo de documento com seus vínculos de compatibilidade.
func (r *DocumentTypeRepo) GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) (*entity.DocumentType, error) {
	query := `SELECT ` + documentTypeColumns + ` FROM document_types WHERE tenant_id = $1 AND id = $2`
	dt, err := r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), id.UUID()), "get document type by id")
	if err != nil || dt == nil {
		return dt, err
	}
	links, err := loadTypeLinks(ctx, r.db, tenantID, `document_type_id = $2`, id.UUID())
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		dt.AttachLink(l)
	}
	return dt, nil
}

// GetByName obtém um tipo de documento pelo nome, sem vínculos carregados.
func (r *DocumentTypeRepo) GetByName(ctx context.Context, tenantID identifier.TenantID, name string) (*entity.DocumentType, error) {
	query := `SELECT ` + documentTypeColumns + ` FROM document_types WHERE tenant_id = $1 AND name = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), name), "get document type by name")
}

// ExistsByName verifica a unicidade do nome dentro da organização.
func (r *DocumentTypeRepo) ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM document_types WHERE tenant_id = $1 AND name = $2)`,
		tenantID.UUID(), name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists document type by name: %w", err)
	}
	return exists, nil
}

// Update persiste um tipo de documento mutado, guardado por row_version.
func (r *DocumentTypeRepo) Update(ctx context.Context, dt *entity.DocumentType) error {
	query := `
		UPDATE document_types
		SET name = $3, allows_multiple = $4, updated_at = $5, updated_by = $6,
		    row_version = row_version + 1
		WHERE tenant_id = $1 AND id = $2 AND row_version = $7`
	tag, err := r.db.Exec(ctx, query,
		dt.TenantID.UUID(), dt.ID.UUID(), dt.Name, dt.AllowsMultipleDocuments,
		dt.UpdatedAt, dt.UpdatedBy.UUID(), dt.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update document type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db,
			`SELECT EXISTS (SELECT 1 FROM document_types WHERE tenant_id = $1 AND id = $2)`,
			dt.TenantID.UUID(), dt.ID.UUID())
	}
	dt.RowVersion++
	return nil
}

// ListByTenant lista tipos de documento da organização com paginação.
func (r *DocumentTypeRepo) ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.DocumentType, error) {
	query := `SELECT ` + documentTypeColumns + ` FROM document_types
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID.UUID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentType
	for rows.Next() {
		dt, err := scanDocumentType(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, dt)
	}
	return list, rows.Err()
}

// AddLink persiste um vínculo de compatibilidade já validado pelo domínio.
func (r *DocumentTypeRepo) AddLink(ctx context.Context, l *entity.TypeLink) error {
	query := `
		INSERT INTO owner_type_document_types (id, tenant_id, owner_type_id, document_type_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT type_links_triple_key DO NOTHING`
	_, err := r.db.Exec(ctx, query,
		l.ID.UUID(), l.TenantID.UUID(), l.OwnerTypeID.UUID(), l.DocumentTypeID.UUID(),
		l.CreatedAt, l.CreatedBy.UUID(),
	)
	if err != nil {
		return fmt.Errorf("insert type link: %w", err)
	}
	return nil
}

// RemoveLink remove o vínculo entre o tipo de dono e o tipo de documento.
// Ausência do vínculo não é erro.
func (r *DocumentTypeRepo) RemoveLink(ctx context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, documentTypeID identifier.DocumentTypeID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM owner_type_document_types
		 WHERE tenant_id = $1 AND owner_type_id = $2 AND document_type_id = $3`,
		tenantID.UUID(), ownerTypeID.UUID(), documentTypeID.UUID())
	if err != nil {
		return fmt.Errorf("delete type link: %w", err)
	}
	return nil
}

// Delete remove fisicamente um tipo de documento sem documentos nem vínculos.
func (r *DocumentTypeRepo) Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM document_types WHERE tenant_id = $1 AND id = $2`,
		tenantID.UUID(), id.UUID())
	if err != nil {
		return fmt.Errorf("delete document type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentTypeRepo) scanOne(row pgx.Row, op string) (*entity.DocumentType, error) {
	dt, err := scanDocumentType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return dt, nil
}

func scanDocumentType(row pgx.Row) (*entity.DocumentType, error) {
	var dt entity.DocumentType
	err := row.Scan(&dt.ID, &dt.TenantID, &dt.Name, &dt.AllowsMultipleDocuments,
		&dt.CreatedAt, &dt.CreatedBy, &dt.UpdatedAt, &dt.UpdatedBy, &dt.RowVersion)
	if err != nil {
		return nil, err
	}
	return &dt, nil
}
