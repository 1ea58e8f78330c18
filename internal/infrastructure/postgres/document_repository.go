package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementação do porto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	db DBTX
}

// NewDocumentRepository constrói o adaptador de persistência de documentos.
func NewDocumentRepository(db DBTX) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, tenant_id, file_name, storage_key, uploaded_at, size_bytes,
	file_kind, version, status, document_type_id,
	created_at, created_by, updated_at, updated_by, row_version`

// Create persiste um documento novo na organização informada.
func (r *DocumentRepo) Create(ctx context.Context, tenantID identifier.TenantID, d *entity.Document) error {
	d.StampTenant(tenantID)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		d.ID.UUID(), d.TenantID.UUID(), d.FileName, d.StorageKey, d.UploadedAt, d.SizeBytes,
		d.FileKind, d.Version, string(d.Status), d.DocumentTypeID.UUID(),
		d.CreatedAt, d.CreatedBy.UUID(), d.UpdatedAt, d.UpdatedBy.UUID(), d.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtém um documento com seus vínculos de posse.
func (r *DocumentRepo) GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentID) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND id = $2`
	d, err := r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), id.UUID()), "get document by id")
	if err != nil || d == nil {
		return d, err
	}
	links, err := loadOwnershipLinks(ctx, r.db, tenantID, `document_id = $2`, id.UUID())
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		d.AttachLink(l)
	}
	return d, nil
}

// GetByStorageKey obtém um documento pela chave de armazenamento, sem
// vínculos carregados.
func (r *DocumentRepo) GetByStorageKey(ctx context.Context, tenantID identifier.TenantID, storageKey string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND storage_key = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), storageKey), "get document by storage key")
}

// ExistsByStorageKey verifica a unicidade da chave de armazenamento dentro
// da organização.
func (r *DocumentRepo) ExistsByStorageKey(ctx context.Context, tenantID identifier.TenantID, storageKey string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE tenant_id = $1 AND storage_key = $2)`,
		tenantID.UUID(), storageKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists document by storage key: %w", err)
	}
	return exists, nil
}

// Update persiste um documento mutado, guardado por row_version.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents
		SET file_name = $3, storage_key = $4, uploaded_at = $5, size_bytes = $6,
		    file_kind = $7, version = $8, status = $9, document_type_id = $10,
		    updated_at = $11, updated_by = $12, row_version = row_version + 1
		WHERE tenant_id = $1 AND id = $2 AND row_version = $13`
	tag, err := r.db.Exec(ctx, query,
		d.TenantID.UUID(), d.ID.UUID(), d.FileName, d.StorageKey, d.UploadedAt, d.SizeBytes,
		d.FileKind, d.Version, string(d.Status), d.DocumentTypeID.UUID(),
		d.UpdatedAt, d.UpdatedBy.UUID(), d.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db,
			`SELECT EXISTS (SELECT 1 FROM documents WHERE tenant_id = $1 AND id = $2)`,
			d.TenantID.UUID(), d.ID.UUID())
	}
	d.RowVersion++
	return nil
}

// ListByTenant lista documentos da organização com paginação.
func (r *DocumentRepo) ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE tenant_id = $1 ORDER BY uploaded_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID.UUID(), limit, offset)
}

// ListByDocumentType lista documentos de um tipo com paginação.
func (r *DocumentRepo) ListByDocumentType(ctx context.Context, tenantID identifier.TenantID, documentTypeID identifier.DocumentTypeID, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE tenant_id = $1 AND document_type_id = $2 ORDER BY uploaded_at DESC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, tenantID.UUID(), documentTypeID.UUID(), limit, offset)
}

// ListByOwner lista os documentos vinculados a um dono, com os vínculos de
// posse de cada documento carregados. Serve de arena para a navegação
// dono → documentos do domínio.
func (r *DocumentRepo) ListByOwner(ctx context.Context, tenantID identifier.TenantID, ownerID identifier.OwnerID) ([]*entity.Document, error) {
	query := `SELECT d.id, d.tenant_id, d.file_name, d.storage_key, d.uploaded_at, d.size_bytes,
			d.file_kind, d.version, d.status, d.document_type_id,
			d.created_at, d.created_by, d.updated_at, d.updated_by, d.row_version
		FROM documents d
		JOIN document_owners l ON l.document_id = d.id AND l.tenant_id = d.tenant_id
		WHERE d.tenant_id = $1 AND l.owner_id = $2
		ORDER BY d.uploaded_at DESC`
	docs, err := r.list(ctx, query, tenantID.UUID(), ownerID.UUID())
	if err != nil || len(docs) == 0 {
		return docs, err
	}
	byID := make(map[identifier.DocumentID]*entity.Document, len(docs))
	ids := make([]uuid.UUID, 0, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
		ids = append(ids, d.ID.UUID())
	}
	links, err := loadOwnershipLinks(ctx, r.db, tenantID, `document_id = ANY($2)`, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if d, ok := byID[l.DocumentID]; ok {
			d.AttachLink(l)
		}
	}
	return docs, nil
}

// Delete remove fisicamente um documento sem vínculos de posse.
func (r *DocumentRepo) Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM documents WHERE tenant_id = $1 AND id = $2`,
		tenantID.UUID(), id.UUID())
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DocumentRepo) scanOne(row pgx.Row, op string) (*entity.Document, error) {
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var status string
	err := row.Scan(&d.ID, &d.TenantID, &d.FileName, &d.StorageKey, &d.UploadedAt, &d.SizeBytes,
		&d.FileKind, &d.Version, &status, &d.DocumentTypeID,
		&d.CreatedAt, &d.CreatedBy, &d.UpdatedAt, &d.UpdatedBy, &d.RowVersion)
	if err != nil {
		return nil, err
	}
	d.Status = entity.DocumentStatus(status)
	return &d, nil
}
