package repository

import (
	"context"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// DocumentRepository porto de persistência para Document. GetByID carrega o
// agregado com seus vínculos de posse; ListByOwner serve de arena para o
// DocumentResolver do agregado Owner.
type DocumentRepository interface {
	Create(ctx context.Context, tenantID identifier.TenantID, d *entity.Document) error
	GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentID) (*entity.Document, error)
	GetByStorageKey(ctx context.Context, tenantID identifier.TenantID, storageKey string) (*entity.Document, error)
	ExistsByStorageKey(ctx context.Context, tenantID identifier.TenantID, storageKey string) (bool, error)
	Update(ctx context.Context, d *entity.Document) error
	ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Document, error)
	ListByDocumentType(ctx context.Context, tenantID identifier.TenantID, documentTypeID identifier.DocumentTypeID, limit, offset int) ([]*entity.Document, error)
	ListByOwner(ctx context.Context, tenantID identifier.TenantID, ownerID identifier.OwnerID) ([]*entity.Document, error)
	Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentID) error
}
