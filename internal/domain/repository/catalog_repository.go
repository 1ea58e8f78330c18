package repository

import (
	"context"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// OwnerTypeRepository porto de persistência para OwnerType. GetByID carrega
// o agregado com seus vínculos de compatibilidade.
type OwnerTypeRepository interface {
	Create(ctx context.Context, tenantID identifier.TenantID, ot *entity.OwnerType) error
	GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) (*entity.OwnerType, error)
	GetByName(ctx context.Context, tenantID identifier.TenantID, name string) (*entity.OwnerType, error)
	ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error)
	Update(ctx context.Context, ot *entity.OwnerType) error
	ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.OwnerType, error)
	Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) error
}

// DocumentTypeRepository porto de persistência para DocumentType. GetByID
// carrega o agregado com seus vínculos de compatibilidade. AddLink e
// RemoveLink persistem o registro de junção compartilhado pelos dois lados.
type DocumentTypeRepository interface {
	Create(ctx context.Context, tenantID identifier.TenantID, dt *entity.DocumentType) error
	GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) (*entity.DocumentType, error)
	GetByName(ctx context.Context, tenantID identifier.TenantID, name string) (*entity.DocumentType, error)
	ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error)
	Update(ctx context.Context, dt *entity.DocumentType) error
	ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.DocumentType, error)
	AddLink(ctx context.Context, l *entity.TypeLink) error
	RemoveLink(ctx context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, documentTypeID identifier.DocumentTypeID) error
	Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) error
}
