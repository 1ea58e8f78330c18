package repository

import (
	"context"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// OwnerRepository porto de persistência para Owner. GetByID carrega o
// agregado com seus vínculos de posse.
type OwnerRepository interface {
	Create(ctx context.Context, tenantID identifier.TenantID, o *entity.Owner) error
	GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerID) (*entity.Owner, error)
	Update(ctx context.Context, o *entity.Owner) error
	ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Owner, error)
	ListByOwnerType(ctx context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, limit, offset int) ([]*entity.Owner, error)
	AddLink(ctx context.Context, l *entity.OwnershipLink) error
	RemoveLink(ctx context.Context, tenantID identifier.TenantID, documentID identifier.DocumentID, ownerID identifier.OwnerID) error
	Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.OwnerID) error
}
