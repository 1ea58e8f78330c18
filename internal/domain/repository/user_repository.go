package repository

import (
	"context"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// UserRepository porto de persistência para User. Email e login chegam já
// normalizados (minúsculas) pela entidade.
type UserRepository interface {
	Create(ctx context.Context, tenantID identifier.TenantID, u *entity.User) error
	GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.UserID) (*entity.User, error)
	GetByEmail(ctx context.Context, tenantID identifier.TenantID, email string) (*entity.User, error)
	GetByLogin(ctx context.Context, tenantID identifier.TenantID, login string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, tenantID identifier.TenantID, email string) (bool, error)
	ExistsByLogin(ctx context.Context, tenantID identifier.TenantID, login string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.UserID) error
}
