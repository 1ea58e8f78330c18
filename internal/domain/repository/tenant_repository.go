// Package repository define os portos de persistência do domínio (DIP).
// As implementações vivem em infrastructure. Toda consulta a entidade
// pertencente a uma organização recebe o tenant explicitamente — uma
// consulta sem filtro de organização é um defeito, não uma operação válida.
package repository

import (
	"context"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// TenantRepository porto de persistência para Tenant (raiz, sem escopo).
// Lookups que não encontram devolvem (nil, nil); a camada de aplicação
// traduz para domain.ErrNotFound.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id identifier.TenantID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, t *entity.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
}
