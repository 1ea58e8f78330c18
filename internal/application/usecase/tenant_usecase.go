package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

// TenantUseCase serviço de aplicação para organizações.
type TenantUseCase struct {
	uow     repository.UnitOfWork
	tenants repository.TenantRepository
}

// NewTenantUseCase constrói o serviço com a unidade de trabalho e o
// repositório de leitura.
func NewTenantUseCase(uow repository.UnitOfWork, tenants repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{uow: uow, tenants: tenants}
}

// Register cria uma organização nova. A unicidade do slug é checada com o
// valor dobrado para minúsculas, de modo que "ACME" colide com "acme" e
// devolve ErrDuplicateSlug antes da validação de forma.
func (uc *TenantUseCase) Register(ctx context.Context, in dto.RegisterTenantRequest) (*dto.TenantResponse, error) {
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	folded := strings.ToLower(strings.TrimSpace(in.Slug))
	var out *dto.TenantResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		exists, err := r.Tenants.ExistsBySlug(ctx, folded)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateSlug
		}
		now := time.Now().UTC()
		tenant, err := entity.NewTenant(in.Name, in.Slug, actorID, now)
		if err != nil {
			return err
		}
		if err := r.Tenants.Create(ctx, tenant); err != nil {
			return err
		}
		after, err := encodeSnapshot(tenant.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenant.ID, actorID, in.Actor, entity.KindTenant, tenant.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toTenantResponse(tenant)
		return nil
	})
	return out, err
}

// Rename troca o nome de exibição da organização.
func (uc *TenantUseCase) Rename(ctx context.Context, in dto.RenameTenantRequest) (*dto.TenantResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.Actor, func(t *entity.Tenant, by identifier.UserID, now time.Time) error {
		return t.RenameOrganization(in.Name, by, now)
	})
}

// ChangeStatus muda o estado da organização (ação administrativa).
func (uc *TenantUseCase) ChangeStatus(ctx context.Context, in dto.ChangeTenantStatusRequest) (*dto.TenantResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.Actor, func(t *entity.Tenant, by identifier.UserID, now time.Time) error {
		return t.ChangeStatus(entity.TenantStatus(in.Status), by, now)
	})
}

// SetExpiration define ou limpa a expiração da organização.
func (uc *TenantUseCase) SetExpiration(ctx context.Context, in dto.SetTenantExpirationRequest) (*dto.TenantResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.Actor, func(t *entity.Tenant, by identifier.UserID, now time.Time) error {
		return t.SetExpiration(in.ExpiresAt, by, now)
	})
}

// mutate fluxo comum das mutações de organização: carregar, snapshot antes,
// mutar, persistir e auditar na mesma transação.
func (uc *TenantUseCase) mutate(ctx context.Context, tenantID string, actor dto.Actor, fn func(*entity.Tenant, identifier.UserID, time.Time) error) (*dto.TenantResponse, error) {
	id, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(actor)
	if err != nil {
		return nil, err
	}
	var out *dto.TenantResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		tenant, err := r.Tenants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tenant == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(tenant.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := fn(tenant, actorID, now); err != nil {
			return err
		}
		if err := r.Tenants.Update(ctx, tenant); err != nil {
			return err
		}
		after, err := encodeSnapshot(tenant.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenant.ID, actorID, actor, entity.KindTenant, tenant.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toTenantResponse(tenant)
		return nil
	})
	return out, err
}

// GetByID obtém uma organização por ID.
func (uc *TenantUseCase) GetByID(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	id, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// GetBySlug obtém uma organização pelo slug.
func (uc *TenantUseCase) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	tenant, err := uc.tenants.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// List lista organizações com paginação.
func (uc *TenantUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TenantListResponse, error) {
	page = page.Normalized()
	list, err := uc.tenants.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    string(t.Status),
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
