package usecase

import (
	"context"
	"fmt"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

// AuditUseCase consultas da trilha de auditoria. A escrita acontece dentro
// das unidades de trabalho dos demais serviços; aqui só há leitura, sempre
// filtrada pela organização.
type AuditUseCase struct {
	audit repository.AuditRepository
}

// NewAuditUseCase constrói o serviço de consulta.
func NewAuditUseCase(audit repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

// Query consulta a trilha pelo critério preenchido na requisição: usuário,
// entidade afetada, operação ou período, nessa ordem de precedência.
func (uc *AuditUseCase) Query(ctx context.Context, in dto.AuditQueryRequest) (*dto.AuditListResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	in.Page = in.Page.Normalized()
	var list []*entity.AuditEntry
	switch {
	case in.UserID != "":
		userID, err := identifier.ParseUserID(in.UserID)
		if err != nil {
			return nil, err
		}
		list, err = uc.audit.ListByUser(ctx, tenantID, userID, in.Page.Limit, in.Page.Offset)
		if err != nil {
			return nil, err
		}
	case in.EntityKind != "":
		list, err = uc.audit.ListByEntity(ctx, tenantID, in.EntityKind, in.EntityID, in.Page.Limit, in.Page.Offset)
		if err != nil {
			return nil, err
		}
	case in.Operation != "":
		list, err = uc.audit.ListByOperation(ctx, tenantID, entity.AuditOperation(in.Operation), in.Page.Limit, in.Page.Offset)
		if err != nil {
			return nil, err
		}
	case in.From != nil && in.To != nil:
		list, err = uc.audit.ListByPeriod(ctx, tenantID, *in.From, *in.To, in.Page.Limit, in.Page.Offset)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: consulta de auditoria sem critério", domain.ErrValidation)
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toAuditEntryResponse(e))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Page.Limit, Offset: in.Page.Offset},
	}, nil
}

func toAuditEntryResponse(e *entity.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:         e.ID.String(),
		TenantID:   e.TenantID.String(),
		UserID:     e.UserID.String(),
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		Operation:  string(e.Operation),
		Before:     e.Before,
		After:      e.After,
		OccurredAt: e.OccurredAt,
		ClientIP:   e.ClientIP,
		UserAgent:  e.UserAgent,
	}
}
