package repository

import (
	"context"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// AuditRepository porto da trilha de auditoria: append-only na escrita,
// consultas sempre filtradas pela organização. Registros nunca são
// atualizados nem removidos.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditEntry) error
	ListByUser(ctx context.Context, tenantID identifier.TenantID, userID identifier.UserID, limit, offset int) ([]*entity.AuditEntry, error)
	ListByEntity(ctx context.Context, tenantID identifier.TenantID, entityKind, entityID string, limit, offset int) ([]*entity.AuditEntry, error)
	ListByOperation(ctx context.Context, tenantID identifier.TenantID, op entity.AuditOperation, limit, offset int) ([]*entity.AuditEntry, error)
	ListByPeriod(ctx context.Context, tenantID identifier.TenantID, from, to time.Time, limit, offset int) ([]*entity.AuditEntry, error)
}
