package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementação do porto AuditRepository sobre PostgreSQL. A
// trilha é somente inserção; não há Update nem Delete.
type AuditRepo struct {
	db DBTX
}

// NewAuditRepository constrói o adaptador de persistência da trilha de auditoria.
func NewAuditRepository(db DBTX) *AuditRepo {
	return &AuditRepo{db: db}
}

const auditColumns = `id, tenant_id, user_id, entity_kind, entity_id, operation,
	before_snapshot, after_snapshot, occurred_at, client_ip, user_agent`

// Append insere um registro imutável na trilha.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		e.ID.UUID(), e.TenantID.UUID(), e.UserID.UUID(), e.EntityKind, e.EntityID, string(e.Operation),
		e.Before, e.After, e.OccurredAt, e.ClientIP, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByUser lista registros de um usuário, mais recentes primeiro.
func (r *AuditRepo) ListByUser(ctx context.Context, tenantID identifier.TenantID, userID identifier.UserID, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY occurred_at DESC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, tenantID.UUID(), userID.UUID(), limit, offset)
}

// ListByEntity lista registros de uma entidade, mais recentes primeiro.
func (r *AuditRepo) ListByEntity(ctx context.Context, tenantID identifier.TenantID, entityKind, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries
		WHERE tenant_id = $1 AND entity_kind = $2 AND entity_id = $3
		ORDER BY occurred_at DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, tenantID.UUID(), entityKind, entityID, limit, offset)
}

// ListByOperation lista registros de uma operação, mais recentes primeiro.
func (r *AuditRepo) ListByOperation(ctx context.Context, tenantID identifier.TenantID, op entity.AuditOperation, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries
		WHERE tenant_id = $1 AND operation = $2
		ORDER BY occurred_at DESC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, tenantID.UUID(), string(op), limit, offset)
}

// ListByPeriod lista registros no intervalo [from, to), mais recentes primeiro.
func (r *AuditRepo) ListByPeriod(ctx context.Context, tenantID identifier.TenantID, from, to time.Time, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_entries
		WHERE tenant_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, tenantID.UUID(), from, to, limit, offset)
}

func (r *AuditRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AuditEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var op string
		err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.EntityKind, &e.EntityID, &op,
			&e.Before, &e.After, &e.OccurredAt, &e.ClientIP, &e.UserAgent)
		if err != nil {
			return nil, err
		}
		e.Operation = entity.AuditOperation(op)
		list = append(list, &e)
	}
	return list, rows.Err()
}
