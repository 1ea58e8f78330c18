package dto

import "time"

// AuditQueryRequest consulta da trilha de auditoria. Exatamente um dos
// critérios (usuário, entidade, operação, período) deve ser preenchido.
type AuditQueryRequest struct {
	TenantID   string      `json:"tenant_id"`
	UserID     string      `json:"user_id,omitempty"`
	EntityKind string      `json:"entity_kind,omitempty"`
	EntityID   string      `json:"entity_id,omitempty"`
	Operation  string      `json:"operation,omitempty"`
	From       *time.Time  `json:"from,omitempty"`
	To         *time.Time  `json:"to,omitempty"`
	Page       PageRequest `json:"page"`
}

// AuditEntryResponse representação externa de um registro de auditoria.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	Operation  string    `json:"operation"`
	Before     string    `json:"before,omitempty"`
	After      string    `json:"after,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	ClientIP   string    `json:"client_ip"`
	UserAgent  string    `json:"user_agent,omitempty"`
}

// AuditListResponse listagem paginada de registros de auditoria.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
