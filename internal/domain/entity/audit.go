package entity

import (
	"fmt"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// Operações auditáveis.
const (
	OperationCreate   AuditOperation = "create"
	OperationUpdate   AuditOperation = "update"
	OperationDelete   AuditOperation = "delete"
	OperationDownload AuditOperation = "download"
	OperationLogin    AuditOperation = "login"
	OperationLogout   AuditOperation = "logout"
)

// AuditOperation tipo da operação registrada na trilha de auditoria.
type AuditOperation string

func (op AuditOperation) valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete,
		OperationDownload, OperationLogin, OperationLogout:
		return true
	}
	return false
}

const (
	maxEntityKind = 100
	maxClientIP   = 45 // comporta IPv6 textual
)

// Nomes de entidade usados na trilha de auditoria.
const (
	KindTenant        = "tenant"
	KindUser          = "user"
	KindOwnerType     = "owner_type"
	KindDocumentType  = "document_type"
	KindOwner         = "owner"
	KindDocument      = "document"
	KindTypeLink      = "owner_type_document_type"
	KindOwnershipLink = "document_owner"
)

// AuditEntry registro imutável de uma mutação: quem fez o quê, onde e
// quando. Nunca é atualizado nem removido por este núcleo. Before e After
// são snapshots serializados, opacos para a trilha (vazio = ausente).
type AuditEntry struct {
	ID         identifier.AuditEntryID
	TenantID   identifier.TenantID
	UserID     identifier.UserID
	EntityKind string
	EntityID   string
	Operation  AuditOperation
	Before     string
	After      string
	OccurredAt time.Time
	ClientIP   string
	UserAgent  string
}

// NewAuditEntry constrói um registro com identificador novo e OccurredAt
// preenchido. Valida apenas os campos que a trilha exige: entidade afetada e
// IP do cliente.
func NewAuditEntry(tenantID identifier.TenantID, userID identifier.UserID, entityKind, entityID string, op AuditOperation, clientIP, before, after, userAgent string, now time.Time) (*AuditEntry, error) {
	if err := requireID("organização", tenantID); err != nil {
		return nil, err
	}
	if err := requireID("usuário", userID); err != nil {
		return nil, err
	}
	entityKind, err := requireText("entidade afetada", entityKind, maxEntityKind)
	if err != nil {
		return nil, err
	}
	if !op.valid() {
		return nil, fmt.Errorf("%w: operação de auditoria desconhecida: %q", domain.ErrValidation, op)
	}
	clientIP, err = requireText("ip do cliente", clientIP, maxClientIP)
	if err != nil {
		return nil, err
	}
	return &AuditEntry{
		ID:         identifier.NewAuditEntryID(),
		TenantID:   tenantID,
		UserID:     userID,
		EntityKind: entityKind,
		EntityID:   entityID,
		Operation:  op,
		Before:     before,
		After:      after,
		OccurredAt: now,
		ClientIP:   clientIP,
		UserAgent:  userAgent,
	}, nil
}

// NewLoginEntry registra a entrada de um usuário no sistema.
func NewLoginEntry(tenantID identifier.TenantID, userID identifier.UserID, clientIP, userAgent string, now time.Time) (*AuditEntry, error) {
	return NewAuditEntry(tenantID, userID, KindUser, userID.String(),
		OperationLogin, clientIP, "", `{"acao":"login"}`, userAgent, now)
}

// NewLogoutEntry registra a saída de um usuário do sistema.
func NewLogoutEntry(tenantID identifier.TenantID, userID identifier.UserID, clientIP, userAgent string, now time.Time) (*AuditEntry, error) {
	return NewAuditEntry(tenantID, userID, KindUser, userID.String(),
		OperationLogout, clientIP, "", `{"acao":"logout"}`, userAgent, now)
}

// NewDownloadEntry registra o download do conteúdo de um documento.
func NewDownloadEntry(tenantID identifier.TenantID, userID identifier.UserID, documentID identifier.DocumentID, clientIP, userAgent string, now time.Time) (*AuditEntry, error) {
	return NewAuditEntry(tenantID, userID, KindDocument, documentID.String(),
		OperationDownload, clientIP, "", `{"acao":"download"}`, userAgent, now)
}
