package entity

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// Status possíveis de uma organização.
const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

// TenantStatus estado do ciclo de vida de uma organização.
type TenantStatus string

func (s TenantStatus) valid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantSuspended:
		return true
	}
	return false
}

const (
	maxTenantName = 120
	maxTenantSlug = 50
)

// slugPattern: minúsculas, dígitos e hífen. O slug é armazenado exatamente
// como recebido; maiúsculas ou underscore são rejeitados, não normalizados.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Tenant é a raiz de agregado que define a fronteira de isolamento lógico.
// Todo dado operacional pertence a exatamente uma organização. Não há remoção
// física neste núcleo; o ciclo de vida se dá por status e expiração.
type Tenant struct {
	ID         identifier.TenantID
	Name       string
	Slug       string
	Status     TenantStatus
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	CreatedBy  identifier.UserID
	UpdatedAt  time.Time
	UpdatedBy  identifier.UserID
	RowVersion int64
}

// NewTenant cria uma organização ativa. A unicidade global do slug é
// pré-checada pelo serviço de aplicação; aqui valida-se apenas forma.
func NewTenant(name, slug string, createdBy identifier.UserID, now time.Time) (*Tenant, error) {
	name, err := requireText("nome", name, maxTenantName)
	if err != nil {
		return nil, err
	}
	slug, err = requireText("slug", slug, maxTenantSlug)
	if err != nil {
		return nil, err
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug deve conter apenas minúsculas, dígitos e hífen", domain.ErrValidation)
	}
	if err := requireID("usuário criador", createdBy); err != nil {
		return nil, err
	}
	return &Tenant{
		ID:        identifier.NewTenantID(),
		Name:      name,
		Slug:      slug,
		Status:    TenantActive,
		CreatedAt: now,
		CreatedBy: createdBy,
		UpdatedAt: now,
		UpdatedBy: createdBy,
	}, nil
}

// RenameOrganization altera o nome de exibição.
func (t *Tenant) RenameOrganization(name string, by identifier.UserID, now time.Time) error {
	name, err := requireText("nome", name, maxTenantName)
	if err != nil {
		return err
	}
	t.Name = name
	t.touch(by, now)
	return nil
}

// ChangeStatus muda o estado da organização (ação administrativa).
func (t *Tenant) ChangeStatus(status TenantStatus, by identifier.UserID, now time.Time) error {
	if !status.valid() {
		return fmt.Errorf("%w: status de organização desconhecido: %q", domain.ErrValidation, status)
	}
	t.Status = status
	t.touch(by, now)
	return nil
}

// SetExpiration define (ou limpa, com nil) a data de expiração.
// Datas no passado são rejeitadas.
func (t *Tenant) SetExpiration(expiresAt *time.Time, by identifier.UserID, now time.Time) error {
	if expiresAt != nil && !expiresAt.After(now) {
		return fmt.Errorf("%w: expiração não pode estar no passado", domain.ErrValidation)
	}
	t.ExpiresAt = expiresAt
	t.touch(by, now)
	return nil
}

// IsActive indica se a organização está operacional.
func (t *Tenant) IsActive() bool { return t.Status == TenantActive }

// IsExpired indica se a expiração foi definida e já passou.
func (t *Tenant) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

func (t *Tenant) touch(by identifier.UserID, at time.Time) {
	t.UpdatedAt = at
	t.UpdatedBy = by
}
