// Package entity contém os agregados do domínio de gestão de documentos.
// Toda invariante de negócio (isolamento por organização, compatibilidade de
// tipos, política de documento único ativo) é aplicada aqui, nunca apenas por
// constraint de banco.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// TenantScoped campos comuns a toda entidade pertencente a uma organização.
// RowVersion é mantido pela camada de persistência para controle otimista de
// concorrência.
type TenantScoped struct {
	TenantID   identifier.TenantID
	CreatedAt  time.Time
	CreatedBy  identifier.UserID
	UpdatedAt  time.Time
	UpdatedBy  identifier.UserID
	RowVersion int64
}

// Touch registra autoria e instante da última mutação.
func (t *TenantScoped) Touch(by identifier.UserID, at time.Time) {
	t.UpdatedAt = at
	t.UpdatedBy = by
}

// StampTenant preenche a organização apenas quando ainda não definida.
// Uso exclusivo da camada de persistência no insert; código de aplicação
// nunca deve chamá-lo para mover entidades entre organizações.
func (t *TenantScoped) StampTenant(id identifier.TenantID) {
	if t.TenantID.IsZero() {
		t.TenantID = id
	}
}

// requireText valida campo texto obrigatório: sem espaços nas bordas,
// não vazio e dentro do limite. Devolve o valor já aparado.
func requireText(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s é obrigatório", domain.ErrValidation, field)
	}
	if max > 0 && len(v) > max {
		return "", fmt.Errorf("%w: %s excede %d caracteres", domain.ErrValidation, field, max)
	}
	return v, nil
}

func requireID[T interface{ IsZero() bool }](field string, id T) error {
	if id.IsZero() {
		return fmt.Errorf("%w: %s é obrigatório", domain.ErrValidation, field)
	}
	return nil
}
