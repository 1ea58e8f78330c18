// Package dto define os contratos de requisição/resposta consumidos pela
// camada de aplicação. São dados planos: identificadores em forma textual,
// validados ao cruzar a fronteira.
package dto

// Actor identifica quem executa uma mutação, para atribuição e auditoria.
type Actor struct {
	UserID    string `json:"user_id"`
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent,omitempty"`
}

// PageRequest paginação de listagens.
type PageRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Normalized aplica o limite padrão quando ausente e o teto quando
// excedido; offset negativo vira zero.
func (p PageRequest) Normalized() PageRequest {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResponse eco da paginação aplicada.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
