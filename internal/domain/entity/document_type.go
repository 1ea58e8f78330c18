package entity

import (
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

const maxCatalogName = 100

// TypeLink é o registro de junção tipo de dono × tipo de documento.
// Um único registro é compartilhado pelas coleções em memória dos dois lados;
// a consistência entre os lados é responsabilidade de quem os carrega.
type TypeLink struct {
	ID             identifier.TypeLinkID
	TenantID       identifier.TenantID
	OwnerTypeID    identifier.OwnerTypeID
	DocumentTypeID identifier.DocumentTypeID
	CreatedAt      time.Time
	CreatedBy      identifier.UserID
}

// DocumentType categoria de documento, com a política de quantos documentos
// ativos desta categoria um mesmo dono pode manter simultaneamente.
type DocumentType struct {
	ID identifier.DocumentTypeID
	TenantScoped
	Name                    string
	AllowsMultipleDocuments bool
	links                   []TypeLink
}

// NewDocumentType cria um tipo de documento. Nome é único por organização
// (pré-checado pelo serviço de aplicação).
func NewDocumentType(tenantID identifier.TenantID, name string, allowsMultiple bool, createdBy identifier.UserID, now time.Time) (*DocumentType, error) {
	if err := requireID("organização", tenantID); err != nil {
		return nil, err
	}
	name, err := requireText("nome", name, maxCatalogName)
	if err != nil {
		return nil, err
	}
	if err := requireID("usuário criador", createdBy); err != nil {
		return nil, err
	}
	return &DocumentType{
		ID: identifier.NewDocumentTypeID(),
		TenantScoped: TenantScoped{
			TenantID:  tenantID,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		},
		Name:                    name,
		AllowsMultipleDocuments: allowsMultiple,
	}, nil
}

// Rename altera o nome da categoria.
func (dt *DocumentType) Rename(name string, by identifier.UserID, now time.Time) error {
	name, err := requireText("nome", name, maxCatalogName)
	if err != nil {
		return err
	}
	dt.Name = name
	dt.Touch(by, now)
	return nil
}

// ChangeAllowsMultiple alterna a política de documento único/múltiplo.
// Não desativa retroativamente documentos existentes: a política vale apenas
// no momento do vínculo.
func (dt *DocumentType) ChangeAllowsMultiple(allows bool, by identifier.UserID, now time.Time) {
	dt.AllowsMultipleDocuments = allows
	dt.Touch(by, now)
}

// LinkOwnerType declara que donos do tipo informado podem receber documentos
// desta categoria. Exige mesma organização; idempotente (vínculo existente
// devolve nil sem erro). O registro criado é anexado às coleções dos dois
// agregados.
func (dt *DocumentType) LinkOwnerType(ot *OwnerType, by identifier.UserID, now time.Time) (*TypeLink, error) {
	if ot.TenantID != dt.TenantID {
		return nil, domain.ErrCrossTenant
	}
	if dt.CanBeUsedByOwnerType(ot.ID) {
		return nil, nil
	}
	link := TypeLink{
		ID:             identifier.NewTypeLinkID(),
		TenantID:       dt.TenantID,
		OwnerTypeID:    ot.ID,
		DocumentTypeID: dt.ID,
		CreatedAt:      now,
		CreatedBy:      by,
	}
	dt.links = append(dt.links, link)
	ot.links = append(ot.links, link)
	return &link, nil
}

// UnlinkOwnerType remove o vínculo deste lado se presente; sem efeito caso
// contrário. O lado do tipo de dono deve ser mantido consistente pelo caller.
func (dt *DocumentType) UnlinkOwnerType(id identifier.OwnerTypeID) bool {
	for i, l := range dt.links {
		if l.OwnerTypeID == id {
			dt.links = append(dt.links[:i], dt.links[i+1:]...)
			return true
		}
	}
	return false
}

// CanBeUsedByOwnerType indica se donos do tipo informado podem receber
// documentos desta categoria.
func (dt *DocumentType) CanBeUsedByOwnerType(id identifier.OwnerTypeID) bool {
	for _, l := range dt.links {
		if l.OwnerTypeID == id {
			return true
		}
	}
	return false
}

// Links devolve os vínculos de compatibilidade carregados.
func (dt *DocumentType) Links() []TypeLink { return dt.links }

// AttachLink hidrata um vínculo carregado pela persistência.
func (dt *DocumentType) AttachLink(l TypeLink) { dt.links = append(dt.links, l) }
