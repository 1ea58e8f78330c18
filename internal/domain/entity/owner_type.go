package entity

import (
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// OwnerType categoria de dono de documentos (ex.: "Pessoa Física",
// "Empresa"). Os vínculos de compatibilidade determinam quais categorias de
// documento um dono deste tipo pode receber.
type OwnerType struct {
	ID identifier.OwnerTypeID
	TenantScoped
	Name  string
	links []TypeLink
}

// NewOwnerType cria um tipo de dono. Nome é único por organização
// (pré-checado pelo serviço de aplicação).
func NewOwnerType(tenantID identifier.TenantID, name string, createdBy identifier.UserID, now time.Time) (*OwnerType, error) {
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
	return &OwnerType{
		ID: identifier.NewOwnerTypeID(),
		TenantScoped: TenantScoped{
			TenantID:  tenantID,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		},
		Name: name,
	}, nil
}

// Rename altera o nome da categoria.
func (ot *OwnerType) Rename(name string, by identifier.UserID, now time.Time) error {
	name, err := requireText("nome", name, maxCatalogName)
	if err != nil {
		return err
	}
	ot.Name = name
	ot.Touch(by, now)
	return nil
}

// LinkDocumentType espelho de DocumentType.LinkOwnerType: o mesmo registro
// compartilhado é anexado aos dois lados.
func (ot *OwnerType) LinkDocumentType(dt *DocumentType, by identifier.UserID, now time.Time) (*TypeLink, error) {
	return dt.LinkOwnerType(ot, by, now)
}

// UnlinkDocumentType remove o vínculo deste lado se presente; sem efeito
// caso contrário.
func (ot *OwnerType) UnlinkDocumentType(id identifier.DocumentTypeID) bool {
	for i, l := range ot.links {
		if l.DocumentTypeID == id {
			ot.links = append(ot.links[:i], ot.links[i+1:]...)
			return true
		}
	}
	return false
}

// CanReceiveDocumentType indica se donos deste tipo podem receber documentos
// da categoria informada. Equivalente a DocumentType.CanBeUsedByOwnerType,
// pois os dois lados compartilham o mesmo registro de junção.
func (ot *OwnerType) CanReceiveDocumentType(id identifier.DocumentTypeID) bool {
	for _, l := range ot.links {
		if l.DocumentTypeID == id {
			return true
		}
	}
	return false
}

// Links devolve os vínculos de compatibilidade carregados.
func (ot *OwnerType) Links() []TypeLink { return ot.links }

// AttachLink hidrata um vínculo carregado pela persistência.
func (ot *OwnerType) AttachLink(l TypeLink) { ot.links = append(ot.links, l) }
