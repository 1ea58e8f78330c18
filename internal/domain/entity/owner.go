package entity

import (
	"fmt"
	"iter"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

const maxFriendlyName = 200

// DocumentResolver resolve documentos vinculados carregados pelo
// repositório. Os agregados não guardam ponteiros para o outro lado do
// vínculo; a navegação passa sempre por um lookup explícito do caller.
type DocumentResolver func(identifier.DocumentID) (*Document, bool)

// Owner parte (pessoa, empresa, entidade) que detém documentos.
type Owner struct {
	ID identifier.OwnerID
	TenantScoped
	FriendlyName string
	OwnerTypeID  identifier.OwnerTypeID
	links        []OwnershipLink
}

// NewOwner cria um dono de documentos. O tipo de dono deve pertencer à
// mesma organização (checado pelo serviço de aplicação ao carregá-lo).
func NewOwner(tenantID identifier.TenantID, friendlyName string, ownerTypeID identifier.OwnerTypeID, createdBy identifier.UserID, now time.Time) (*Owner, error) {
	if err := requireID("organização", tenantID); err != nil {
		return nil, err
	}
	friendlyName, err := requireText("nome", friendlyName, maxFriendlyName)
	if err != nil {
		return nil, err
	}
	if err := requireID("tipo de dono", ownerTypeID); err != nil {
		return nil, err
	}
	if err := requireID("usuário criador", createdBy); err != nil {
		return nil, err
	}
	return &Owner{
		ID: identifier.NewOwnerID(),
		TenantScoped: TenantScoped{
			TenantID:  tenantID,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		},
		FriendlyName: friendlyName,
		OwnerTypeID:  ownerTypeID,
	}, nil
}

// Rename altera o nome de exibição.
func (o *Owner) Rename(friendlyName string, by identifier.UserID, now time.Time) error {
	friendlyName, err := requireText("nome", friendlyName, maxFriendlyName)
	if err != nil {
		return err
	}
	o.FriendlyName = friendlyName
	o.Touch(by, now)
	return nil
}

// LinkDocument vincula um documento a este dono aplicando as regras de
// posse, nesta ordem:
//
//  1. documento e dono devem ser da mesma organização;
//  2. o tipo do dono deve poder receber o tipo do documento;
//  3. se o tipo do documento não admite múltiplos, não pode existir outro
//     documento ativo do mesmo tipo já vinculado (resolvido via resolve);
//  4. vínculo já existente com este exato documento é no-op silencioso;
//  5. caso contrário o vínculo é criado e anexado aos dois agregados.
//
// docType é o tipo do documento, carregado pelo repositório com seus
// vínculos de compatibilidade; resolve devolve os documentos já vinculados
// quando a política de documento único precisa ser checada.
func (o *Owner) LinkDocument(doc *Document, docType *DocumentType, resolve DocumentResolver, by identifier.UserID, now time.Time) (*OwnershipLink, error) {
	if docType == nil || docType.ID != doc.DocumentTypeID {
		return nil, fmt.Errorf("%w: tipo de documento não corresponde ao documento", domain.ErrValidation)
	}
	if doc.TenantID != o.TenantID || docType.TenantID != o.TenantID {
		return nil, domain.ErrCrossTenant
	}
	if !docType.CanBeUsedByOwnerType(o.OwnerTypeID) {
		return nil, domain.ErrIncompatibleType
	}
	if !docType.AllowsMultipleDocuments {
		for _, l := range o.links {
			if l.DocumentID == doc.ID {
				continue
			}
			other, ok := resolve(l.DocumentID)
			if !ok {
				continue
			}
			if other.DocumentTypeID == doc.DocumentTypeID && other.IsActive() {
				return nil, domain.ErrDuplicateActiveDocument
			}
		}
	}
	if o.linkedTo(doc.ID) {
		return nil, nil
	}
	link := OwnershipLink{
		ID:         identifier.NewOwnershipLinkID(),
		TenantID:   o.TenantID,
		DocumentID: doc.ID,
		OwnerID:    o.ID,
		CreatedAt:  now,
		CreatedBy:  by,
	}
	o.links = append(o.links, link)
	doc.links = append(doc.links, link)
	return &link, nil
}

// UnlinkDocument remove o vínculo deste lado se presente; sem efeito caso
// contrário. O lado do documento deve ser mantido consistente pelo caller.
func (o *Owner) UnlinkDocument(id identifier.DocumentID) bool {
	for i, l := range o.links {
		if l.DocumentID == id {
			o.links = append(o.links[:i], o.links[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveDocuments percorre, de forma preguiçosa, os documentos ativos
// vinculados. Vínculos que resolve não conhece são ignorados (a persistência
// deve ter carregado os documentos antes).
func (o *Owner) ActiveDocuments(resolve DocumentResolver) iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for _, l := range o.links {
			d, ok := resolve(l.DocumentID)
			if !ok || !d.IsActive() {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// DocumentsOfType percorre, de forma preguiçosa, os documentos vinculados da
// categoria informada, ativos ou não.
func (o *Owner) DocumentsOfType(id identifier.DocumentTypeID, resolve DocumentResolver) iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for _, l := range o.links {
			d, ok := resolve(l.DocumentID)
			if !ok || d.DocumentTypeID != id {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Links devolve os vínculos de posse carregados.
func (o *Owner) Links() []OwnershipLink { return o.links }

// AttachLink hidrata um vínculo carregado pela persistência.
func (o *Owner) AttachLink(l OwnershipLink) { o.links = append(o.links, l) }

func (o *Owner) linkedTo(id identifier.DocumentID) bool {
	for _, l := range o.links {
		if l.DocumentID == id {
			return true
		}
	}
	return false
}
