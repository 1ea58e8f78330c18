// Package identifier define os identificadores tipados do domínio.
// Cada tipo de entidade tem seu próprio tipo de ID sobre uuid.UUID, com
// igualdade por valor; o UUID nulo nunca é um identificador válido.
package identifier

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
)

// parse valida a forma textual e rejeita o UUID nulo.
func parse(kind, s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: identificador de %s malformado", domain.ErrValidation, kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: identificador de %s vazio", domain.ErrValidation, kind)
	}
	return u, nil
}

// TenantID identifica uma organização.
type TenantID uuid.UUID

func NewTenantID() TenantID { return TenantID(uuid.New()) }

func ParseTenantID(s string) (TenantID, error) {
	u, err := parse("organização", s)
	return TenantID(u), err
}

func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id TenantID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) UUID() uuid.UUID { return uuid.UUID(id) }

// UserID identifica um usuário.
type UserID uuid.UUID

func NewUserID() UserID { return UserID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	u, err := parse("usuário", s)
	return UserID(u), err
}

func (id UserID) String() string  { return uuid.UUID(id).String() }
func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) UUID() uuid.UUID { return uuid.UUID(id) }

// OwnerTypeID identifica um tipo de dono.
type OwnerTypeID uuid.UUID

func NewOwnerTypeID() OwnerTypeID { return OwnerTypeID(uuid.New()) }

func ParseOwnerTypeID(s string) (OwnerTypeID, error) {
	u, err := parse("tipo de dono", s)
	return OwnerTypeID(u), err
}

func (id OwnerTypeID) String() string  { return uuid.UUID(id).String() }
func (id OwnerTypeID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id OwnerTypeID) UUID() uuid.UUID { return uuid.UUID(id) }

// DocumentTypeID identifica um tipo de documento.
type DocumentTypeID uuid.UUID

func NewDocumentTypeID() DocumentTypeID { return DocumentTypeID(uuid.New()) }

func ParseDocumentTypeID(s string) (DocumentTypeID, error) {
	u, err := parse("tipo de documento", s)
	return DocumentTypeID(u), err
}

func (id DocumentTypeID) String() string  { return uuid.UUID(id).String() }
func (id DocumentTypeID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DocumentTypeID) UUID() uuid.UUID { return uuid.UUID(id) }

// OwnerID identifica um dono de documentos.
type OwnerID uuid.UUID

func NewOwnerID() OwnerID { return OwnerID(uuid.New()) }

func ParseOwnerID(s string) (OwnerID, error) {
	u, err := parse("dono", s)
	return OwnerID(u), err
}

func (id OwnerID) String() string  { return uuid.UUID(id).String() }
func (id OwnerID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id OwnerID) UUID() uuid.UUID { return uuid.UUID(id) }

// DocumentID identifica um documento.
type DocumentID uuid.UUID

func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parse("documento", s)
	return DocumentID(u), err
}

func (id DocumentID) String() string  { return uuid.UUID(id).String() }
func (id DocumentID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) UUID() uuid.UUID { return uuid.UUID(id) }

// TypeLinkID identifica um vínculo tipo de dono × tipo de documento.
type TypeLinkID uuid.UUID

func NewTypeLinkID() TypeLinkID { return TypeLinkID(uuid.New()) }

func ParseTypeLinkID(s string) (TypeLinkID, error) {
	u, err := parse("vínculo de tipos", s)
	return TypeLinkID(u), err
}

func (id TypeLinkID) String() string  { return uuid.UUID(id).String() }
func (id TypeLinkID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id TypeLinkID) UUID() uuid.UUID { return uuid.UUID(id) }

// OwnershipLinkID identifica um vínculo documento × dono.
type OwnershipLinkID uuid.UUID

func NewOwnershipLinkID() OwnershipLinkID { return OwnershipLinkID(uuid.New()) }

func ParseOwnershipLinkID(s string) (OwnershipLinkID, error) {
	u, err := parse("vínculo de posse", s)
	return OwnershipLinkID(u), err
}

func (id OwnershipLinkID) String() string  { return uuid.UUID(id).String() }
func (id OwnershipLinkID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id OwnershipLinkID) UUID() uuid.UUID { return uuid.UUID(id) }

// AuditEntryID identifica um registro de auditoria.
type AuditEntryID uuid.UUID

func NewAuditEntryID() AuditEntryID { return AuditEntryID(uuid.New()) }

func ParseAuditEntryID(s string) (AuditEntryID, error) {
	u, err := parse("registro de auditoria", s)
	return AuditEntryID(u), err
}

func (id AuditEntryID) String() string  { return uuid.UUID(id).String() }
func (id AuditEntryID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AuditEntryID) UUID() uuid.UUID { return uuid.UUID(id) }
