package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// Status possíveis de um documento.
const (
	DocumentActive   DocumentStatus = "active"
	DocumentInactive DocumentStatus = "inactive"
)

// DocumentStatus estado de um documento. Active ⇄ Inactive, sem estado
// terminal neste núcleo (remoção física é responsabilidade do repositório).
type DocumentStatus string

func (s DocumentStatus) valid() bool { return s == DocumentActive || s == DocumentInactive }

const (
	maxFileName   = 255
	maxStorageKey = 500
	maxFileKind   = 50
)

// OwnershipLink é o registro de junção documento × dono, único por
// (organização, documento, dono). Um único registro é compartilhado pelas
// coleções em memória dos dois agregados.
type OwnershipLink struct {
	ID         identifier.OwnershipLinkID
	TenantID   identifier.TenantID
	DocumentID identifier.DocumentID
	OwnerID    identifier.OwnerID
	CreatedAt  time.Time
	CreatedBy  identifier.UserID
}

// Document registro operacional de um arquivo. O conteúdo em si vive num
// blob store opaco referenciado por StorageKey (única por organização).
type Document struct {
	ID identifier.DocumentID
	TenantScoped
	FileName       string
	StorageKey     string
	UploadedAt     time.Time
	SizeBytes      int64
	FileKind       string
	Version        int
	Status         DocumentStatus
	DocumentTypeID identifier.DocumentTypeID
	links          []OwnershipLink
}

// NewDocument cria um documento ativo, versão 1. FileKind é aparado e
// normalizado para minúsculas. A unicidade da chave de armazenamento é
// pré-checada pelo serviço de aplicação.
func NewDocument(tenantID identifier.TenantID, fileName, storageKey string, sizeBytes int64, fileKind string, documentTypeID identifier.DocumentTypeID, createdBy identifier.UserID, now time.Time) (*Document, error) {
	if err := requireID("organização", tenantID); err != nil {
		return nil, err
	}
	fileName, err := requireText("nome de arquivo", fileName, maxFileName)
	if err != nil {
		return nil, err
	}
	storageKey, err = requireText("chave de armazenamento", storageKey, maxStorageKey)
	if err != nil {
		return nil, err
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("%w: tamanho deve ser maior que zero", domain.ErrValidation)
	}
	fileKind, err = requireText("tipo de arquivo", fileKind, maxFileKind)
	if err != nil {
		return nil, err
	}
	fileKind = strings.ToLower(fileKind)
	if err := requireID("tipo de documento", documentTypeID); err != nil {
		return nil, err
	}
	if err := requireID("usuário criador", createdBy); err != nil {
		return nil, err
	}
	return &Document{
		ID: identifier.NewDocumentID(),
		TenantScoped: TenantScoped{
			TenantID:  tenantID,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		},
		FileName:       fileName,
		StorageKey:     storageKey,
		UploadedAt:     now,
		SizeBytes:      sizeBytes,
		FileKind:       fileKind,
		Version:        1,
		Status:         DocumentActive,
		DocumentTypeID: documentTypeID,
	}, nil
}

// LinkOwner vincula este documento a um dono. Exige mesma organização;
// idempotente. Não checa compatibilidade de tipos nem política de documento
// único: essas regras são centradas no dono e vivem em Owner.LinkDocument.
func (d *Document) LinkOwner(o *Owner, by identifier.UserID, now time.Time) (*OwnershipLink, error) {
	if o.TenantID != d.TenantID {
		return nil, domain.ErrCrossTenant
	}
	if d.linkedTo(o.ID) {
		return nil, nil
	}
	link := OwnershipLink{
		ID:         identifier.NewOwnershipLinkID(),
		TenantID:   d.TenantID,
		DocumentID: d.ID,
		OwnerID:    o.ID,
		CreatedAt:  now,
		CreatedBy:  by,
	}
	d.links = append(d.links, link)
	o.links = append(o.links, link)
	return &link, nil
}

// UnlinkOwner remove o vínculo deste lado se presente; sem efeito caso
// contrário. O lado do dono deve ser mantido consistente pelo caller.
func (d *Document) UnlinkOwner(id identifier.OwnerID) bool {
	for i, l := range d.links {
		if l.OwnerID == id {
			d.links = append(d.links[:i], d.links[i+1:]...)
			return true
		}
	}
	return false
}

// ChangeStatus alterna Active ⇄ Inactive. Reativar não revalida a política
// de documento único dos donos vinculados; ela vale apenas no vínculo.
func (d *Document) ChangeStatus(status DocumentStatus, by identifier.UserID, now time.Time) error {
	if !status.valid() {
		return fmt.Errorf("%w: status de documento desconhecido: %q", domain.ErrValidation, status)
	}
	d.Status = status
	d.Touch(by, now)
	return nil
}

// SetVersion define a versão do conteúdo (mínimo 1).
func (d *Document) SetVersion(n int, by identifier.UserID, now time.Time) error {
	if n <= 0 {
		return fmt.Errorf("%w: versão deve ser maior que zero", domain.ErrValidation)
	}
	d.Version = n
	d.Touch(by, now)
	return nil
}

// IsActive indica se o documento está ativo.
func (d *Document) IsActive() bool { return d.Status == DocumentActive }

// Links devolve os vínculos de posse carregados.
func (d *Document) Links() []OwnershipLink { return d.links }

// AttachLink hidrata um vínculo carregado pela persistência.
func (d *Document) AttachLink(l OwnershipLink) { d.links = append(d.links, l) }

func (d *Document) linkedTo(id identifier.OwnerID) bool {
	for _, l := range d.links {
		if l.OwnerID == id {
			return true
		}
	}
	return false
}
