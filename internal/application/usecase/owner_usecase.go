package usecase

import (
	"context"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

// OwnerUseCase serviço de aplicação para donos e seus vínculos de posse.
// É aqui que o grafo carregado pelo repositório (dono + vínculos, documento,
// tipo do documento, documentos já vinculados) alimenta as regras do
// agregado Owner.
type OwnerUseCase struct {
	uow       repository.UnitOfWork
	owners    repository.OwnerRepository
	documents repository.DocumentRepository
}

// NewOwnerUseCase constrói o serviço com a unidade de trabalho e os
// repositórios de leitura.
func NewOwnerUseCase(uow repository.UnitOfWork, owners repository.OwnerRepository, documents repository.DocumentRepository) *OwnerUseCase {
	return &OwnerUseCase{uow: uow, owners: owners, documents: documents}
}

// Register cria um dono. O tipo de dono deve existir na organização.
func (uc *OwnerUseCase) Register(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.OwnerResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	ownerTypeID, err := identifier.ParseOwnerTypeID(in.OwnerTypeID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.OwnerResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		ot, err := r.OwnerTypes.GetByID(ctx, tenantID, ownerTypeID)
		if err != nil {
			return err
		}
		if ot == nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		owner, err := entity.NewOwner(tenantID, in.FriendlyName, ownerTypeID, actorID, now)
		if err != nil {
			return err
		}
		if err := r.Owners.Create(ctx, tenantID, owner); err != nil {
			return err
		}
		after, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwner, owner.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toOwnerResponse(owner)
		return nil
	})
	return out, err
}

// Rename troca o nome de exibição do dono.
func (uc *OwnerUseCase) Rename(ctx context.Context, in dto.RenameOwnerRequest) (*dto.OwnerResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	ownerID, err := identifier.ParseOwnerID(in.OwnerID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.OwnerResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		owner, err := r.Owners.GetByID(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := owner.Rename(in.FriendlyName, actorID, now); err != nil {
			return err
		}
		if err := r.Owners.Update(ctx, owner); err != nil {
			return err
		}
		after, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwner, owner.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toOwnerResponse(owner)
		return nil
	})
	return out, err
}

// LinkDocument vincula um documento ao dono. Carrega o dono com os vínculos,
// o documento, o tipo do documento (com o grafo de compatibilidade) e os
// documentos já vinculados, e delega as regras ao agregado. O vínculo e o
// registro de auditoria persistem na mesma transação. Vínculo já existente
// é no-op silencioso, sem auditoria.
func (uc *OwnerUseCase) LinkDocument(ctx context.Context, in dto.OwnershipRequest) error {
	tenantID, ownerID, documentID, actorID, err := uc.parseOwnershipRequest(in)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		owner, err := r.Owners.GetByID(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrNotFound
		}
		doc, err := r.Documents.GetByID(ctx, tenantID, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		docType, err := r.DocumentTypes.GetByID(ctx, tenantID, doc.DocumentTypeID)
		if err != nil {
			return err
		}
		if docType == nil {
			return domain.ErrNotFound
		}
		linked, err := r.Documents.ListByOwner(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		arena := make(map[identifier.DocumentID]*entity.Document, len(linked))
		for _, d := range linked {
			arena[d.ID] = d
		}
		resolve := func(id identifier.DocumentID) (*entity.Document, bool) {
			d, ok := arena[id]
			return d, ok
		}
		now := time.Now().UTC()
		link, err := owner.LinkDocument(doc, docType, resolve, actorID, now)
		if err != nil {
			return err
		}
		if link == nil {
			return nil // já vinculado
		}
		if err := r.Owners.AddLink(ctx, link); err != nil {
			return err
		}
		after, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		return appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwnershipLink, link.ID.String(), entity.OperationCreate, "", after, now)
	})
}

// UnlinkDocument remove o vínculo se presente; sem efeito caso contrário.
func (uc *OwnerUseCase) UnlinkDocument(ctx context.Context, in dto.OwnershipRequest) error {
	tenantID, ownerID, documentID, actorID, err := uc.parseOwnershipRequest(in)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		owner, err := r.Owners.GetByID(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		if !owner.UnlinkDocument(documentID) {
			return nil
		}
		if err := r.Owners.RemoveLink(ctx, tenantID, documentID, ownerID); err != nil {
			return err
		}
		now := time.Now().UTC()
		after, err := encodeSnapshot(owner.Snapshot())
		if err != nil {
			return err
		}
		return appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwnershipLink, owner.ID.String(), entity.OperationDelete, before, after, now)
	})
}

// ActiveDocuments devolve os documentos ativos vinculados ao dono.
func (uc *OwnerUseCase) ActiveDocuments(ctx context.Context, tenantID, ownerID string) (*dto.DocumentListResponse, error) {
	return uc.documentsWhere(ctx, tenantID, ownerID, func(owner *entity.Owner, resolve entity.DocumentResolver) []*entity.Document {
		var docs []*entity.Document
		for d := range owner.ActiveDocuments(resolve) {
			docs = append(docs, d)
		}
		return docs
	})
}

// DocumentsOfType devolve os documentos vinculados da categoria informada.
func (uc *OwnerUseCase) DocumentsOfType(ctx context.Context, tenantID, ownerID, documentTypeID string) (*dto.DocumentListResponse, error) {
	dtID, err := identifier.ParseDocumentTypeID(documentTypeID)
	if err != nil {
		return nil, err
	}
	return uc.documentsWhere(ctx, tenantID, ownerID, func(owner *entity.Owner, resolve entity.DocumentResolver) []*entity.Document {
		var docs []*entity.Document
		for d := range owner.DocumentsOfType(dtID, resolve) {
			docs = append(docs, d)
		}
		return docs
	})
}

func (uc *OwnerUseCase) documentsWhere(ctx context.Context, tenantID, ownerID string, collect func(*entity.Owner, entity.DocumentResolver) []*entity.Document) (*dto.DocumentListResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	oid, err := identifier.ParseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	owner, err := uc.owners.GetByID(ctx, tid, oid)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	linked, err := uc.documents.ListByOwner(ctx, tid, oid)
	if err != nil {
		return nil, err
	}
	arena := make(map[identifier.DocumentID]*entity.Document, len(linked))
	for _, d := range linked {
		arena[d.ID] = d
	}
	docs := collect(owner, func(id identifier.DocumentID) (*entity.Document, bool) {
		d, ok := arena[id]
		return d, ok
	})
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{Items: items}, nil
}

// GetByID obtém um dono com seus vínculos.
func (uc *OwnerUseCase) GetByID(ctx context.Context, tenantID, ownerID string) (*dto.OwnerResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	oid, err := identifier.ParseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	owner, err := uc.owners.GetByID(ctx, tid, oid)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	return toOwnerResponse(owner), nil
}

func (uc *OwnerUseCase) parseOwnershipRequest(in dto.OwnershipRequest) (identifier.TenantID, identifier.OwnerID, identifier.DocumentID, identifier.UserID, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return tenantID, identifier.OwnerID{}, identifier.DocumentID{}, identifier.UserID{}, err
	}
	ownerID, err := identifier.ParseOwnerID(in.OwnerID)
	if err != nil {
		return tenantID, ownerID, identifier.DocumentID{}, identifier.UserID{}, err
	}
	documentID, err := identifier.ParseDocumentID(in.DocumentID)
	if err != nil {
		return tenantID, ownerID, documentID, identifier.UserID{}, err
	}
	actorID, err := parseActor(in.Actor)
	return tenantID, ownerID, documentID, actorID, err
}

func toOwnerResponse(o *entity.Owner) *dto.OwnerResponse {
	if o == nil {
		return nil
	}
	ids := make([]string, 0, len(o.Links()))
	for _, l := range o.Links() {
		ids = append(ids, l.DocumentID.String())
	}
	return &dto.OwnerResponse{
		ID:           o.ID.String(),
		TenantID:     o.TenantID.String(),
		FriendlyName: o.FriendlyName,
		OwnerTypeID:  o.OwnerTypeID.String(),
		DocumentIDs:  ids,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
