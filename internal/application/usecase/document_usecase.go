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

// DocumentUseCase serviço de aplicação para documentos.
type DocumentUseCase struct {
	uow       repository.UnitOfWork
	documents repository.DocumentRepository
}

// NewDocumentUseCase constrói o serviço com a unidade de trabalho e o
// repositório de leitura.
func NewDocumentUseCase(uow repository.UnitOfWork, documents repository.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{uow: uow, documents: documents}
}

// Register registra um documento cujo conteúdo já está no blob store. O
// tipo de documento deve existir na organização; a chave de armazenamento é
// única por organização.
func (uc *DocumentUseCase) Register(ctx context.Context, in dto.RegisterDocumentRequest) (*dto.DocumentResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	documentTypeID, err := identifier.ParseDocumentTypeID(in.DocumentTypeID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.DocumentResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		dt, err := r.DocumentTypes.GetByID(ctx, tenantID, documentTypeID)
		if err != nil {
			return err
		}
		if dt == nil {
			return domain.ErrNotFound
		}
		if exists, err := r.Documents.ExistsByStorageKey(ctx, tenantID, in.StorageKey); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateStorageKey
		}
		now := time.Now().UTC()
		doc, err := entity.NewDocument(tenantID, in.FileName, in.StorageKey, in.SizeBytes, in.FileKind, documentTypeID, actorID, now)
		if err != nil {
			return err
		}
		if err := r.Documents.Create(ctx, tenantID, doc); err != nil {
			return err
		}
		after, err := encodeSnapshot(doc.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindDocument, doc.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toDocumentResponse(doc)
		return nil
	})
	return out, err
}

// ChangeStatus alterna o documento entre Active e Inactive.
func (uc *DocumentUseCase) ChangeStatus(ctx context.Context, in dto.ChangeDocumentStatusRequest) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.DocumentID, in.Actor, func(d *entity.Document, by identifier.UserID, now time.Time) error {
		return d.ChangeStatus(entity.DocumentStatus(in.Status), by, now)
	})
}

// SetVersion define a versão do conteúdo do documento.
func (uc *DocumentUseCase) SetVersion(ctx context.Context, in dto.SetDocumentVersionRequest) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.DocumentID, in.Actor, func(d *entity.Document, by identifier.UserID, now time.Time) error {
		return d.SetVersion(in.Version, by, now)
	})
}

// RecordDownload registra o download do conteúdo na trilha de auditoria.
// Não muta o documento.
func (uc *DocumentUseCase) RecordDownload(ctx context.Context, in dto.DownloadDocumentRequest) error {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return err
	}
	documentID, err := identifier.ParseDocumentID(in.DocumentID)
	if err != nil {
		return err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		doc, err := r.Documents.GetByID(ctx, tenantID, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		e, err := entity.NewDownloadEntry(tenantID, actorID, doc.ID, in.Actor.ClientIP, in.Actor.UserAgent, time.Now().UTC())
		if err != nil {
			return err
		}
		return r.Audit.Append(ctx, e)
	})
}

func (uc *DocumentUseCase) mutate(ctx context.Context, tenantID, documentID string, actor dto.Actor, fn func(*entity.Document, identifier.UserID, time.Time) error) (*dto.DocumentResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	did, err := identifier.ParseDocumentID(documentID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(actor)
	if err != nil {
		return nil, err
	}
	var out *dto.DocumentResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		doc, err := r.Documents.GetByID(ctx, tid, did)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(doc.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := fn(doc, actorID, now); err != nil {
			return err
		}
		if err := r.Documents.Update(ctx, doc); err != nil {
			return err
		}
		after, err := encodeSnapshot(doc.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tid, actorID, actor, entity.KindDocument, doc.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toDocumentResponse(doc)
		return nil
	})
	return out, err
}

// GetByID obtém um documento com seus vínculos.
func (uc *DocumentUseCase) GetByID(ctx context.Context, tenantID, documentID string) (*dto.DocumentResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	did, err := identifier.ParseDocumentID(documentID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.documents.GetByID(ctx, tid, did)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// ListByTenant lista documentos da organização com paginação.
func (uc *DocumentUseCase) ListByTenant(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	page = page.Normalized()
	list, err := uc.documents.ListByTenant(ctx, tid, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	ids := make([]string, 0, len(d.Links()))
	for _, l := range d.Links() {
		ids = append(ids, l.OwnerID.String())
	}
	return &dto.DocumentResponse{
		ID:             d.ID.String(),
		TenantID:       d.TenantID.String(),
		FileName:       d.FileName,
		StorageKey:     d.StorageKey,
		UploadedAt:     d.UploadedAt,
		SizeBytes:      d.SizeBytes,
		FileKind:       d.FileKind,
		Version:        d.Version,
		Status:         string(d.Status),
		DocumentTypeID: d.DocumentTypeID.String(),
		OwnerIDs:       ids,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
