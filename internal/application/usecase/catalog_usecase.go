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

// CatalogUseCase serviço de aplicação para as taxonomias da organização:
// tipos de dono, tipos de documento e o grafo de compatibilidade entre eles.
type CatalogUseCase struct {
	uow           repository.UnitOfWork
	ownerTypes    repository.OwnerTypeRepository
	documentTypes repository.DocumentTypeRepository
}

// NewCatalogUseCase constrói o serviço com a unidade de trabalho e os
// repositórios de leitura.
func NewCatalogUseCase(uow repository.UnitOfWork, ownerTypes repository.OwnerTypeRepository, documentTypes repository.DocumentTypeRepository) *CatalogUseCase {
	return &CatalogUseCase{uow: uow, ownerTypes: ownerTypes, documentTypes: documentTypes}
}

// CreateOwnerType cria um tipo de dono. Nome único por organização.
func (uc *CatalogUseCase) CreateOwnerType(ctx context.Context, in dto.CreateOwnerTypeRequest) (*dto.OwnerTypeResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.OwnerTypeResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		if exists, err := r.OwnerTypes.ExistsByName(ctx, tenantID, in.Name); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateName
		}
		now := time.Now().UTC()
		ot, err := entity.NewOwnerType(tenantID, in.Name, actorID, now)
		if err != nil {
			return err
		}
		if err := r.OwnerTypes.Create(ctx, tenantID, ot); err != nil {
			return err
		}
		after, err := encodeSnapshot(ot.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwnerType, ot.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toOwnerTypeResponse(ot)
		return nil
	})
	return out, err
}

// CreateDocumentType cria um tipo de documento. Nome único por organização.
func (uc *CatalogUseCase) CreateDocumentType(ctx context.Context, in dto.CreateDocumentTypeRequest) (*dto.DocumentTypeResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.DocumentTypeResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		if exists, err := r.DocumentTypes.ExistsByName(ctx, tenantID, in.Name); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateName
		}
		now := time.Now().UTC()
		dt, err := entity.NewDocumentType(tenantID, in.Name, in.AllowsMultipleDocuments, actorID, now)
		if err != nil {
			return err
		}
		if err := r.DocumentTypes.Create(ctx, tenantID, dt); err != nil {
			return err
		}
		after, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindDocumentType, dt.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toDocumentTypeResponse(dt)
		return nil
	})
	return out, err
}

// LinkTypes estabelece a compatibilidade tipo de dono → tipo de documento.
// Idempotente: vínculo já existente não gera erro nem auditoria.
func (uc *CatalogUseCase) LinkTypes(ctx context.Context, in dto.TypeLinkRequest) error {
	tenantID, ownerTypeID, documentTypeID, actorID, err := uc.parseLinkRequest(in)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		ot, err := r.OwnerTypes.GetByID(ctx, tenantID, ownerTypeID)
		if err != nil {
			return err
		}
		if ot == nil {
			return domain.ErrNotFound
		}
		dt, err := r.DocumentTypes.GetByID(ctx, tenantID, documentTypeID)
		if err != nil {
			return err
		}
		if dt == nil {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		link, err := dt.LinkOwnerType(ot, actorID, now)
		if err != nil {
			return err
		}
		if link == nil {
			return nil // já vinculado
		}
		if err := r.DocumentTypes.AddLink(ctx, link); err != nil {
			return err
		}
		after, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		return appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindTypeLink, link.ID.String(), entity.OperationCreate, "", after, now)
	})
}

// UnlinkTypes remove a compatibilidade se presente; sem efeito caso
// contrário.
func (uc *CatalogUseCase) UnlinkTypes(ctx context.Context, in dto.TypeLinkRequest) error {
	tenantID, ownerTypeID, documentTypeID, actorID, err := uc.parseLinkRequest(in)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		dt, err := r.DocumentTypes.GetByID(ctx, tenantID, documentTypeID)
		if err != nil {
			return err
		}
		if dt == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		if !dt.UnlinkOwnerType(ownerTypeID) {
			return nil
		}
		if err := r.DocumentTypes.RemoveLink(ctx, tenantID, ownerTypeID, documentTypeID); err != nil {
			return err
		}
		now := time.Now().UTC()
		after, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		return appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindTypeLink, dt.ID.String(), entity.OperationDelete, before, after, now)
	})
}

// ChangeAllowsMultiple alterna a política de documento único do tipo. Não
// desativa documentos existentes.
func (uc *CatalogUseCase) ChangeAllowsMultiple(ctx context.Context, in dto.ChangeAllowsMultipleRequest) (*dto.DocumentTypeResponse, error) {
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
	var out *dto.DocumentTypeResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		dt, err := r.DocumentTypes.GetByID(ctx, tenantID, documentTypeID)
		if err != nil {
			return err
		}
		if dt == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		dt.ChangeAllowsMultiple(in.AllowsMultipleDocuments, actorID, now)
		if err := r.DocumentTypes.Update(ctx, dt); err != nil {
			return err
		}
		after, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindDocumentType, dt.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toDocumentTypeResponse(dt)
		return nil
	})
	return out, err
}

// RenameOwnerType renomeia um tipo de dono.
func (uc *CatalogUseCase) RenameOwnerType(ctx context.Context, in dto.RenameCatalogEntryRequest) (*dto.OwnerTypeResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	id, err := identifier.ParseOwnerTypeID(in.ID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.OwnerTypeResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		ot, err := r.OwnerTypes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if ot == nil {
			return domain.ErrNotFound
		}
		if exists, err := r.OwnerTypes.ExistsByName(ctx, tenantID, in.Name); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateName
		}
		before, err := encodeSnapshot(ot.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := ot.Rename(in.Name, actorID, now); err != nil {
			return err
		}
		if err := r.OwnerTypes.Update(ctx, ot); err != nil {
			return err
		}
		after, err := encodeSnapshot(ot.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindOwnerType, ot.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toOwnerTypeResponse(ot)
		return nil
	})
	return out, err
}

// RenameDocumentType renomeia um tipo de documento.
func (uc *CatalogUseCase) RenameDocumentType(ctx context.Context, in dto.RenameCatalogEntryRequest) (*dto.DocumentTypeResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	id, err := identifier.ParseDocumentTypeID(in.ID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	var out *dto.DocumentTypeResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		dt, err := r.DocumentTypes.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if dt == nil {
			return domain.ErrNotFound
		}
		if exists, err := r.DocumentTypes.ExistsByName(ctx, tenantID, in.Name); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateName
		}
		before, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := dt.Rename(in.Name, actorID, now); err != nil {
			return err
		}
		if err := r.DocumentTypes.Update(ctx, dt); err != nil {
			return err
		}
		after, err := encodeSnapshot(dt.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindDocumentType, dt.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toDocumentTypeResponse(dt)
		return nil
	})
	return out, err
}

// GetOwnerType obtém um tipo de dono com seus vínculos.
func (uc *CatalogUseCase) GetOwnerType(ctx context.Context, tenantID, id string) (*dto.OwnerTypeResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	otid, err := identifier.ParseOwnerTypeID(id)
	if err != nil {
		return nil, err
	}
	ot, err := uc.ownerTypes.GetByID(ctx, tid, otid)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, domain.ErrNotFound
	}
	return toOwnerTypeResponse(ot), nil
}

// GetDocumentType obtém um tipo de documento com seus vínculos.
func (uc *CatalogUseCase) GetDocumentType(ctx context.Context, tenantID, id string) (*dto.DocumentTypeResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	dtid, err := identifier.ParseDocumentTypeID(id)
	if err != nil {
		return nil, err
	}
	dt, err := uc.documentTypes.GetByID(ctx, tid, dtid)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentTypeResponse(dt), nil
}

func (uc *CatalogUseCase) parseLinkRequest(in dto.TypeLinkRequest) (identifier.TenantID, identifier.OwnerTypeID, identifier.DocumentTypeID, identifier.UserID, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return tenantID, identifier.OwnerTypeID{}, identifier.DocumentTypeID{}, identifier.UserID{}, err
	}
	ownerTypeID, err := identifier.ParseOwnerTypeID(in.OwnerTypeID)
	if err != nil {
		return tenantID, ownerTypeID, identifier.DocumentTypeID{}, identifier.UserID{}, err
	}
	documentTypeID, err := identifier.ParseDocumentTypeID(in.DocumentTypeID)
	if err != nil {
		return tenantID, ownerTypeID, documentTypeID, identifier.UserID{}, err
	}
	actorID, err := parseActor(in.Actor)
	return tenantID, ownerTypeID, documentTypeID, actorID, err
}

func toOwnerTypeResponse(ot *entity.OwnerType) *dto.OwnerTypeResponse {
	if ot == nil {
		return nil
	}
	ids := make([]string, 0, len(ot.Links()))
	for _, l := range ot.Links() {
		ids = append(ids, l.DocumentTypeID.String())
	}
	return &dto.OwnerTypeResponse{
		ID:              ot.ID.String(),
		TenantID:        ot.TenantID.String(),
		Name:            ot.Name,
		DocumentTypeIDs: ids,
		CreatedAt:       ot.CreatedAt,
		UpdatedAt:       ot.UpdatedAt,
	}
}

func toDocumentTypeResponse(dt *entity.DocumentType) *dto.DocumentTypeResponse {
	if dt == nil {
		return nil
	}
	ids := make([]string, 0, len(dt.Links()))
	for _, l := range dt.Links() {
		ids = append(ids, l.OwnerTypeID.String())
	}
	return &dto.DocumentTypeResponse{
		ID:                      dt.ID.String(),
		TenantID:                dt.TenantID.String(),
		Name:                    dt.Name,
		AllowsMultipleDocuments: dt.AllowsMultipleDocuments,
		OwnerTypeIDs:            ids,
		CreatedAt:               dt.CreatedAt,
		UpdatedAt:               dt.UpdatedAt,
	}
}
