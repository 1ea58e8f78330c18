package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dublês de persistência em memória. Seguem o contrato dos adaptadores reais:
// não encontrado devolve (nil, nil); Get devolve cópia hidratada com os
// vínculos das tabelas de junção; Update confere row_version; escopo de
// organização em toda consulta. A unidade de trabalho não é transacional —
// os cenários cobrem caminhos de sucesso e falhas anteriores à escrita.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	tenants        map[identifier.TenantID]*entity.Tenant
	users          map[identifier.UserID]*entity.User
	ownerTypes     map[identifier.OwnerTypeID]*entity.OwnerType
	documentTypes  map[identifier.DocumentTypeID]*entity.DocumentType
	owners         map[identifier.OwnerID]*entity.Owner
	documents      map[identifier.DocumentID]*entity.Document
	typeLinks      []entity.TypeLink
	ownershipLinks []entity.OwnershipLink
	audit          []*entity.AuditEntry
}

func newMemStore() *memStore {
	return &memStore{
		tenants:       map[identifier.TenantID]*entity.Tenant{},
		users:         map[identifier.UserID]*entity.User{},
		ownerTypes:    map[identifier.OwnerTypeID]*entity.OwnerType{},
		documentTypes: map[identifier.DocumentTypeID]*entity.DocumentType{},
		owners:        map[identifier.OwnerID]*entity.Owner{},
		documents:     map[identifier.DocumentID]*entity.Document{},
	}
}

func (s *memStore) repos() repository.Repos {
	return repository.Repos{
		Tenants:       &memTenantRepo{s: s},
		Users:         &memUserRepo{s: s},
		OwnerTypes:    &memOwnerTypeRepo{s: s},
		DocumentTypes: &memDocumentTypeRepo{s: s},
		Owners:        &memOwnerRepo{s: s},
		Documents:     &memDocumentRepo{s: s},
		Audit:         &memAuditRepo{s: s},
	}
}

// memUnitOfWork entrega os repositórios da mesma loja; sem transação real.
type memUnitOfWork struct {
	s *memStore
}

func (u *memUnitOfWork) Run(_ context.Context, fn func(r repository.Repos) error) error {
	return fn(u.s.repos())
}

// As cópias armazenam apenas campos escalares, como as colunas de um UPDATE;
// os vínculos são reconstituídos na leitura a partir das tabelas de junção.

func cloneTenant(t *entity.Tenant) *entity.Tenant {
	cp := *t
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func cloneOwnerType(ot *entity.OwnerType) *entity.OwnerType {
	return &entity.OwnerType{ID: ot.ID, TenantScoped: ot.TenantScoped, Name: ot.Name}
}

func cloneDocumentType(dt *entity.DocumentType) *entity.DocumentType {
	return &entity.DocumentType{
		ID:                      dt.ID,
		TenantScoped:            dt.TenantScoped,
		Name:                    dt.Name,
		AllowsMultipleDocuments: dt.AllowsMultipleDocuments,
	}
}

func cloneOwner(o *entity.Owner) *entity.Owner {
	return &entity.Owner{
		ID:           o.ID,
		TenantScoped: o.TenantScoped,
		FriendlyName: o.FriendlyName,
		OwnerTypeID:  o.OwnerTypeID,
	}
}

func cloneDocument(d *entity.Document) *entity.Document {
	return &entity.Document{
		ID:             d.ID,
		TenantScoped:   d.TenantScoped,
		FileName:       d.FileName,
		StorageKey:     d.StorageKey,
		UploadedAt:     d.UploadedAt,
		SizeBytes:      d.SizeBytes,
		FileKind:       d.FileKind,
		Version:        d.Version,
		Status:         d.Status,
		DocumentTypeID: d.DocumentTypeID,
	}
}

func guardVersion(stored, in int64) error {
	if stored != in {
		return domain.ErrConcurrency
	}
	return nil
}

// ── Tenants ──

type memTenantRepo struct{ s *memStore }

func (r *memTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	for _, other := range r.s.tenants {
		if other.Slug == t.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	r.s.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (r *memTenantRepo) GetByID(_ context.Context, id identifier.TenantID) (*entity.Tenant, error) {
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	return cloneTenant(t), nil
}

func (r *memTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.s.tenants {
		if t.Slug == slug {
			return cloneTenant(t), nil
		}
	}
	return nil, nil
}

func (r *memTenantRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, t := range r.s.tenants {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	stored, ok := r.s.tenants[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, t.RowVersion); err != nil {
		return err
	}
	t.RowVersion++
	r.s.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (r *memTenantRepo) List(_ context.Context, limit, offset int) ([]*entity.Tenant, error) {
	var all []*entity.Tenant
	for _, t := range r.s.tenants {
		all = append(all, cloneTenant(t))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return paginate(all, limit, offset), nil
}

// ── Users ──

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, tenantID identifier.TenantID, u *entity.User) error {
	u.StampTenant(tenantID)
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, tenantID identifier.TenantID, id identifier.UserID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok || u.TenantID != tenantID {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, tenantID identifier.TenantID, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.TenantID == tenantID && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByLogin(_ context.Context, tenantID identifier.TenantID, login string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.TenantID == tenantID && u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, tenantID identifier.TenantID, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, tenantID, email)
	return u != nil, err
}

func (r *memUserRepo) ExistsByLogin(ctx context.Context, tenantID identifier.TenantID, login string) (bool, error) {
	u, err := r.GetByLogin(ctx, tenantID, login)
	return u != nil, err
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	stored, ok := r.s.users[u.ID]
	if !ok || stored.TenantID != u.TenantID {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, u.RowVersion); err != nil {
		return err
	}
	u.RowVersion++
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) ListByTenant(_ context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.User, error) {
	var all []*entity.User
	for _, u := range r.s.users {
		if u.TenantID == tenantID {
			all = append(all, cloneUser(u))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Login < all[j].Login })
	return paginate(all, limit, offset), nil
}

func (r *memUserRepo) Delete(_ context.Context, tenantID identifier.TenantID, id identifier.UserID) error {
	u, ok := r.s.users[id]
	if !ok || u.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ── Tipos de dono ──

type memOwnerTypeRepo struct{ s *memStore }

func (r *memOwnerTypeRepo) Create(_ context.Context, tenantID identifier.TenantID, ot *entity.OwnerType) error {
	ot.StampTenant(tenantID)
	r.s.ownerTypes[ot.ID] = cloneOwnerType(ot)
	return nil
}

func (r *memOwnerTypeRepo) GetByID(_ context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) (*entity.OwnerType, error) {
	ot, ok := r.s.ownerTypes[id]
	if !ok || ot.TenantID != tenantID {
		return nil, nil
	}
	cp := cloneOwnerType(ot)
	for _, l := range r.s.typeLinks {
		if l.TenantID == tenantID && l.OwnerTypeID == id {
			cp.AttachLink(l)
		}
	}
	return cp, nil
}

func (r *memOwnerTypeRepo) GetByName(_ context.Context, tenantID identifier.TenantID, name string) (*entity.OwnerType, error) {
	for _, ot := range r.s.ownerTypes {
		if ot.TenantID == tenantID && ot.Name == name {
			return cloneOwnerType(ot), nil
		}
	}
	return nil, nil
}

func (r *memOwnerTypeRepo) ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error) {
	ot, err := r.GetByName(ctx, tenantID, name)
	return ot != nil, err
}

func (r *memOwnerTypeRepo) Update(_ context.Context, ot *entity.OwnerType) error {
	stored, ok := r.s.ownerTypes[ot.ID]
	if !ok || stored.TenantID != ot.TenantID {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, ot.RowVersion); err != nil {
		return err
	}
	ot.RowVersion++
	r.s.ownerTypes[ot.ID] = cloneOwnerType(ot)
	return nil
}

func (r *memOwnerTypeRepo) ListByTenant(_ context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.OwnerType, error) {
	var all []*entity.OwnerType
	for _, ot := range r.s.ownerTypes {
		if ot.TenantID == tenantID {
			all = append(all, cloneOwnerType(ot))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *memOwnerTypeRepo) Delete(_ context.Context, tenantID identifier.TenantID, id identifier.OwnerTypeID) error {
	ot, ok := r.s.ownerTypes[id]
	if !ok || ot.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.ownerTypes, id)
	return nil
}

// ── Tipos de documento ──

type memDocumentTypeRepo struct{ s *memStore }

func (r *memDocumentTypeRepo) Create(_ context.Context, tenantID identifier.TenantID, dt *entity.DocumentType) error {
	dt.StampTenant(tenantID)
	r.s.documentTypes[dt.ID] = cloneDocumentType(dt)
	return nil
}

func (r *memDocumentTypeRepo) GetByID(_ context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) (*entity.DocumentType, error) {
	dt, ok := r.s.documentTypes[id]
	if !ok || dt.TenantID != tenantID {
		return nil, nil
	}
	cp := cloneDocumentType(dt)
	for _, l := range r.s.typeLinks {
		if l.TenantID == tenantID && l.DocumentTypeID == id {
			cp.AttachLink(l)
		}
	}
	return cp, nil
}

func (r *memDocumentTypeRepo) GetByName(_ context.Context, tenantID identifier.TenantID, name string) (*entity.DocumentType, error) {
	for _, dt := range r.s.documentTypes {
		if dt.TenantID == tenantID && dt.Name == name {
			return cloneDocumentType(dt), nil
		}
	}
	return nil, nil
}

func (r *memDocumentTypeRepo) ExistsByName(ctx context.Context, tenantID identifier.TenantID, name string) (bool, error) {
	dt, err := r.GetByName(ctx, tenantID, name)
	return dt != nil, err
}

func (r *memDocumentTypeRepo) Update(_ context.Context, dt *entity.DocumentType) error {
	stored, ok := r.s.documentTypes[dt.ID]
	if !ok || stored.TenantID != dt.TenantID {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, dt.RowVersion); err != nil {
		return err
	}
	dt.RowVersion++
	r.s.documentTypes[dt.ID] = cloneDocumentType(dt)
	return nil
}

func (r *memDocumentTypeRepo) ListByTenant(_ context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.DocumentType, error) {
	var all []*entity.DocumentType
	for _, dt := range r.s.documentTypes {
		if dt.TenantID == tenantID {
			all = append(all, cloneDocumentType(dt))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *memDocumentTypeRepo) AddLink(_ context.Context, l *entity.TypeLink) error {
	for _, other := range r.s.typeLinks {
		if other.TenantID == l.TenantID && other.OwnerTypeID == l.OwnerTypeID && other.DocumentTypeID == l.DocumentTypeID {
			return nil
		}
	}
	r.s.typeLinks = append(r.s.typeLinks, *l)
	return nil
}

func (r *memDocumentTypeRepo) RemoveLink(_ context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, documentTypeID identifier.DocumentTypeID) error {
	for i, l := range r.s.typeLinks {
		if l.TenantID == tenantID && l.OwnerTypeID == ownerTypeID && l.DocumentTypeID == documentTypeID {
			r.s.typeLinks = append(r.s.typeLinks[:i], r.s.typeLinks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memDocumentTypeRepo) Delete(_ context.Context, tenantID identifier.TenantID, id identifier.DocumentTypeID) error {
	dt, ok := r.s.documentTypes[id]
	if !ok || dt.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.documentTypes, id)
	return nil
}

// ── Donos ──

type memOwnerRepo struct{ s *memStore }

func (r *memOwnerRepo) Create(_ context.Context, tenantID identifier.TenantID, o *entity.Owner) error {
	o.StampTenant(tenantID)
	r.s.owners[o.ID] = cloneOwner(o)
	return nil
}

func (r *memOwnerRepo) GetByID(_ context.Context, tenantID identifier.TenantID, id identifier.OwnerID) (*entity.Owner, error) {
	o, ok := r.s.owners[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := cloneOwner(o)
	for _, l := range r.s.ownershipLinks {
		if l.TenantID == tenantID && l.OwnerID == id {
			cp.AttachLink(l)
		}
	}
	return cp, nil
}

func (r *memOwnerRepo) Update(_ context.Context, o *entity.Owner) error {
	stored, ok := r.s.owners[o.ID]
	if !ok || stored.TenantID != o.TenantID {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, o.RowVersion); err != nil {
		return err
	}
	o.RowVersion++
	r.s.owners[o.ID] = cloneOwner(o)
	return nil
}

func (r *memOwnerRepo) ListByTenant(_ context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Owner, error) {
	var all []*entity.Owner
	for _, o := range r.s.owners {
		if o.TenantID == tenantID {
			all = append(all, cloneOwner(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FriendlyName < all[j].FriendlyName })
	return paginate(all, limit, offset), nil
}

func (r *memOwnerRepo) ListByOwnerType(_ context.Context, tenantID identifier.TenantID, ownerTypeID identifier.OwnerTypeID, limit, offset int) ([]*entity.Owner, error) {
	var all []*entity.Owner
	for _, o := range r.s.owners {
		if o.TenantID == tenantID && o.OwnerTypeID == ownerTypeID {
			all = append(all, cloneOwner(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FriendlyName < all[j].FriendlyName })
	return paginate(all, limit, offset), nil
}

func (r *memOwnerRepo) AddLink(_ context.Context, l *entity.OwnershipLink) error {
	for _, other := range r.s.ownershipLinks {
		if other.TenantID == l.TenantID && other.DocumentID == l.DocumentID && other.OwnerID == l.OwnerID {
			return nil
		}
	}
	r.s.ownershipLinks = append(r.s.ownershipLinks, *l)
	return nil
}

func (r *memOwnerRepo) RemoveLink(_ context.Context, tenantID identifier.TenantID, documentID identifier.DocumentID, ownerID identifier.OwnerID) error {
	for i, l := range r.s.ownershipLinks {
		if l.TenantID == tenantID && l.DocumentID == documentID && l.OwnerID == ownerID {
			r.s.ownershipLinks = append(r.s.ownershipLinks[:i], r.s.ownershipLinks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memOwnerRepo) Delete(_ context.Context, tenantID identifier.TenantID, id identifier.OwnerID) error {
	o, ok := r.s.owners[id]
	if !ok || o.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.owners, id)
	return nil
}

// ── Documentos ──

type memDocumentRepo struct{ s *memStore }

func (r *memDocumentRepo) Create(_ context.Context, tenantID identifier.TenantID, d *entity.Document) error {
	d.StampTenant(tenantID)
	for _, other := range r.s.documents {
		if other.TenantID == tenantID && other.StorageKey == d.StorageKey {
			return domain.ErrDuplicateStorageKey
		}
	}
	r.s.documents[d.ID] = cloneDocument(d)
	return nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, tenantID identifier.TenantID, id identifier.DocumentID) (*entity.Document, error) {
	d, ok := r.s.documents[id]
	if !ok || d.TenantID != tenantID {
		return nil, nil
	}
	cp := cloneDocument(d)
	for _, l := range r.s.ownershipLinks {
		if l.TenantID == tenantID && l.DocumentID == id {
			cp.AttachLink(l)
		}
	}
	return cp, nil
}

func (r *memDocumentRepo) GetByStorageKey(_ context.Context, tenantID identifier.TenantID, storageKey string) (*entity.Document, error) {
	for _, d := range r.s.documents {
		if d.TenantID == tenantID && d.StorageKey == storageKey {
			return cloneDocument(d), nil
		}
	}
	return nil, nil
}

func (r *memDocumentRepo) ExistsByStorageKey(ctx context.Context, tenantID identifier.TenantID, storageKey string) (bool, error) {
	d, err := r.GetByStorageKey(ctx, tenantID, storageKey)
	return d != nil, err
}

func (r *memDocumentRepo) Update(_ context.Context, d *entity.Document) error {
	stored, ok := r.s.documents[d.ID]
	if !ok || stored.TenantID != d.TenantID {
		return domain.ErrNotFound
	}
	if err := guardVersion(stored.RowVersion, d.RowVersion); err != nil {
		return err
	}
	d.RowVersion++
	r.s.documents[d.ID] = cloneDocument(d)
	return nil
}

func (r *memDocumentRepo) ListByTenant(_ context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.Document, error) {
	var all []*entity.Document
	for _, d := range r.s.documents {
		if d.TenantID == tenantID {
			all = append(all, cloneDocument(d))
		}
	}
	sortDocuments(all)
	return paginate(all, limit, offset), nil
}

func (r *memDocumentRepo) ListByDocumentType(_ context.Context, tenantID identifier.TenantID, documentTypeID identifier.DocumentTypeID, limit, offset int) ([]*entity.Document, error) {
	var all []*entity.Document
	for _, d := range r.s.documents {
		if d.TenantID == tenantID && d.DocumentTypeID == documentTypeID {
			all = append(all, cloneDocument(d))
		}
	}
	sortDocuments(all)
	return paginate(all, limit, offset), nil
}

func (r *memDocumentRepo) ListByOwner(ctx context.Context, tenantID identifier.TenantID, ownerID identifier.OwnerID) ([]*entity.Document, error) {
	var docs []*entity.Document
	for _, l := range r.s.ownershipLinks {
		if l.TenantID != tenantID || l.OwnerID != ownerID {
			continue
		}
		d, err := r.GetByID(ctx, tenantID, l.DocumentID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			docs = append(docs, d)
		}
	}
	sortDocuments(docs)
	return docs, nil
}

func (r *memDocumentRepo) Delete(_ context.Context, tenantID identifier.TenantID, id identifier.DocumentID) error {
	d, ok := r.s.documents[id]
	if !ok || d.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.documents, id)
	return nil
}

// ── Trilha de auditoria ──

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	r.s.audit = append(r.s.audit, e)
	return nil
}

func (r *memAuditRepo) ListByUser(_ context.Context, tenantID identifier.TenantID, userID identifier.UserID, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(tenantID, limit, offset, func(e *entity.AuditEntry) bool {
		return e.UserID == userID
	}), nil
}

func (r *memAuditRepo) ListByEntity(_ context.Context, tenantID identifier.TenantID, entityKind, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(tenantID, limit, offset, func(e *entity.AuditEntry) bool {
		return e.EntityKind == entityKind && e.EntityID == entityID
	}), nil
}

func (r *memAuditRepo) ListByOperation(_ context.Context, tenantID identifier.TenantID, op entity.AuditOperation, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(tenantID, limit, offset, func(e *entity.AuditEntry) bool {
		return e.Operation == op
	}), nil
}

func (r *memAuditRepo) ListByPeriod(_ context.Context, tenantID identifier.TenantID, from, to time.Time, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(tenantID, limit, offset, func(e *entity.AuditEntry) bool {
		return !e.OccurredAt.Before(from) && e.OccurredAt.Before(to)
	}), nil
}

func (r *memAuditRepo) filter(tenantID identifier.TenantID, limit, offset int, keep func(*entity.AuditEntry) bool) []*entity.AuditEntry {
	var all []*entity.AuditEntry
	for _, e := range r.s.audit {
		if e.TenantID == tenantID && keep(e) {
			all = append(all, e)
		}
	}
	return paginate(all, limit, offset)
}

func sortDocuments(docs []*entity.Document) {
	sort.Slice(docs, func(i, j int) bool {
		return strings.Compare(docs[i].StorageKey, docs[j].StorageKey) < 0
	})
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
