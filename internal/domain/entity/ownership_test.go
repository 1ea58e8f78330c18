package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vínculo de posse documento × dono: compatibilidade de tipos, política de
// documento ativo único e idempotência. O resolver faz o papel da arena de
// documentos carregada pela persistência.
// ──────────────────────────────────────────────────────────────────────────────

type ownershipFixture struct {
	tenantID identifier.TenantID
	ot       *entity.OwnerType
	dt       *entity.DocumentType
	owner    *entity.Owner
	arena    map[identifier.DocumentID]*entity.Document
}

func newOwnershipFixture(t *testing.T, allowsMultiple bool) *ownershipFixture {
	t.Helper()
	tenantID := identifier.NewTenantID()
	ot, err := entity.NewOwnerType(tenantID, "Funcionário", testActor, testNow)
	require.NoError(t, err)
	dt, err := entity.NewDocumentType(tenantID, "Contrato", allowsMultiple, testActor, testNow)
	require.NoError(t, err)
	owner, err := entity.NewOwner(tenantID, "João da Silva", ot.ID, testActor, testNow)
	require.NoError(t, err)
	return &ownershipFixture{
		tenantID: tenantID,
		ot:       ot,
		dt:       dt,
		owner:    owner,
		arena:    map[identifier.DocumentID]*entity.Document{},
	}
}

func (f *ownershipFixture) newDocument(t *testing.T, storageKey string) *entity.Document {
	t.Helper()
	d, err := entity.NewDocument(f.tenantID, "contrato.pdf", storageKey, 2048, "PDF", f.dt.ID, testActor, testNow)
	require.NoError(t, err)
	f.arena[d.ID] = d
	return d
}

func (f *ownershipFixture) resolve(id identifier.DocumentID) (*entity.Document, bool) {
	d, ok := f.arena[id]
	return d, ok
}

func (f *ownershipFixture) linkTypes(t *testing.T) {
	t.Helper()
	_, err := f.dt.LinkOwnerType(f.ot, testActor, testNow)
	require.NoError(t, err)
}

func TestNewDocument_Defaults(t *testing.T) {
	f := newOwnershipFixture(t, false)
	d := f.newDocument(t, "tenants/x/contrato.pdf")

	assert.Equal(t, 1, d.Version)
	assert.Equal(t, entity.DocumentActive, d.Status)
	assert.Equal(t, "pdf", d.FileKind, "tipo de arquivo é normalizado para minúsculas")
	assert.Equal(t, testNow, d.UploadedAt)
}

func TestNewDocument_TamanhoInvalido(t *testing.T) {
	f := newOwnershipFixture(t, false)
	_, err := entity.NewDocument(f.tenantID, "a.pdf", "k", 0, "pdf", f.dt.ID, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLinkDocument_SemCompatibilidade(t *testing.T) {
	f := newOwnershipFixture(t, false)
	d := f.newDocument(t, "k1")

	// Tipos ainda não vinculados: o dono não pode receber esta categoria.
	_, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrIncompatibleType)
	assert.Empty(t, f.owner.Links())

	// Após vincular os tipos, o mesmo vínculo passa a ser aceito.
	f.linkTypes(t)
	link, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, d.ID, link.DocumentID)
	assert.Equal(t, f.owner.ID, link.OwnerID)
	assert.Len(t, f.owner.Links(), 1)
	assert.Len(t, d.Links(), 1, "o registro é anexado também ao lado do documento")
}

func TestLinkDocument_TipoNaoCorresponde(t *testing.T) {
	f := newOwnershipFixture(t, false)
	f.linkTypes(t)
	d := f.newDocument(t, "k1")

	outro, err := entity.NewDocumentType(f.tenantID, "Atestado", false, testActor, testNow)
	require.NoError(t, err)

	_, err = f.owner.LinkDocument(d, outro, f.resolve, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.owner.LinkDocument(d, nil, f.resolve, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLinkDocument_OrganizacoesDiferentes(t *testing.T) {
	f := newOwnershipFixture(t, false)
	f.linkTypes(t)

	g := newOwnershipFixture(t, false)
	g.linkTypes(t)
	alheio := g.newDocument(t, "k-alheio")

	_, err := f.owner.LinkDocument(alheio, g.dt, g.resolve, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrCrossTenant)
}

func TestLinkDocument_DocumentoAtivoUnico(t *testing.T) {
	f := newOwnershipFixture(t, false)
	f.linkTypes(t)

	d1 := f.newDocument(t, "k1")
	d2 := f.newDocument(t, "k2")

	_, err := f.owner.LinkDocument(d1, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)

	// Segundo documento ativo da mesma categoria viola a política.
	_, err = f.owner.LinkDocument(d2, f.dt, f.resolve, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveDocument)

	// Inativado o primeiro, o segundo passa.
	require.NoError(t, d1.ChangeStatus(entity.DocumentInactive, testActor, testNow))
	link, err := f.owner.LinkDocument(d2, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	assert.NotNil(t, link)
}

func TestLinkDocument_PoliticaMultiplaPermiteVarios(t *testing.T) {
	f := newOwnershipFixture(t, true)
	f.linkTypes(t)

	d1 := f.newDocument(t, "k1")
	d2 := f.newDocument(t, "k2")

	_, err := f.owner.LinkDocument(d1, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	_, err = f.owner.LinkDocument(d2, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	assert.Len(t, f.owner.Links(), 2)
}

func TestLinkDocument_Idempotente(t *testing.T) {
	f := newOwnershipFixture(t, false)
	f.linkTypes(t)
	d := f.newDocument(t, "k1")

	first, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Revincular o mesmo documento não conta como duplicata ativa.
	second, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Len(t, f.owner.Links(), 1)
	assert.Len(t, d.Links(), 1)
}

func TestUnlinkDocument_RemoveSoUmLado(t *testing.T) {
	f := newOwnershipFixture(t, false)
	f.linkTypes(t)
	d := f.newDocument(t, "k1")

	_, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
	require.NoError(t, err)

	assert.True(t, f.owner.UnlinkDocument(d.ID))
	assert.Empty(t, f.owner.Links())
	assert.Len(t, d.Links(), 1, "o lado do documento é responsabilidade do caller")
	assert.True(t, d.UnlinkOwner(f.owner.ID))
	assert.Empty(t, d.Links())

	assert.False(t, f.owner.UnlinkDocument(d.ID), "desvincular ausente é no-op")
}

func TestDocumentLinkOwner_NaoChecaCompatibilidade(t *testing.T) {
	// O lado do documento só garante mesma organização e idempotência;
	// as regras centradas no dono vivem em Owner.LinkDocument.
	f := newOwnershipFixture(t, false)
	d := f.newDocument(t, "k1")

	link, err := d.LinkOwner(f.owner, testActor, testNow)
	require.NoError(t, err)
	assert.NotNil(t, link)

	again, err := d.LinkOwner(f.owner, testActor, testNow)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestActiveDocuments_FiltraInativos(t *testing.T) {
	f := newOwnershipFixture(t, true)
	f.linkTypes(t)

	d1 := f.newDocument(t, "k1")
	d2 := f.newDocument(t, "k2")
	for _, d := range []*entity.Document{d1, d2} {
		_, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
		require.NoError(t, err)
	}
	require.NoError(t, d1.ChangeStatus(entity.DocumentInactive, testActor, testNow))

	var got []identifier.DocumentID
	for d := range f.owner.ActiveDocuments(f.resolve) {
		got = append(got, d.ID)
	}
	assert.Equal(t, []identifier.DocumentID{d2.ID}, got)
}

func TestDocumentsOfType_IncluiInativos(t *testing.T) {
	f := newOwnershipFixture(t, true)
	f.linkTypes(t)

	d1 := f.newDocument(t, "k1")
	d2 := f.newDocument(t, "k2")
	for _, d := range []*entity.Document{d1, d2} {
		_, err := f.owner.LinkDocument(d, f.dt, f.resolve, testActor, testNow)
		require.NoError(t, err)
	}
	require.NoError(t, d1.ChangeStatus(entity.DocumentInactive, testActor, testNow))

	var got int
	for range f.owner.DocumentsOfType(f.dt.ID, f.resolve) {
		got++
	}
	assert.Equal(t, 2, got, "a consulta por categoria não filtra status")

	outro := identifier.NewDocumentTypeID()
	for range f.owner.DocumentsOfType(outro, f.resolve) {
		t.Fatal("categoria sem documentos não deve produzir itens")
	}
}

func TestDocument_SetVersion(t *testing.T) {
	f := newOwnershipFixture(t, false)
	d := f.newDocument(t, "k1")

	require.NoError(t, d.SetVersion(3, testActor, testNow))
	assert.Equal(t, 3, d.Version)

	assert.ErrorIs(t, d.SetVersion(0, testActor, testNow), domain.ErrValidation)
	assert.ErrorIs(t, d.SetVersion(-1, testActor, testNow), domain.ErrValidation)
}

func TestOwner_Rename(t *testing.T) {
	f := newOwnershipFixture(t, false)

	require.NoError(t, f.owner.Rename("João de Souza", testActor, testNow))
	assert.Equal(t, "João de Souza", f.owner.FriendlyName)

	assert.ErrorIs(t, f.owner.Rename("", testActor, testNow), domain.ErrValidation)
}
