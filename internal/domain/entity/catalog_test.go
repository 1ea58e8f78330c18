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
// Catálogo de tipos: vínculo de compatibilidade tipo de dono × tipo de
// documento. O mesmo registro de junção é compartilhado pelos dois lados, e
// os predicados dos dois lados devem sempre concordar.
// ──────────────────────────────────────────────────────────────────────────────

func newCatalogPair(t *testing.T, tenantID identifier.TenantID) (*entity.OwnerType, *entity.DocumentType) {
	t.Helper()
	ot, err := entity.NewOwnerType(tenantID, "Funcionário", testActor, testNow)
	require.NoError(t, err)
	dt, err := entity.NewDocumentType(tenantID, "Contrato de Trabalho", false, testActor, testNow)
	require.NoError(t, err)
	return ot, dt
}

func TestLinkOwnerType_CriaVinculoNosDoisLados(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())

	link, err := dt.LinkOwnerType(ot, testActor, testNow)
	require.NoError(t, err)
	require.NotNil(t, link)

	assert.Equal(t, ot.ID, link.OwnerTypeID)
	assert.Equal(t, dt.ID, link.DocumentTypeID)
	assert.Equal(t, dt.TenantID, link.TenantID)

	assert.True(t, dt.CanBeUsedByOwnerType(ot.ID))
	assert.True(t, ot.CanReceiveDocumentType(dt.ID))
	assert.Len(t, dt.Links(), 1)
	assert.Len(t, ot.Links(), 1)
	assert.Equal(t, dt.Links()[0].ID, ot.Links()[0].ID, "os dois lados compartilham o mesmo registro")
}

func TestLinkOwnerType_Idempotente(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())

	first, err := dt.LinkOwnerType(ot, testActor, testNow)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := dt.LinkOwnerType(ot, testActor, testNow)
	require.NoError(t, err)
	assert.Nil(t, second, "revincular é aceito em silêncio")
	assert.Len(t, dt.Links(), 1)
	assert.Len(t, ot.Links(), 1)
}

func TestLinkOwnerType_OrganizacoesDiferentes(t *testing.T) {
	ot, _ := newCatalogPair(t, identifier.NewTenantID())
	_, dt := newCatalogPair(t, identifier.NewTenantID())

	_, err := dt.LinkOwnerType(ot, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrCrossTenant)
	assert.Empty(t, dt.Links())
}

func TestLinkDocumentType_EspelhoDoOutroLado(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())

	link, err := ot.LinkDocumentType(dt, testActor, testNow)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.True(t, dt.CanBeUsedByOwnerType(ot.ID))
}

func TestUnlinkOwnerType_RemoveSoUmLado(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())
	_, err := dt.LinkOwnerType(ot, testActor, testNow)
	require.NoError(t, err)

	assert.True(t, dt.UnlinkOwnerType(ot.ID))
	assert.False(t, dt.CanBeUsedByOwnerType(ot.ID))

	// O lado do tipo de dono é responsabilidade do caller.
	assert.True(t, ot.CanReceiveDocumentType(dt.ID))
	assert.True(t, ot.UnlinkDocumentType(dt.ID))
	assert.False(t, ot.CanReceiveDocumentType(dt.ID))
}

func TestUnlinkOwnerType_AusenteNaoEErro(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())

	assert.False(t, dt.UnlinkOwnerType(ot.ID))
	assert.False(t, ot.UnlinkDocumentType(dt.ID))
}

func TestDocumentType_ChangeAllowsMultiple(t *testing.T) {
	_, dt := newCatalogPair(t, identifier.NewTenantID())
	require.False(t, dt.AllowsMultipleDocuments)

	dt.ChangeAllowsMultiple(true, testActor, testNow)
	assert.True(t, dt.AllowsMultipleDocuments)
}

func TestCatalog_RenameValidaForma(t *testing.T) {
	ot, dt := newCatalogPair(t, identifier.NewTenantID())

	require.NoError(t, ot.Rename("Prestador", testActor, testNow))
	assert.Equal(t, "Prestador", ot.Name)

	assert.ErrorIs(t, dt.Rename("   ", testActor, testNow), domain.ErrValidation)
}
