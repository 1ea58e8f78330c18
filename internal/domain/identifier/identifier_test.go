package identifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// ──────────────────────────────────────────────────────────────────────────────
// Identificadores tipados: geração, parsing e round-trip String -> Parse.
// Cada tipo de entidade tem seu próprio tipo de ID; aqui cobrimos o
// comportamento comum via TenantID e a rejeição de entradas inválidas.
// ──────────────────────────────────────────────────────────────────────────────

func TestNewTenantID_NuncaZero(t *testing.T) {
	id := identifier.NewTenantID()
	assert.False(t, id.IsZero(), "ID recém-gerado nunca pode ser zero")
}

func TestParseTenantID_RoundTrip(t *testing.T) {
	id := identifier.NewTenantID()

	parsed, err := identifier.ParseTenantID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed, "parse do String() deve devolver o mesmo ID")
}

func TestParseTenantID_Malformado(t *testing.T) {
	_, err := identifier.ParseTenantID("nao-e-um-uuid")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTenantID_Vazio(t *testing.T) {
	_, err := identifier.ParseTenantID("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTenantID_UuidNilRejeitado(t *testing.T) {
	_, err := identifier.ParseTenantID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrValidation, "uuid nil não identifica entidade alguma")
}

func TestParseUserID_RoundTrip(t *testing.T) {
	id := identifier.NewUserID()

	parsed, err := identifier.ParseUserID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseDocumentID_Malformado(t *testing.T) {
	_, err := identifier.ParseDocumentID("123")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIDsDeTiposDiferentes_SaoTiposDistintos(t *testing.T) {
	// Garantia em tempo de compilação: OwnerID e DocumentID não são
	// intercambiáveis. Aqui só conferimos a representação.
	ownerID := identifier.NewOwnerID()
	docID := identifier.NewDocumentID()

	assert.NotEqual(t, ownerID.String(), docID.String())
}
