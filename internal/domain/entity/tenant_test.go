package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// ──────────────────────────────────────────────────────────────────────────────
// Organização (tenant): criação, forma do slug, status e expiração.
// A unicidade global do slug é responsabilidade do serviço de aplicação;
// aqui só entra a forma (minúsculas, dígitos, hífen).
// ──────────────────────────────────────────────────────────────────────────────

var (
	testNow   = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	testActor = identifier.NewUserID()
)

func TestNewTenant_CriadaAtiva(t *testing.T) {
	tn, err := entity.NewTenant("Construtora Horizonte", "horizonte", testActor, testNow)
	require.NoError(t, err)

	assert.False(t, tn.ID.IsZero())
	assert.Equal(t, "Construtora Horizonte", tn.Name)
	assert.Equal(t, "horizonte", tn.Slug)
	assert.Equal(t, entity.TenantActive, tn.Status)
	assert.True(t, tn.IsActive())
	assert.Nil(t, tn.ExpiresAt)
	assert.Equal(t, testActor, tn.CreatedBy)
	assert.Equal(t, testNow, tn.CreatedAt)
}

func TestNewTenant_SlugFormas(t *testing.T) {
	cases := []struct {
		name string
		slug string
		ok   bool
	}{
		{"minusculas e hifen", "abc-123", true},
		{"so digitos", "42", true},
		{"maiusculas rejeitadas", "ACME", false},
		{"underscore rejeitado", "abc_123", false},
		{"espacos internos rejeitados", "a b", false},
		{"acentos rejeitados", "organização", false},
		{"vazio rejeitado", "", false},
		{"so espacos rejeitado", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tn, err := entity.NewTenant("Org", tc.slug, testActor, testNow)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.slug, tn.Slug, "slug válido deve ser mantido literalmente")
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
			}
		})
	}
}

func TestNewTenant_NomeObrigatorioELimitado(t *testing.T) {
	_, err := entity.NewTenant("  ", "org", testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = entity.NewTenant(strings.Repeat("x", 121), "org", testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewTenant_SlugLimitado(t *testing.T) {
	_, err := entity.NewTenant("Org", strings.Repeat("a", 51), testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewTenant_CriadorObrigatorio(t *testing.T) {
	_, err := entity.NewTenant("Org", "org", identifier.UserID{}, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTenant_RenameOrganization(t *testing.T) {
	tn, err := entity.NewTenant("Org", "org", testActor, testNow)
	require.NoError(t, err)

	other := identifier.NewUserID()
	later := testNow.Add(time.Hour)
	require.NoError(t, tn.RenameOrganization("  Org Renomeada  ", other, later))

	assert.Equal(t, "Org Renomeada", tn.Name, "nome deve ser aparado")
	assert.Equal(t, other, tn.UpdatedBy)
	assert.Equal(t, later, tn.UpdatedAt)
	assert.Equal(t, testActor, tn.CreatedBy, "autoria de criação não muda")
}

func TestTenant_ChangeStatus(t *testing.T) {
	tn, err := entity.NewTenant("Org", "org", testActor, testNow)
	require.NoError(t, err)

	require.NoError(t, tn.ChangeStatus(entity.TenantSuspended, testActor, testNow))
	assert.False(t, tn.IsActive())

	// Reativação não exige nada além do status válido.
	require.NoError(t, tn.ChangeStatus(entity.TenantActive, testActor, testNow))
	assert.True(t, tn.IsActive())

	err = tn.ChangeStatus(entity.TenantStatus("frozen"), testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTenant_SetExpiration(t *testing.T) {
	tn, err := entity.NewTenant("Org", "org", testActor, testNow)
	require.NoError(t, err)

	future := testNow.Add(30 * 24 * time.Hour)
	require.NoError(t, tn.SetExpiration(&future, testActor, testNow))
	assert.False(t, tn.IsExpired(testNow))
	assert.True(t, tn.IsExpired(future), "na data exata a organização já conta como expirada")

	past := testNow.Add(-time.Hour)
	err = tn.SetExpiration(&past, testActor, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// nil limpa a expiração.
	require.NoError(t, tn.SetExpiration(nil, testActor, testNow))
	assert.Nil(t, tn.ExpiresAt)
	assert.False(t, tn.IsExpired(future.Add(time.Hour)))
}
