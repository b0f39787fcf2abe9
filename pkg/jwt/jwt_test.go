package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "clave-de-prueba-no-usar-en-produccion"
	testIssuer = "propiedades-pro-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	token, err := Generate(testSecret, 42, 7, "accountant", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, orgID, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, int64(7), orgID)
	assert.Equal(t, "accountant", role)
}

func TestGenerate_SecretVacioFalla(t *testing.T) {
	_, err := Generate("", 1, 0, "admin", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrectaFalla(t *testing.T) {
	token, err := Generate(testSecret, 1, 0, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpiradoFalla(t *testing.T) {
	// Expiración negativa: el token nace vencido.
	token, err := Generate(testSecret, 1, 0, "admin", testIssuer, -5)
	require.NoError(t, err)

	_, _, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenMalformadoFalla(t *testing.T) {
	_, _, _, err := Parse(testSecret, "no.es.un.jwt")
	assert.Error(t, err)
}

func TestGenerate_OrgCeroParaAdminGlobal(t *testing.T) {
	token, err := Generate(testSecret, 1, 0, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, orgID, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Zero(t, orgID)
	assert.Equal(t, "admin", role)
}
