package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/shotfidelidade/painel-api/pkg/jwt"
)

const (
	testSecret = "secret-de-teste-unitario"
	testIssuer = "shot-painel-test"
)

func TestJWT_GenerateAndParse_ComClaimsDeSessao(t *testing.T) {
	perms := map[string]bool{"telaShot_promocoes": true, "telaShot_bots": false}
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ana@rede.com.br", "Rede Sul", perms, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@rede.com.br", claims.Email)
	assert.Equal(t, "Rede Sul", claims.Escopo)
	assert.True(t, claims.Permissoes["telaShot_promocoes"])
	assert.False(t, claims.Permissoes["telaShot_bots"])
}

func TestJWT_TokenExpirado_RetornaErro(t *testing.T) {
	// Expiração -1 minuto (já vencido)
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ana@rede.com.br", "Rede Sul", nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorreto_RetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ana@rede.com.br", "Rede Sul", nil, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}

func TestJWT_SecretVazio_RetornaErro(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "a@b.c", "", nil, testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "qualquer.token.aqui")
	assert.Error(t, err)
}
