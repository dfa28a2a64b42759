package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	apphttp "github.com/shotfidelidade/painel-api/internal/interfaces/http"
	pkgjwt "github.com/shotfidelidade/painel-api/pkg/jwt"
	"github.com/shotfidelidade/painel-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "secret-de-teste-unitario"
	testCookieName = "shot_sessao"
	testIssuer     = "shot-painel-test"
	testEmail      = "ana@rede.com.br"
)

// fakeUsuarioRepo diretório em memória; conta as buscas para os testes de
// fast/slow path.
type fakeUsuarioRepo struct {
	porEmail map[string]*entity.Usuario
	falha    error
	buscas   int
}

func (f *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	f.buscas++
	if f.falha != nil {
		return nil, f.falha
	}
	return f.porEmail[email], nil
}

func (f *fakeUsuarioRepo) FindByID(_ context.Context, _ string) (*entity.Usuario, error) {
	return nil, nil
}

func permSvc(repo *fakeUsuarioRepo) *permissions.Service {
	return permissions.NewService(repo, logger.New(logger.Config{Env: "production", Level: "error"}))
}

// buildApp monta uma aplicação Fiber mínima com SessaoMiddleware +
// RequirePermissao e um handler dummy que devolve 200.
func buildApp(repo *fakeUsuarioRepo, chave string) *fiber.App {
	app := fiber.New()
	app.Get("/protegida",
		apphttp.SessaoMiddleware(testJWTSecret, testCookieName, permSvc(repo)),
		apphttp.RequirePermissao(chave),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "email": apphttp.GetEmail(c)})
		},
	)
	return app
}

func tokenComPermissoes(t *testing.T, perms map[string]bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "u-1", testEmail, "Rede Sul", perms, testIssuer, 60)
	require.NoError(t, err, "deve gerar um token de sessão válido")
	return tok
}

func doGet(t *testing.T, app *fiber.App, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// EmailDoCookieLegado: convenção "email_sufixo"
// ──────────────────────────────────────────────────────────────────────────────

func TestEmailDoCookieLegado(t *testing.T) {
	casos := []struct {
		nome     string
		valor    string
		esperado string
	}{
		{"email com sufixo", "ana@rede.com.br_1712345678", "ana@rede.com.br"},
		{"sufixo com underscores", "ana@rede.com.br_a_b_c", "ana@rede.com.br"},
		{"sem sufixo", "ana@rede.com.br", "ana@rede.com.br"},
		{"normaliza caixa", "ANA@Rede.com.br_99", "ana@rede.com.br"},
		{"segmento sem arroba", "naoehemail_123", ""},
		{"vazio", "", ""},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, apphttp.EmailDoCookieLegado(c.valor),
				"segmento 0 do split em underscore, em forma de email")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SessaoMiddleware + RequirePermissao
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermissao_FastPathNaoConsultaDiretorio(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}}
	app := buildApp(repo, entity.PermPromocoes)

	tok := tokenComPermissoes(t, map[string]bool{entity.PermPromocoes: true})
	resp := doGet(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, repo.buscas,
		"snapshot do token decide sem tocar o diretório (fast path)")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmail, body["email"])
}

func TestRequirePermissao_SnapshotSemAFlag_403(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		// Mesmo com o diretório concedendo, o snapshot da sessão decide:
		// só o refresh explícito troca o conjunto.
		testEmail: {ID: "u-1", Email: testEmail, Permissoes: entity.Permissoes{Bots: true}},
	}}
	app := buildApp(repo, entity.PermBots)

	tok := tokenComPermissoes(t, map[string]bool{entity.PermPromocoes: true})
	resp := doGet(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSAO_NEGADA")
	assert.Equal(t, 0, repo.buscas)
}

func TestRequirePermissao_CookieLegadoForcaSlowPath(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		testEmail: {ID: "u-1", Email: testEmail, Permissoes: entity.Permissoes{Aniversarios: true}},
	}}
	app := buildApp(repo, entity.PermAniversarios)

	resp := doGet(t, app, testEmail+"_1712345678")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, repo.buscas,
		"sessão legada não tem snapshot: exatamente uma consulta ao diretório")
}

func TestRequirePermissao_UsuarioLegadoAusente_403(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}}
	app := buildApp(repo, entity.PermPesquisas)

	resp := doGet(t, app, "sumiu@rede.com.br_1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"ausente trata-se como acesso negado no gate de permissão")
}

func TestRequirePermissao_FalhaDeDiretorioFalhaFechado_503(t *testing.T) {
	repo := &fakeUsuarioRepo{falha: errors.New("timeout")}
	app := buildApp(repo, entity.PermPesquisas)

	resp := doGet(t, app, testEmail+"_1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"estado desconhecido nunca concede acesso")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FALHA_CONSULTA")
}

func TestSessaoMiddleware_SemCookie_401(t *testing.T) {
	app := buildApp(&fakeUsuarioRepo{}, entity.PermPromocoes)

	resp := doGet(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NAO_AUTENTICADO")
}

func TestSessaoMiddleware_ValorSemFormaDeIdentidade_401(t *testing.T) {
	app := buildApp(&fakeUsuarioRepo{}, entity.PermPromocoes)

	resp := doGet(t, app, "lixo-que-nao-eh-token-nem-email")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessaoMiddleware_AceitaBearerHeader(t *testing.T) {
	repo := &fakeUsuarioRepo{}
	app := buildApp(repo, entity.PermPromocoes)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+tokenComPermissoes(t, map[string]bool{entity.PermPromocoes: true}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/escopo: estado de exibição nunca bloqueia
// ──────────────────────────────────────────────────────────────────────────────

func buildEscopoApp(repo *fakeUsuarioRepo) *fiber.App {
	app := fiber.New()
	app.Get("/api/escopo",
		apphttp.SessaoOpcional(testJWTSecret, testCookieName, permSvc(repo)),
		apphttp.NewEscopoHandler(repo).Get,
	)
	return app
}

func escopoTexto(t *testing.T, app *fiber.App, cookie string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/escopo", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "escopo sempre responde 200")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["texto"]
}

func TestEscopo_SemSessaoRendeNaoAutenticado(t *testing.T) {
	app := buildEscopoApp(&fakeUsuarioRepo{})
	assert.Equal(t, "Não autenticado", escopoTexto(t, app, ""))
}

func TestEscopo_ComSessaoRendeEscopoResolvido(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		testEmail: {ID: "u-1", Email: testEmail, SubRede: "Zona Oeste", Empresa: "Padaria Central"},
	}}
	app := buildEscopoApp(repo)

	assert.Equal(t, "Zona Oeste", escopoTexto(t, app, tokenComPermissoes(t, nil)))
}

func TestEscopo_FalhaDeConsultaRendeVarianteDeErro(t *testing.T) {
	repo := &fakeUsuarioRepo{falha: errors.New("db fora do ar")}
	app := buildEscopoApp(repo)

	assert.Equal(t, "Erro ao carregar", escopoTexto(t, app, tokenComPermissoes(t, nil)),
		"falha de consulta mostra a variante de erro em vez de bloquear")
}

func TestEscopo_UsuarioSemTenantRendeSentinela(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		testEmail: {ID: "u-1", Email: testEmail},
	}}
	app := buildEscopoApp(repo)

	assert.Equal(t, "Não definida", escopoTexto(t, app, tokenComPermissoes(t, nil)))
}
