package permissions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/pkg/logger"
)

// fakeUsuarioRepo implementa o porto do diretório em memória para os testes.
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

func (f *fakeUsuarioRepo) FindByID(_ context.Context, id string) (*entity.Usuario, error) {
	for _, u := range f.porEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestResolver_UmaFlagVerdadeira(t *testing.T) {
	// Diretório com telaShot_promocoes = sim e todo o resto nao.
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		"ana@rede.com.br": {
			ID:         "u-1",
			Email:      "ana@rede.com.br",
			Permissoes: entity.Permissoes{Promocoes: true},
		},
	}}
	svc := permissions.NewService(repo, testLogger())

	p, err := svc.Resolver(context.Background(), "ana@rede.com.br")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.True(t, p.Promocoes, "única flag concedida deve ser promoções")
	assert.False(t, p.Relatorios)
	assert.False(t, p.Aniversarios)
	assert.False(t, p.Pesquisas)
	assert.False(t, p.Usuarios)
	assert.False(t, p.Bots)
	assert.Equal(t, 1, repo.buscas, "exatamente uma busca no diretório")
}

func TestResolver_UsuarioAusente(t *testing.T) {
	svc := permissions.NewService(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}}, testLogger())

	p, err := svc.Resolver(context.Background(), "ninguem@rede.com.br")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, domain.ErrUsuarioNaoEncontrado)
}

func TestResolver_FalhaDeInfraestruturaNaoViraNaoEncontrado(t *testing.T) {
	svc := permissions.NewService(&fakeUsuarioRepo{falha: errors.New("timeout")}, testLogger())

	p, err := svc.Resolver(context.Background(), "ana@rede.com.br")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, domain.ErrFalhaConsulta,
		"falha de consulta deve ser distinta de usuário ausente")
	assert.NotErrorIs(t, err, domain.ErrUsuarioNaoEncontrado)
}

func TestTem_FalsoParaConjuntoNuloEChaveDesconhecida(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		"ana@rede.com.br": {ID: "u-1", Permissoes: entity.Permissoes{Bots: true}},
	}}
	svc := permissions.NewService(repo, testLogger())
	ctx := context.Background()

	assert.True(t, svc.Tem(ctx, "ana@rede.com.br", entity.PermBots))
	assert.False(t, svc.Tem(ctx, "ana@rede.com.br", "tela_que_nao_existe"))
	assert.False(t, svc.Tem(ctx, "sumiu@rede.com.br", entity.PermBots),
		"usuário ausente: estado desconhecido bloqueia (fail closed)")
}

func TestSnapshot_IdaEVoltaConverge(t *testing.T) {
	p := entity.Permissoes{Promocoes: true, Pesquisas: true}
	assert.Equal(t, p, permissions.DoSnapshot(permissions.Snapshot(p)),
		"fast path (snapshot do token) e slow path devem convergir")
}

func TestDoSnapshot_MapaNuloOuIncompletoNegaTudo(t *testing.T) {
	assert.Equal(t, entity.Permissoes{}, permissions.DoSnapshot(nil))
	// Chave ausente nunca é permissiva.
	p := permissions.DoSnapshot(map[string]bool{entity.PermBots: true})
	assert.True(t, p.Bots)
	assert.False(t, p.Promocoes)
}

func TestCache_SementeERefreshSubstituiPorInteiro(t *testing.T) {
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{
		"ana@rede.com.br": {ID: "u-1", Permissoes: entity.Permissoes{Relatorios: true}},
	}}
	svc := permissions.NewService(repo, testLogger())

	semente := &entity.Permissoes{Promocoes: true} // snapshot defasado do login
	cache := permissions.NewCache("ana@rede.com.br", svc, semente)

	require.NotNil(t, cache.Get())
	assert.True(t, cache.Get().Promocoes, "antes do refresh vale o snapshot do login")

	atualizado, err := cache.Atualizar(context.Background())
	require.NoError(t, err)
	assert.True(t, atualizado.Relatorios)
	assert.False(t, atualizado.Promocoes, "substituição é por inteiro, não merge")
	assert.Equal(t, atualizado, cache.Get())
}

func TestCache_RefreshComFalhaMantemValorAntigo(t *testing.T) {
	repo := &fakeUsuarioRepo{falha: errors.New("db fora do ar")}
	svc := permissions.NewService(repo, testLogger())
	cache := permissions.NewCache("ana@rede.com.br", svc, &entity.Permissoes{Bots: true})

	_, err := cache.Atualizar(context.Background())
	assert.Error(t, err)
	require.NotNil(t, cache.Get())
	assert.True(t, cache.Get().Bots, "falha no refresh preserva o valor anterior")
}
