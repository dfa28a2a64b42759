package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shotfidelidade/painel-api/internal/application/auth"
	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	pkgjwt "github.com/shotfidelidade/painel-api/pkg/jwt"
)

type fakeUsuarioRepo struct {
	porEmail map[string]*entity.Usuario
	falha    error
}

func (f *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	if f.falha != nil {
		return nil, f.falha
	}
	return f.porEmail[email], nil
}

func (f *fakeUsuarioRepo) FindByID(_ context.Context, _ string) (*entity.Usuario, error) {
	return nil, nil
}

const testSecret = "secret-de-teste"

func novoUseCase(repo *fakeUsuarioRepo) *auth.UseCase {
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "shot-painel-test",
	})
}

func usuarioComSenha(t *testing.T, senha string) *entity.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Usuario{
		ID:           "u-1",
		Email:        "ana@rede.com.br",
		Nome:         "Ana",
		Rede:         "Rede Sul",
		SubRede:      "Zona Oeste",
		Sistema:      entity.SistemaShot,
		PasswordHash: string(hash),
		Status:       "active",
		Permissoes:   entity.Permissoes{Promocoes: true, Relatorios: true},
	}
}

func TestLogin_EmiteTokenComSnapshotDePermissoes(t *testing.T) {
	u := usuarioComSenha(t, "segredo123")
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{u.Email: u}})

	// Email com caixa e espaços divergentes: normalização no caso de uso.
	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "  ANA@Rede.com.br ", Password: "segredo123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Zona Oeste", out.Perfil.Escopo, "sub_rede tem prioridade no escopo")
	assert.True(t, out.Perfil.Permissoes[entity.PermPromocoes])

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@rede.com.br", claims.Email)
	assert.True(t, claims.Permissoes[entity.PermRelatorios],
		"snapshot do login deve viajar no token (fast path)")
	assert.False(t, claims.Permissoes[entity.PermBots])
}

func TestLogin_SenhaErrada(t *testing.T) {
	u := usuarioComSenha(t, "segredo123")
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{u.Email: u}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "outra"})
	assert.ErrorIs(t, err, domain.ErrNaoAutenticado)
}

func TestLogin_UsuarioAusenteRespondeIgualCredencialErrada(t *testing.T) {
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@y.z", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrNaoAutenticado,
		"ausente e senha errada não podem ser distinguíveis pelo cliente")
}

func TestLogin_UsuarioInativoBloqueado(t *testing.T) {
	u := usuarioComSenha(t, "segredo123")
	u.Status = "suspended"
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{u.Email: u}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrPermissaoNegada)
}

func TestLogin_FalhaDeDiretorio(t *testing.T) {
	uc := novoUseCase(&fakeUsuarioRepo{falha: errors.New("db fora do ar")})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrFalhaConsulta)
}

func TestRenovarSessao_SubstituiSnapshotPorInteiro(t *testing.T) {
	u := usuarioComSenha(t, "segredo123")
	repo := &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{u.Email: u}}
	uc := novoUseCase(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "segredo123"})
	require.NoError(t, err)

	// O diretório muda depois do login: promoções revogada, bots concedida.
	u.Permissoes = entity.Permissoes{Bots: true}

	renovado, err := uc.RenovarSessao(context.Background(), u.Email)
	require.NoError(t, err)
	require.NotEqual(t, out.Token, renovado.Token, "refresh reemite o token")

	claims, err := pkgjwt.Parse(testSecret, renovado.Token)
	require.NoError(t, err)
	assert.True(t, claims.Permissoes[entity.PermBots])
	assert.False(t, claims.Permissoes[entity.PermPromocoes],
		"snapshot antigo é substituído por inteiro, não mesclado")
}

func TestRenovarSessao_UsuarioSumiu(t *testing.T) {
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}})
	_, err := uc.RenovarSessao(context.Background(), "sumiu@rede.com.br")
	assert.ErrorIs(t, err, domain.ErrUsuarioNaoEncontrado)
}

func TestPerfil_EscopoCaiParaEmpresaSemSubRede(t *testing.T) {
	u := usuarioComSenha(t, "s")
	u.SubRede = ""
	u.Empresa = "Padaria Central"
	uc := novoUseCase(&fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{u.Email: u}})

	perfil, err := uc.Perfil(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, "Padaria Central", perfil.Escopo)
}
