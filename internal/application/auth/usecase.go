package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
	"github.com/shotfidelidade/painel-api/internal/domain/scope"
	"github.com/shotfidelidade/painel-api/pkg/jwt"
)

// JWTConfig configuração para geração do token de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticação: login e perfil. O provisionamento de
// usuários é operação administrativa externa; aqui só se lê o diretório.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login verifica email/senha e emite o token de sessão assinado com o snapshot
// de permissões embutido: é aqui que o fast path do resolvedor de permissões
// é provisionado.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := entity.NormalizarEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrEntradaInvalida
	}

	u, err := uc.usuarioRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Join(domain.ErrFalhaConsulta, err)
	}
	if u == nil {
		// Usuário ausente responde igual a credencial errada: não autenticado.
		return nil, domain.ErrNaoAutenticado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNaoAutenticado
	}
	if u.Status != "active" {
		return nil, domain.ErrPermissaoNegada
	}

	escopo := scope.Resolver(u)
	snapshot := permissions.Snapshot(u.Permissoes)
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Email, escopo, snapshot,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:  token,
		Perfil: *toPerfil(u, escopo, snapshot),
	}, nil
}

// RenovarSessao reemite o token de sessão com um snapshot fresco do diretório
// (slow path forçado). É a invalidação explícita do cache da sessão: o snapshot
// antigo é substituído por inteiro no novo token, nunca mesclado.
func (uc *UseCase) RenovarSessao(ctx context.Context, email string) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.FindByEmail(ctx, entity.NormalizarEmail(email))
	if err != nil {
		return nil, errors.Join(domain.ErrFalhaConsulta, err)
	}
	if u == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	if u.Status != "active" {
		return nil, domain.ErrPermissaoNegada
	}

	escopo := scope.Resolver(u)
	snapshot := permissions.Snapshot(u.Permissoes)
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Email, escopo, snapshot,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Perfil: *toPerfil(u, escopo, snapshot)}, nil
}

// Perfil devolve o usuário autenticado com escopo resolvido e permissões.
func (uc *UseCase) Perfil(ctx context.Context, email string) (*dto.PerfilResponse, error) {
	u, err := uc.usuarioRepo.FindByEmail(ctx, entity.NormalizarEmail(email))
	if err != nil {
		return nil, errors.Join(domain.ErrFalhaConsulta, err)
	}
	if u == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	return toPerfil(u, scope.Resolver(u), permissions.Snapshot(u.Permissoes)), nil
}

func toPerfil(u *entity.Usuario, escopo string, perms map[string]bool) *dto.PerfilResponse {
	return &dto.PerfilResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nome:       u.Nome,
		Empresa:    u.Empresa,
		Rede:       u.Rede,
		SubRede:    u.SubRede,
		Escopo:     escopo,
		Permissoes: perms,
	}
}
