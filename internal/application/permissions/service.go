// Package permissions resolve o conjunto de permissões por tela de um usuário
// do painel. Há dois caminhos, snapshot embutido no token de sessão (fast
// path) e consulta ao diretório (slow path), que DEVEM produzir o mesmo
// resultado para o mesmo registro de usuário; por isso toda conversão passa
// por este pacote.
package permissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
	"github.com/shotfidelidade/painel-api/pkg/logger"
)

// Service resolve permissões consultando o diretório de usuários.
type Service struct {
	usuarioRepo repository.UsuarioRepository
	log         *logger.Logger
}

// NewService constrói o resolvedor de permissões.
func NewService(usuarioRepo repository.UsuarioRepository, log *logger.Logger) *Service {
	return &Service{usuarioRepo: usuarioRepo, log: log}
}

// Resolver faz exatamente uma busca no diretório pelo email (já normalizado
// pelo chamador) e devolve o conjunto de permissões.
//
//   - usuário ausente (ou de outro sistema): (nil, domain.ErrUsuarioNaoEncontrado)
//   - falha de infraestrutura: (nil, domain.ErrFalhaConsulta envolvido)
//
// nil significa "permissões desconhecidas", NUNCA "tudo negado" nem "tudo
// permitido"; a política de fallback é do chamador (o gate HTTP nega).
func (s *Service) Resolver(ctx context.Context, email string) (*entity.Permissoes, error) {
	u, err := s.usuarioRepo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("consulta ao diretório de usuários falhou")
		return nil, fmt.Errorf("%w: %v", domain.ErrFalhaConsulta, err)
	}
	if u == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	p := u.Permissoes
	return &p, nil
}

// Tem delega a Resolver e responde se a chave está concedida.
// Conjunto nulo ou chave desconhecida: false.
func (s *Service) Tem(ctx context.Context, email, chave string) bool {
	p, err := s.Resolver(ctx, email)
	if err != nil || p == nil {
		if err != nil && !errors.Is(err, domain.ErrUsuarioNaoEncontrado) {
			s.log.Warn().Err(err).Str("email", email).Msg("permissão negada por estado desconhecido")
		}
		return false
	}
	return p.Tem(chave)
}

// Snapshot serializa o conjunto para o mapa chave->bool embutido no token de
// sessão. Junto com DoSnapshot garante que fast e slow path convergem.
func Snapshot(p entity.Permissoes) map[string]bool {
	return map[string]bool{
		entity.PermPromocoes:    p.Promocoes,
		entity.PermRelatorios:   p.Relatorios,
		entity.PermAniversarios: p.Aniversarios,
		entity.PermPesquisas:    p.Pesquisas,
		entity.PermUsuarios:     p.Usuarios,
		entity.PermBots:         p.Bots,
	}
}

// DoSnapshot reconstrói o conjunto a partir do mapa do token. Chave ausente
// conta como false: nunca confiar em campo faltante como permissivo.
func DoSnapshot(m map[string]bool) entity.Permissoes {
	if m == nil {
		return entity.Permissoes{}
	}
	return entity.Permissoes{
		Promocoes:    m[entity.PermPromocoes],
		Relatorios:   m[entity.PermRelatorios],
		Aniversarios: m[entity.PermAniversarios],
		Pesquisas:    m[entity.PermPesquisas],
		Usuarios:     m[entity.PermUsuarios],
		Bots:         m[entity.PermBots],
	}
}
