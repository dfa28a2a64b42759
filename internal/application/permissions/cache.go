package permissions

import (
	"context"
	"sync/atomic"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
)

// Cache guarda o conjunto de permissões de UMA sessão de usuário (não é
// compartilhado entre usuários). Leitores são a maioria; a substituição no
// refresh é por inteiro (troca atômica da referência, nunca merge campo a
// campo), então um leitor sempre observa o valor antigo ou o novo completo.
type Cache struct {
	email string
	svc   *Service
	atual atomic.Pointer[entity.Permissoes]
}

// NewCache cria o cache da sessão semeado com o snapshot do login (fast path).
// semente nil deixa o cache vazio até o primeiro Atualizar.
func NewCache(email string, svc *Service, semente *entity.Permissoes) *Cache {
	c := &Cache{email: email, svc: svc}
	if semente != nil {
		cp := *semente
		c.atual.Store(&cp)
	}
	return c
}

// Get devolve o conjunto corrente, ou nil se ainda não há valor (o chamador
// trata nil como desconhecido e decide a política).
func (c *Cache) Get() *entity.Permissoes {
	return c.atual.Load()
}

// Atualizar força o slow path: consulta o diretório e substitui o valor em
// cache por inteiro. Em falha o valor antigo permanece e o erro é propagado,
// para que o chamador saiba que o refresh não aconteceu.
func (c *Cache) Atualizar(ctx context.Context) (*entity.Permissoes, error) {
	p, err := c.svc.Resolver(ctx, c.email)
	if err != nil {
		return nil, err
	}
	c.atual.Store(p)
	return p, nil
}
