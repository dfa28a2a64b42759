package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
	"github.com/shotfidelidade/painel-api/internal/domain/scope"
)

// EscopoHandler expõe o estado de exibição do escopo de tenant.
// Diferente das demais rotas, nunca bloqueia: falha de consulta vira a
// variante de erro e sessão ausente vira "Não autenticado", sempre 200.
type EscopoHandler struct {
	usuarioRepo repository.UsuarioRepository
}

// NewEscopoHandler constrói o handler.
func NewEscopoHandler(usuarioRepo repository.UsuarioRepository) *EscopoHandler {
	return &EscopoHandler{usuarioRepo: usuarioRepo}
}

// Get godoc
// @Summary      Escopo de tenant do usuário corrente (texto de exibição)
// @Tags         escopo
// @Produce      json
// @Success      200  {object}  dto.EscopoResponse
// @Router       /api/escopo [get]
func (h *EscopoHandler) Get(c *fiber.Ctx) error {
	email := GetEmail(c)

	var (
		u   *entity.Usuario
		err error
	)
	if email != "" {
		u, err = h.usuarioRepo.FindByEmail(c.Context(), email)
	}

	// Precedência do estado: erro > carregando > não autenticado > sucesso.
	// Não há variante carregando no servidor (a leitura já terminou aqui).
	estado := scope.ResolverEstado(false, u, err)
	return c.JSON(dto.EscopoResponse{Texto: scope.Formatar(estado)})
}
