package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/auth"
	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/domain"
)

// PermissaoHandler expõe o modelo de leitura de permissões da sessão mais a
// ação explícita de invalidação (refresh).
type PermissaoHandler struct {
	authUC *auth.UseCase
	cookie CookieConfig
}

// NewPermissaoHandler constrói o handler.
func NewPermissaoHandler(authUC *auth.UseCase, cookie CookieConfig) *PermissaoHandler {
	return &PermissaoHandler{authUC: authUC, cookie: cookie}
}

// Get godoc
// @Summary      Conjunto corrente de permissões da sessão
// @Tags         permissoes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissoesResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/permissoes [get]
func (h *PermissaoHandler) Get(c *fiber.Ctx) error {
	cache := GetPermissoes(c)
	if cache == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}

	origem := "sessao"
	perms := cache.Get()
	if perms == nil {
		// Sessão legada sem snapshot: slow path.
		atualizado, err := cache.Atualizar(c.Context())
		if err != nil {
			return respostaErroPermissao(c, err)
		}
		perms = atualizado
		origem = "diretorio"
	}

	return c.JSON(dto.PermissoesResponse{
		Permissoes: permissions.Snapshot(*perms),
		Origem:     origem,
	})
}

// Atualizar godoc
// @Summary      Força o refresh das permissões e reemite o token de sessão
// @Description  Invalidação explícita do snapshot embutido na sessão: consulta
//               o diretório e substitui o conjunto por inteiro.
// @Tags         permissoes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissoesResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/permissoes/atualizar [post]
func (h *PermissaoHandler) Atualizar(c *fiber.Ctx) error {
	email := GetEmail(c)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}

	out, err := h.authUC.RenovarSessao(c.Context(), email)
	if err != nil {
		return respostaErroPermissao(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookie.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(dto.PermissoesResponse{
		Permissoes: out.Perfil.Permissoes,
		Origem:     "diretorio",
	})
}

func respostaErroPermissao(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUsuarioNaoEncontrado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	case errors.Is(err, domain.ErrPermissaoNegada):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: dto.CodePermissaoNegada, Message: "conta inativa ou suspensa"})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "não foi possível consultar permissões"})
	}
}
