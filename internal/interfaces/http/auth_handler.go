package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/auth"
	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/domain"
)

// CookieConfig parâmetros do cookie de sessão emitido no login.
type CookieConfig struct {
	Name       string
	Secure     bool
	ExpMinutes int
}

// AuthHandler gerencia login, logout e perfil.
type AuthHandler struct {
	uc     *auth.UseCase
	cookie CookieConfig
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.UseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: "corpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: "email e password são obrigatórios"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNaoAutenticado), errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "credenciais inválidas"})
		case errors.Is(err, domain.ErrPermissaoNegada):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: dto.CodePermissaoNegada, Message: "conta inativa ou suspensa"})
		case errors.Is(err, domain.ErrFalhaConsulta):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "diretório de usuários indisponível"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	h.setSessionCookie(c, out.Token, time.Duration(h.cookie.ExpMinutes)*time.Minute)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Encerrar sessão
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Perfil godoc
// @Summary      Usuário autenticado com escopo resolvido e permissões
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PerfilResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/perfil [get]
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	email := GetEmail(c)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}
	perfil, err := h.uc.Perfil(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNaoEncontrado) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "diretório de usuários indisponível"})
	}
	return c.JSON(perfil)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
