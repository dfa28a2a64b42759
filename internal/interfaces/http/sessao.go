package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	pkgjwt "github.com/shotfidelidade/painel-api/pkg/jwt"
)

// Locals keys da sessão no Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalEscopo = "escopo"
	// LocalPermissoes guarda o *permissions.Cache da sessão corrente.
	LocalPermissoes = "permissoes"
)

// EmailDoCookieLegado extrai a identidade do formato antigo de cookie: o
// email é o segmento antes do primeiro underscore, e o resto é descartado.
// Só aceita segmento em forma de email (contém "@"); devolve vazio caso
// contrário. Mantido apenas para sessões emitidas antes do token assinado.
func EmailDoCookieLegado(valor string) string {
	if valor == "" {
		return ""
	}
	segmento := strings.SplitN(valor, "_", 2)[0]
	email := entity.NormalizarEmail(segmento)
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// SessaoMiddleware resolve a identidade da requisição e carrega os locals.
//
// Ordem de resolução:
//  1. Authorization: Bearer <token assinado>
//  2. cookie de sessão com token assinado (caminho novo)
//  3. cookie de sessão no formato legado "email_sufixo" (compatibilidade)
//
// No caminho assinado, o snapshot de permissões do token semeia o cache da
// sessão (fast path). No legado não há snapshot: o cache nasce vazio e o
// primeiro uso força a consulta ao diretório (slow path).
// Sem identidade resolvível: 401 com estado fixo, nunca dados parciais.
func SessaoMiddleware(jwtSecret, cookieName string, permSvc *permissions.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bruto := tokenDaRequisicao(c, cookieName)
		if bruto == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: dto.CodeNaoAutenticado, Message: "Não autenticado",
			})
		}

		if claims, err := pkgjwt.Parse(jwtSecret, bruto); err == nil {
			email := entity.NormalizarEmail(claims.Email)
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalEmail, email)
			c.Locals(LocalEscopo, claims.Escopo)
			semente := permissions.DoSnapshot(claims.Permissoes)
			c.Locals(LocalPermissoes, permissions.NewCache(email, permSvc, &semente))
			return c.Next()
		}

		// Fallback legado: "email_sufixo". Identidade fraca, sem snapshot.
		email := EmailDoCookieLegado(bruto)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: dto.CodeNaoAutenticado, Message: "Não autenticado",
			})
		}
		c.Locals(LocalEmail, email)
		c.Locals(LocalPermissoes, permissions.NewCache(email, permSvc, nil))
		return c.Next()
	}
}

// SessaoOpcional é a variante leniente: carrega os locals quando a identidade
// é resolvível e segue adiante sem 401 quando não é. Usada pela exibição de
// escopo, que renderiza o estado "Não autenticado" em vez de bloquear.
func SessaoOpcional(jwtSecret, cookieName string, permSvc *permissions.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bruto := tokenDaRequisicao(c, cookieName)
		if bruto == "" {
			return c.Next()
		}
		if claims, err := pkgjwt.Parse(jwtSecret, bruto); err == nil {
			email := entity.NormalizarEmail(claims.Email)
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalEmail, email)
			c.Locals(LocalEscopo, claims.Escopo)
			semente := permissions.DoSnapshot(claims.Permissoes)
			c.Locals(LocalPermissoes, permissions.NewCache(email, permSvc, &semente))
			return c.Next()
		}
		if email := EmailDoCookieLegado(bruto); email != "" {
			c.Locals(LocalEmail, email)
			c.Locals(LocalPermissoes, permissions.NewCache(email, permSvc, nil))
		}
		return c.Next()
	}
}

// tokenDaRequisicao lê o valor de sessão do header Authorization ou do cookie.
func tokenDaRequisicao(c *fiber.Ctx, cookieName string) string {
	if auth := c.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(cookieName)
}

// GetUserID devolve o UserID do contexto (após o middleware de sessão).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devolve o email normalizado da sessão.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetEscopo devolve o escopo carregado no token (vazio no caminho legado).
func GetEscopo(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEscopo).(string)
	return s
}

// GetPermissoes devolve o cache de permissões da sessão, ou nil.
func GetPermissoes(c *fiber.Ctx) *permissions.Cache {
	p, _ := c.Locals(LocalPermissoes).(*permissions.Cache)
	return p
}
