package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/domain"
)

// RequirePermissao devolve um middleware Fiber que verifica se a sessão tem a
// permissão de tela. Deve ser usado DEPOIS de SessaoMiddleware (precisa do
// cache em LocalPermissoes).
//
// Comportamento:
//   - snapshot presente no cache -> decide sem tocar o diretório (fast path);
//   - cache vazio (sessão legada) -> refresh força o slow path;
//   - estado de permissão desconhecido por falha de consulta -> 503, acesso
//     bloqueado (fail closed): desconhecido nunca vira "tudo permitido";
//   - permissão ausente -> 403 com mensagem fixa.
func RequirePermissao(chave string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cache := GetPermissoes(c)
		if cache == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: dto.CodeNaoAutenticado, Message: "Não autenticado",
			})
		}

		perms := cache.Get()
		if perms == nil {
			atualizado, err := cache.Atualizar(c.Context())
			if err != nil {
				if errors.Is(err, domain.ErrUsuarioNaoEncontrado) {
					// Ausente trata-se igual a não autenticado para permissões.
					return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
						Code: dto.CodePermissaoNegada, Message: "Você não tem acesso a esta tela",
					})
				}
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: dto.CodeFalhaConsulta, Message: "não foi possível verificar permissões, tente mais tarde",
				})
			}
			perms = atualizado
		}

		if !perms.Tem(chave) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: dto.CodePermissaoNegada, Message: "Você não tem acesso a esta tela",
			})
		}
		return c.Next()
	}
}
