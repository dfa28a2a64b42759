package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/filterconfig"
	"github.com/shotfidelidade/painel-api/internal/domain"
)

// FiltroHandler CRUD das configurações de filtro salvas do usuário.
type FiltroHandler struct {
	uc *filterconfig.UseCase
}

// NewFiltroHandler constrói o handler.
func NewFiltroHandler(uc *filterconfig.UseCase) *FiltroHandler {
	return &FiltroHandler{uc: uc}
}

// Salvar godoc
// @Summary      Salva uma configuração de filtro de relatório (cifrada em repouso)
// @Tags         filtros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalvarFiltroRequest  true  "configuração"
// @Success      201   {object}  dto.FiltroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/filtros [post]
func (h *FiltroHandler) Salvar(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}
	var in dto.SalvarFiltroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: "corpo inválido"})
	}
	out, err := h.uc.Salvar(c.Context(), usuarioID, in)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Lista as configurações de filtro do usuário, decifradas
// @Tags         filtros
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.FiltroResponse
// @Failure      422  {object}  dto.ErrorResponse  "payload que não decifra"
// @Router       /api/filtros [get]
func (h *FiltroHandler) Listar(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}
	out, err := h.uc.Listar(c.Context(), usuarioID)
	if err != nil {
		if errors.Is(err, domain.ErrConfigDecifrar) {
			// Erro estruturado próprio; sem retry automático.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: dto.CodeConfigDecifrar, Message: "configuração de filtro não pôde ser decifrada"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "não foi possível listar filtros"})
	}
	return c.JSON(out)
}

// Excluir godoc
// @Summary      Remove uma configuração de filtro do usuário
// @Tags         filtros
// @Security     Bearer
// @Param        id  path  string  true  "id do filtro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/filtros/{id} [delete]
func (h *FiltroHandler) Excluir(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}
	if err := h.uc.Excluir(c.Context(), c.Params("id"), usuarioID); err != nil {
		if errors.Is(err, domain.ErrNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: dto.CodeNaoEncontrado, Message: "filtro não encontrado"})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: "id obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
