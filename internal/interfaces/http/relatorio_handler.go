package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/reports"
	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

// RelatorioHandler expõe as listagens de relatório, uma por domínio, todas
// atrás do mesmo contrato do gateway: filtro de tenant derivado no servidor.
type RelatorioHandler struct {
	svc         *reports.Service
	usuarioRepo repository.UsuarioRepository
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(svc *reports.Service, usuarioRepo repository.UsuarioRepository) *RelatorioHandler {
	return &RelatorioHandler{svc: svc, usuarioRepo: usuarioRepo}
}

// Promocoes godoc
// @Summary      Relatório de resgates de promoções do tenant do usuário
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        data_inicio  query  string  false  "YYYY-MM-DD; default: primeiro dia do mês"
// @Param        data_fim     query  string  false  "YYYY-MM-DD; default: hoje"
// @Param        campos       query  string  false  "campos separados por vírgula"
// @Success      200  {object}  dto.RelatorioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/relatorios/promocoes [get]
func (h *RelatorioHandler) Promocoes(c *fiber.Ctx) error {
	return h.listar(c, entity.RelatorioPromocoes)
}

// Aniversarios relatório de aniversariantes; mesmo contrato de Promocoes.
func (h *RelatorioHandler) Aniversarios(c *fiber.Ctx) error {
	return h.listar(c, entity.RelatorioAniversarios)
}

// Pesquisas relatório de respostas de pesquisa; filtra por empresa.
func (h *RelatorioHandler) Pesquisas(c *fiber.Ctx) error {
	return h.listar(c, entity.RelatorioPesquisas)
}

// Bots relatório de disparos de bot.
func (h *RelatorioHandler) Bots(c *fiber.Ctx) error {
	return h.listar(c, entity.RelatorioBots)
}

func (h *RelatorioHandler) listar(c *fiber.Ctx, tipo entity.TipoRelatorio) error {
	email := GetEmail(c)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}

	var req dto.RelatorioRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: "parâmetros de consulta inválidos"})
	}
	periodo, err := parsePeriodo(req.DataInicio, req.DataFim)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: err.Error()})
	}

	// O usuário completo vem do diretório: rede/empresa do filtro nunca vêm
	// da requisição nem de claims antigos.
	u, err := h.usuarioRepo.FindByEmail(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "diretório de usuários indisponível"})
	}
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeNaoAutenticado, Message: "Não autenticado"})
	}

	res, err := h.svc.Listar(c.Context(), u, tipo, periodo, parseCampos(req.Campos))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeEntradaInvalida, Message: err.Error()})
		case errors.Is(err, domain.ErrIntegridadeFiltro):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTEGRIDADE_FILTRO", Message: "resultado descartado por violação de integridade do filtro"})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeFalhaConsulta, Message: "store de relatórios indisponível"})
		}
	}

	linhas := make([]map[string]any, 0, len(res.Linhas))
	for _, l := range res.Linhas {
		linhas = append(linhas, l.Campos)
	}
	return c.JSON(dto.RelatorioResponse{
		Linhas:         linhas,
		TotalSemFiltro: res.TotalSemFiltro,
		Motivo:         res.Motivo,
	})
}

// parsePeriodo aplica os defaults do painel: primeiro dia do mês corrente até
// hoje, intervalo inclusivo.
func parsePeriodo(inicio, fim string) (entity.Periodo, error) {
	agora := time.Now()
	p := entity.Periodo{
		Inicio: time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, time.UTC),
		Fim:    time.Date(agora.Year(), agora.Month(), agora.Day(), 23, 59, 59, 0, time.UTC),
	}
	if inicio != "" {
		t, err := time.Parse("2006-01-02", inicio)
		if err != nil {
			return entity.Periodo{}, errors.New("data_inicio inválida, use YYYY-MM-DD")
		}
		p.Inicio = t
	}
	if fim != "" {
		t, err := time.Parse("2006-01-02", fim)
		if err != nil {
			return entity.Periodo{}, errors.New("data_fim inválida, use YYYY-MM-DD")
		}
		// fim do dia para manter a ponta superior inclusiva
		p.Fim = t.Add(24*time.Hour - time.Second)
	}
	return p, nil
}

func parseCampos(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
