// Package reports implementa o gateway de consulta de relatórios: toda leitura
// aplica obrigatoriamente o filtro de tenant derivado do usuário autenticado
// antes de emitir qualquer consulta. Filtro vazio falha fechado (zero linhas),
// nunca aberto.
package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
	"github.com/shotfidelidade/painel-api/pkg/logger"
)

// MotivoFiltroVazio é o diagnóstico devolvido quando o usuário não tem valor
// de tenant resolvível: a consulta nem chega a ser emitida.
const MotivoFiltroVazio = "filtro de tenant vazio: consulta não emitida"

// Service é o gateway de relatórios.
type Service struct {
	repo repository.RelatorioRepository
	log  *logger.Logger
	col  *collate.Collator
}

// NewService constrói o gateway.
func NewService(repo repository.RelatorioRepository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		// Ordenação de nomes com regras pt-BR (acentos ordenados junto da base).
		col: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
}

// Listar executa a leitura tenant-escopada de um relatório.
//
// Contrato (igual para todos os domínios de relatório):
//  1. o valor de tenant vem do usuário autenticado, segundo a convenção da
//     tabela no registro; a requisição não pode pedir outro tenant;
//  2. tenant vazio -> zero linhas com Motivo preenchido, sem tocar o store;
//  3. igualdade obrigatória na coluna de tenant + intervalo de datas inclusivo
//     + projeção só dos campos pedidos (validados contra o registro);
//  4. o resultado carrega TotalSemFiltro para diagnóstico e é verificado:
//     mais de um tenant distinto nas linhas devolvidas é violação de
//     integridade (bug de bypass) e vira erro.
func (s *Service) Listar(ctx context.Context, u *entity.Usuario, tipo entity.TipoRelatorio, periodo entity.Periodo, campos []string) (*entity.ResultadoRelatorio, error) {
	if u == nil {
		return nil, domain.ErrNaoAutenticado
	}
	tab, ok := Tabela(tipo)
	if !ok {
		return nil, fmt.Errorf("%w: relatório desconhecido %q", domain.ErrEntradaInvalida, tipo)
	}
	if len(campos) == 0 {
		campos = tab.Campos
	}
	if !tab.camposValidos(campos) {
		return nil, fmt.Errorf("%w: campo fora da projeção permitida", domain.ErrEntradaInvalida)
	}
	if periodo.Fim.Before(periodo.Inicio) {
		return nil, fmt.Errorf("%w: período invertido", domain.ErrEntradaInvalida)
	}

	tenant := strings.TrimSpace(tab.tenantDoUsuario(u))
	if tenant == "" {
		// Fail closed: sem valor de tenant não há consulta sem filtro.
		s.log.Warn().Str("usuario", u.ID).Str("relatorio", string(tipo)).
			Msg("tenant vazio, relatório devolvido vazio")
		return &entity.ResultadoRelatorio{Motivo: MotivoFiltroVazio}, nil
	}

	q := repository.ConsultaRelatorio{
		Tabela:       tab.Tabela,
		ColunaTenant: tab.ColunaTenant,
		Tenant:       tenant,
		ColunaData:   tab.ColunaData,
		Inicio:       periodo.Inicio,
		Fim:          periodo.Fim,
		Campos:       campos,
	}

	linhas, err := s.repo.QueryLinhas(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFalhaConsulta, err)
	}
	if err := verificarIntegridade(linhas, tenant); err != nil {
		s.log.Error().Err(err).Str("relatorio", string(tipo)).Str("tenant", tenant).
			Msg("resultado com tenant divergente do filtro")
		return nil, err
	}

	total, err := s.repo.CountSemFiltro(ctx, q)
	if err != nil {
		// Diagnóstico opcional: a falha na contagem não invalida o resultado filtrado.
		s.log.Warn().Err(err).Str("relatorio", string(tipo)).Msg("contagem sem filtro indisponível")
		total = -1
	}

	s.ordenarPorNome(linhas, campos)

	return &entity.ResultadoRelatorio{Linhas: linhas, TotalSemFiltro: total}, nil
}

// verificarIntegridade garante que todas as linhas devolvidas pertencem ao
// tenant filtrado: len(distinct) <= 1 e, se 1, igual ao filtro pedido.
func verificarIntegridade(linhas []entity.Linha, tenant string) error {
	for _, l := range linhas {
		if l.Tenant != tenant {
			return fmt.Errorf("%w: esperado %q, encontrado %q",
				domain.ErrIntegridadeFiltro, tenant, l.Tenant)
		}
	}
	return nil
}

// ordenarPorNome ordena as linhas pelo campo "nome" com colação pt-BR quando
// o campo foi projetado; sem o campo a ordem do store é mantida.
func (s *Service) ordenarPorNome(linhas []entity.Linha, campos []string) {
	temNome := false
	for _, c := range campos {
		if c == "nome" {
			temNome = true
			break
		}
	}
	if !temNome {
		return
	}
	sort.SliceStable(linhas, func(i, j int) bool {
		return s.col.CompareString(linhas[i].Valor("nome"), linhas[j].Valor("nome")) < 0
	})
}
