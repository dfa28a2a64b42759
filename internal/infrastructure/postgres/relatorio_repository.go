package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo leitura do store de relatórios sobre PostgreSQL.
// Os nomes de tabela/coluna chegam SEMPRE do registro central de relatórios,
// nunca da requisição; ainda assim todo identificador é citado, porque o
// schema herdado mistura caixa ("Rede", "Rede_de_loja").
type RelatorioRepo struct {
	pool *pgxpool.Pool
}

// NewRelatorioRepository constrói o adaptador.
func NewRelatorioRepository(pool *pgxpool.Pool) *RelatorioRepo {
	return &RelatorioRepo{pool: pool}
}

// QueryLinhas executa a consulta tenant-escopada: igualdade obrigatória na
// coluna de tenant, intervalo de datas inclusivo nas duas pontas e projeção
// dos campos pedidos. A coluna de tenant é selecionada sempre, mesmo fora da
// projeção, para a verificação de integridade no gateway.
func (r *RelatorioRepo) QueryLinhas(ctx context.Context, q repository.ConsultaRelatorio) ([]entity.Linha, error) {
	cols := make([]string, 0, len(q.Campos)+1)
	for _, c := range q.Campos {
		cols = append(cols, quoteIdent(c))
	}
	cols = append(cols, quoteIdent(q.ColunaTenant))

	query, args, err := squirrel.Select(cols...).
		From(quoteIdent(q.Tabela)).
		Where(squirrel.Eq{quoteIdent(q.ColunaTenant): q.Tenant}).
		Where(squirrel.GtOrEq{quoteIdent(q.ColunaData): q.Inicio}).
		Where(squirrel.LtOrEq{quoteIdent(q.ColunaData): q.Fim}).
		OrderBy(quoteIdent(q.ColunaData) + " ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("montar consulta de relatório: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar %s: %w", q.Tabela, err)
	}
	defer rows.Close()

	var linhas []entity.Linha
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan de %s: %w", q.Tabela, err)
		}
		l := entity.Linha{Campos: make(map[string]any, len(q.Campos))}
		for i, campo := range q.Campos {
			l.Campos[campo] = vals[i]
		}
		// último valor selecionado é a coluna de tenant
		if s, ok := vals[len(vals)-1].(string); ok {
			l.Tenant = s
		}
		linhas = append(linhas, l)
	}
	return linhas, rows.Err()
}

// CountSemFiltro conta as linhas do período sem o filtro de tenant, para o
// diagnóstico do operador.
func (r *RelatorioRepo) CountSemFiltro(ctx context.Context, q repository.ConsultaRelatorio) (int, error) {
	query, args, err := squirrel.Select("count(*)").
		From(quoteIdent(q.Tabela)).
		Where(squirrel.GtOrEq{quoteIdent(q.ColunaData): q.Inicio}).
		Where(squirrel.LtOrEq{quoteIdent(q.ColunaData): q.Fim}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("montar contagem de %s: %w", q.Tabela, err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("contar %s: %w", q.Tabela, err)
	}
	return total, nil
}

// quoteIdent cita um identificador vindo do registro de relatórios.
func quoteIdent(s string) string {
	return `"` + s + `"`
}
