package repository

import (
	"context"
	"time"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
)

// ConsultaRelatorio descreve uma leitura tenant-escopada do store de relatórios.
// O valor de tenant vem SEMPRE do usuário autenticado, nunca da requisição.
type ConsultaRelatorio struct {
	Tabela       string
	ColunaTenant string
	Tenant       string
	ColunaData   string
	Inicio       time.Time // inclusivo
	Fim          time.Time // inclusivo
	Campos       []string  // projeção já validada contra o registro de tabelas
}

// RelatorioRepository porto de leitura do store de relatórios.
type RelatorioRepository interface {
	// QueryLinhas executa a consulta com igualdade obrigatória na coluna de
	// tenant e intervalo de datas inclusivo, projetando só os campos pedidos.
	QueryLinhas(ctx context.Context, q ConsultaRelatorio) ([]entity.Linha, error)
	// CountSemFiltro conta as linhas do período SEM o filtro de tenant,
	// para diagnóstico do operador.
	CountSemFiltro(ctx context.Context, q ConsultaRelatorio) (int, error)
}
