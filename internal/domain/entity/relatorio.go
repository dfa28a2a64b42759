package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoRelatorio identifica cada domínio de relatório do painel.
type TipoRelatorio string

const (
	RelatorioPromocoes    TipoRelatorio = "promocoes"
	RelatorioAniversarios TipoRelatorio = "aniversarios"
	RelatorioPesquisas    TipoRelatorio = "pesquisas"
	RelatorioBots         TipoRelatorio = "bots"
)

// Periodo intervalo de datas inclusivo nas duas pontas.
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}

// Linha é uma linha genérica de relatório: projeção campo -> valor mais o valor
// da coluna de tenant, carregado sempre (mesmo quando não projetado) para que o
// gateway possa verificar a integridade do filtro.
type Linha struct {
	Campos map[string]any
	Tenant string // valor da coluna de tenant da tabela de origem
}

// Valor devolve o campo projetado como string (vazio se ausente ou de outro tipo).
func (l Linha) Valor(campo string) string {
	s, _ := l.Campos[campo].(string)
	return s
}

// ValorDecimal devolve o campo projetado como decimal (zero se ausente).
func (l Linha) ValorDecimal(campo string) decimal.Decimal {
	d, _ := l.Campos[campo].(decimal.Decimal)
	return d
}

// ResultadoRelatorio linhas filtradas por tenant mais diagnóstico.
type ResultadoRelatorio struct {
	Linhas []Linha
	// TotalSemFiltro é a contagem de linhas no período ANTES do filtro de
	// tenant. Serve para o operador detectar anomalias (resultado filtrado
	// com mais de um tenant distinto indica bypass do filtro).
	TotalSemFiltro int
	// Motivo de resultado vazio quando a consulta nem foi emitida
	// (ex. tenant do usuário vazio -> fail closed).
	Motivo string
}
