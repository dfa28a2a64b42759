package reports

import (
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
)

// FonteTenant indica qual campo do usuário autenticado alimenta o filtro.
type FonteTenant int

const (
	FonteRede FonteTenant = iota + 1
	FonteEmpresa
)

// tabelaRelatorio é a fonte única de verdade do mapeamento tabela -> coluna de
// tenant / coluna de data / campos permitidos. As colunas de tenant divergem
// por herança do schema ("Rede", "empresa", "Rede_de_loja"); os handlers nunca
// nomeiam colunas, só este registro.
type tabelaRelatorio struct {
	Tabela       string
	ColunaTenant string
	Fonte        FonteTenant
	ColunaData   string
	Campos       []string // projeção permitida; pedido fora daqui é rejeitado
}

var registro = map[entity.TipoRelatorio]tabelaRelatorio{
	entity.RelatorioPromocoes: {
		Tabela:       "relatorio_promocoes",
		ColunaTenant: "Rede",
		Fonte:        FonteRede,
		ColunaData:   "data_resgate",
		Campos:       []string{"nome", "telefone", "promocao", "valor", "desconto", "loja", "data_resgate"},
	},
	entity.RelatorioAniversarios: {
		Tabela:       "relatorio_aniversarios",
		ColunaTenant: "rede",
		Fonte:        FonteRede,
		ColunaData:   "data_aniversario",
		Campos:       []string{"nome", "telefone", "data_aniversario", "loja", "mensagem_enviada"},
	},
	entity.RelatorioPesquisas: {
		Tabela:       "relatorio_pesquisas",
		ColunaTenant: "empresa",
		Fonte:        FonteEmpresa,
		ColunaData:   "data_resposta",
		Campos:       []string{"nome", "telefone", "pergunta", "resposta", "nota", "data_resposta"},
	},
	entity.RelatorioBots: {
		Tabela:       "relatorio_bots",
		ColunaTenant: "Rede_de_loja",
		Fonte:        FonteRede,
		ColunaData:   "data_disparo",
		Campos:       []string{"nome", "telefone", "bot", "status_envio", "data_disparo"},
	},
}

// Tabela devolve a entrada do registro para o tipo, ou false se desconhecido.
func Tabela(tipo entity.TipoRelatorio) (tabelaRelatorio, bool) {
	t, ok := registro[tipo]
	return t, ok
}

// camposValidos verifica se todos os campos pedidos pertencem à projeção
// permitida da tabela.
func (t tabelaRelatorio) camposValidos(campos []string) bool {
	permitidos := make(map[string]struct{}, len(t.Campos))
	for _, c := range t.Campos {
		permitidos[c] = struct{}{}
	}
	for _, c := range campos {
		if _, ok := permitidos[c]; !ok {
			return false
		}
	}
	return true
}

// tenantDoUsuario deriva o valor de filtro do usuário autenticado, conforme a
// convenção da tabela. NUNCA vem da requisição.
func (t tabelaRelatorio) tenantDoUsuario(u *entity.Usuario) string {
	if u == nil {
		return ""
	}
	switch t.Fonte {
	case FonteEmpresa:
		return u.Empresa
	default:
		return u.Rede
	}
}
