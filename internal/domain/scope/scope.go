// Package scope resolve a identidade de escopo de tenant exibida e filtrada
// para um usuário: sub_rede quando presente, senão empresa, senão o sentinela
// "Não definida". Funções puras, sem efeitos e totais sobre o domínio de entrada.
package scope

import (
	"strings"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
)

// Tag discrimina as variantes de Estado.
type Tag int

const (
	TagCarregando Tag = iota + 1
	TagErro
	TagNaoAutenticado
	TagSucesso
)

// Estado é o valor etiquetado com exatamente quatro variantes que dirige a
// exibição do escopo. Zero value (Tag == 0) é malformado de propósito:
// Formatar o trata com o mesmo sentinela do usuário ausente.
type Estado struct {
	Tag      Tag
	Mensagem string // preenchido em TagErro
	Escopo   string // preenchido em TagSucesso
}

// Textos fixos de exibição por variante.
const (
	TextoCarregando     = "Carregando..."
	TextoErro           = "Erro ao carregar"
	TextoNaoAutenticado = "Não autenticado"
)

// Resolver devolve o valor de escopo efetivo do usuário.
// A ordem sub_rede > empresa nunca pode ser invertida: sub_rede é o
// agrupamento mais específico e tem prioridade quando presente.
func Resolver(u *entity.Usuario) string {
	if u == nil {
		return entity.EscopoNaoDefinido
	}
	if s := strings.TrimSpace(u.SubRede); s != "" {
		return s
	}
	if e := strings.TrimSpace(u.Empresa); e != "" {
		return e
	}
	return entity.EscopoNaoDefinido
}

// ResolverEstado deriva o Estado de exibição. A precedência é contrato de
// design e deve ser avaliada EXATAMENTE nesta ordem, primeira que casar vence:
// erro > carregando > não autenticado > sucesso. Um erro aparece mesmo que
// carregando também esteja true, e carregando aparece antes de cair em
// "não autenticado".
func ResolverEstado(carregando bool, u *entity.Usuario, err error) Estado {
	if err != nil {
		return Estado{Tag: TagErro, Mensagem: err.Error()}
	}
	if carregando {
		return Estado{Tag: TagCarregando}
	}
	if u == nil {
		return Estado{Tag: TagNaoAutenticado}
	}
	return Estado{Tag: TagSucesso, Escopo: Resolver(u)}
}

// Formatar mapeia cada variante para seu texto fixo. Total: entrada
// malformada (tag fora das quatro) resolve para o sentinela "Não definida",
// nunca para string vazia nem panic.
func Formatar(e Estado) string {
	switch e.Tag {
	case TagCarregando:
		return TextoCarregando
	case TagErro:
		return TextoErro
	case TagNaoAutenticado:
		return TextoNaoAutenticado
	case TagSucesso:
		if e.Escopo == "" {
			return entity.EscopoNaoDefinido
		}
		return e.Escopo
	default:
		return entity.EscopoNaoDefinido
	}
}
