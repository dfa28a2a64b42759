package entity

import (
	"strings"
	"time"
)

// SistemaShot é a tag de produto que identifica usuários do painel Shot.
// Registros com outro valor de `sistema` na tabela de usuários pertencem a
// outra linha de produto e são tratados como inexistentes pelas consultas daqui.
const SistemaShot = "shot"

// EscopoNaoDefinido é o sentinela devolvido quando o usuário não tem
// sub_rede nem empresa (ou quando não há usuário).
const EscopoNaoDefinido = "Não definida"

// Chaves de permissão por tela. Correspondem às colunas tela* do diretório
// de usuários; a decodificação sim/nao fica confinada ao adaptador postgres.
const (
	PermPromocoes    = "telaShot_promocoes"
	PermRelatorios   = "telaShot_relatorios"
	PermAniversarios = "telaShot_aniversarios"
	PermPesquisas    = "telaShot_pesquisas"
	PermUsuarios     = "telaShot_usuarios"
	PermBots         = "telaShot_bots"
)

// Usuario representa um usuário do painel (pertence a uma rede/empresa).
type Usuario struct {
	ID           string
	Email        string // sempre normalizado: minúsculas, sem espaços nas pontas
	Nome         string
	Empresa      string // pode ser vazio
	Rede         string // agrupamento de tenant mais amplo que SubRede; pode ser vazio
	SubRede      string // agrupamento mais específico; pode ser vazio
	Sistema      string // deve ser SistemaShot para este produto
	PasswordHash string // bcrypt, nunca em claro no domínio após persistir
	Status       string // active, inactive, suspended
	Permissoes   Permissoes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Permissoes é o conjunto fechado de flags booleanas por tela, derivado do
// registro do usuário no momento da leitura. É um objeto de valor: recalculado
// por requisição ou mantido em cache pela sessão, nunca persistido.
type Permissoes struct {
	Promocoes    bool
	Relatorios   bool
	Aniversarios bool
	Pesquisas    bool
	Usuarios     bool
	Bots         bool
}

// Tem devolve o valor da flag para a chave dada; chave desconhecida é sempre false.
func (p Permissoes) Tem(chave string) bool {
	switch chave {
	case PermPromocoes:
		return p.Promocoes
	case PermRelatorios:
		return p.Relatorios
	case PermAniversarios:
		return p.Aniversarios
	case PermPesquisas:
		return p.Pesquisas
	case PermUsuarios:
		return p.Usuarios
	case PermBots:
		return p.Bots
	default:
		return false
	}
}

// NormalizarEmail aplica a normalização canônica usada em TODOS os pontos de
// busca: minúsculas e trim. Divergência de caixa/espaço entre call sites causa
// lookup perdido, então a normalização vive num único lugar.
func NormalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
