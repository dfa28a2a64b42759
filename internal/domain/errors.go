package domain

import "errors"

// Erros de domínio (sem dependências externas). A taxonomia distingue
// "não encontrado" de "falha de consulta": um lookup que erra por
// infraestrutura nunca pode ser confundido com usuário ausente, porque a
// política de fallback difere (ver ErrFalhaConsulta).
var (
	ErrNaoEncontrado        = errors.New("recurso não encontrado")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrNaoAutenticado       = errors.New("não autenticado")
	ErrPermissaoNegada      = errors.New("acesso negado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")

	// ErrFalhaConsulta: diretório ou store de relatórios inacessível.
	// Estado de permissão desconhecido bloqueia acesso (fail closed) no
	// gate de rotas; a exibição de escopo mostra a variante de erro em vez
	// de bloquear a navegação.
	ErrFalhaConsulta = errors.New("falha ao consultar fonte externa")

	// ErrIntegridadeFiltro: o resultado filtrado contém mais de um valor
	// distinto de tenant, o que indica bug de bypass do filtro obrigatório.
	ErrIntegridadeFiltro = errors.New("violação de integridade do filtro de tenant")

	// ErrConfigDecifrar: configuração de filtro salva não pôde ser decifrada.
	// Propagado com código próprio, nunca re-tentado automaticamente.
	ErrConfigDecifrar = errors.New("falha ao decifrar configuração de filtro")
)
