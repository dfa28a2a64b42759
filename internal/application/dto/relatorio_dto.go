package dto

// RelatorioRequest parâmetros para GET /api/relatorios/{dominio}.
// Não existe parâmetro de tenant: o filtro é derivado no servidor a partir do
// usuário autenticado, sempre.
type RelatorioRequest struct {
	DataInicio string `query:"data_inicio"` // YYYY-MM-DD; default: primeiro dia do mês
	DataFim    string `query:"data_fim"`    // YYYY-MM-DD; default: hoje
	Campos     string `query:"campos"`      // lista separada por vírgula; vazio = todos os permitidos
}

// RelatorioResponse linhas filtradas mais diagnóstico do operador.
type RelatorioResponse struct {
	Linhas []map[string]any `json:"linhas"`
	// TotalSemFiltro conta as linhas do período antes do filtro de tenant
	// (-1 quando a contagem não pôde ser obtida).
	TotalSemFiltro int    `json:"total_sem_filtro"`
	Motivo         string `json:"motivo,omitempty"` // ex. filtro de tenant vazio
}
