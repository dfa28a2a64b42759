package dto

// SalvarFiltroRequest cria uma configuração de filtro salva.
type SalvarFiltroRequest struct {
	Nome       string   `json:"nome" validate:"required,min=1,max=100"`
	Relatorio  string   `json:"relatorio" validate:"required"`
	DataInicio string   `json:"data_inicio" validate:"required"`
	DataFim    string   `json:"data_fim" validate:"required"`
	Campos     []string `json:"campos"`
}

// FiltroResponse configuração de filtro decifrada.
type FiltroResponse struct {
	ID         string   `json:"id"`
	Nome       string   `json:"nome"`
	Relatorio  string   `json:"relatorio"`
	DataInicio string   `json:"data_inicio"`
	DataFim    string   `json:"data_fim"`
	Campos     []string `json:"campos"`
}
