package entity

import "time"

// FiltroSalvo é uma configuração de filtro de relatório salva pelo usuário.
// O payload (período, campos, tipo de relatório) é cifrado em repouso; o
// domínio só vê a forma decifrada.
type FiltroSalvo struct {
	ID        string
	UsuarioID string
	Nome      string
	Relatorio TipoRelatorio
	Periodo   Periodo
	Campos    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
