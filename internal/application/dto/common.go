package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de erro expostos pela API. Toda falha externa é convertida para um
// destes antes de chegar à camada de apresentação.
const (
	CodeNaoAutenticado  = "NAO_AUTENTICADO"
	CodePermissaoNegada = "PERMISSAO_NEGADA"
	CodeNaoEncontrado   = "NAO_ENCONTRADO"
	CodeFalhaConsulta   = "FALHA_CONSULTA"
	CodeEntradaInvalida = "ENTRADA_INVALIDA"
	CodeConfigDecifrar  = "CONFIG_DECRYPT_FAILED"
)
