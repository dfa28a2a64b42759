package repository

import "context"

// FiltroSalvoRepository porto de persistência das configurações de filtro
// cifradas. O repositório só vê o payload opaco; cifra/decifra é papel do
// caso de uso com o Cipher injetado.
type FiltroSalvoRepository interface {
	Save(ctx context.Context, id, usuarioID, nome string, payload []byte) error
	FindByUsuario(ctx context.Context, usuarioID string) ([]FiltroCifrado, error)
	Delete(ctx context.Context, id, usuarioID string) error
}

// FiltroCifrado registro cru como persistido: payload ainda cifrado.
type FiltroCifrado struct {
	ID        string
	UsuarioID string
	Nome      string
	Payload   []byte
}
