package repository

import (
	"context"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
)

// UsuarioRepository define o porto de leitura do diretório de usuários (DIP).
// Contrato de erro: (nil, nil) quando o usuário não existe ou pertence a outro
// sistema; erro não-nil só para falha de infraestrutura, envolvido como
// domain.ErrFalhaConsulta pelo adaptador.
type UsuarioRepository interface {
	// FindByEmail busca por email exato; o chamador é responsável por
	// normalizar (entity.NormalizarEmail) antes da busca.
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	FindByID(ctx context.Context, id string) (*entity.Usuario, error)
}
