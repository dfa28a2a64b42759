package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

var _ repository.FiltroSalvoRepository = (*FiltroRepo)(nil)

// FiltroRepo persistência das configurações de filtro cifradas.
type FiltroRepo struct {
	pool *pgxpool.Pool
}

// NewFiltroRepository constrói o adaptador.
func NewFiltroRepository(pool *pgxpool.Pool) *FiltroRepo {
	return &FiltroRepo{pool: pool}
}

// Save insere uma configuração; o payload chega já cifrado.
func (r *FiltroRepo) Save(ctx context.Context, id, usuarioID, nome string, payload []byte) error {
	now := time.Now()
	query, args, err := squirrel.Insert("filtros_salvos").
		Columns("id", "usuario_id", "nome", "payload", "created_at", "updated_at").
		Values(id, usuarioID, nome, payload, now, now).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("montar insert de filtro: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("inserir filtro: %w", err)
	}
	return nil
}

// FindByUsuario lista as configurações do usuário (payload ainda cifrado).
func (r *FiltroRepo) FindByUsuario(ctx context.Context, usuarioID string) ([]repository.FiltroCifrado, error) {
	query, args, err := squirrel.Select("id", "usuario_id", "nome", "payload").
		From("filtros_salvos").
		Where(squirrel.Eq{"usuario_id": usuarioID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("montar select de filtros: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar filtros: %w", err)
	}
	defer rows.Close()

	var out []repository.FiltroCifrado
	for rows.Next() {
		var f repository.FiltroCifrado
		if err := rows.Scan(&f.ID, &f.UsuarioID, &f.Nome, &f.Payload); err != nil {
			return nil, fmt.Errorf("scan de filtro: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Delete remove uma configuração escopada pelo dono.
func (r *FiltroRepo) Delete(ctx context.Context, id, usuarioID string) error {
	query, args, err := squirrel.Delete("filtros_salvos").
		Where(squirrel.Eq{"id": id, "usuario_id": usuarioID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("montar delete de filtro: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("excluir filtro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}
