package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// Colunas da tabela de usuários. As flags de tela são TEXT "sim"/"nao" por
// herança do schema; a conversão para booleano acontece SÓ aqui, no scan.
var usuarioColunas = []string{
	"id", "email", "nome", "empresa", "rede", "sub_rede", "sistema",
	"password_hash", "status",
	`"telaShot_promocoes"`, `"telaShot_relatorios"`, `"telaShot_aniversarios"`,
	`"telaShot_pesquisas"`, `"telaShot_usuarios"`, `"telaShot_bots"`,
	"created_at", "updated_at",
}

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository constrói o adaptador de leitura do diretório de usuários.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

// FindByEmail busca por email exato (o chamador normaliza antes). Linhas de
// outro produto (sistema != shot) são invisíveis para o painel.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query, args, err := squirrel.Select(usuarioColunas...).
		From("usuarios").
		Where("lower(email) = ?", email).
		Where(squirrel.Eq{"sistema": entity.SistemaShot}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("montar consulta de usuário: %w", err)
	}
	return r.scanUsuario(r.pool.QueryRow(ctx, query, args...), "email")
}

// FindByID busca por identificador.
func (r *UsuarioRepo) FindByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query, args, err := squirrel.Select(usuarioColunas...).
		From("usuarios").
		Where(squirrel.Eq{"id": id, "sistema": entity.SistemaShot}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("montar consulta de usuário: %w", err)
	}
	return r.scanUsuario(r.pool.QueryRow(ctx, query, args...), "id")
}

func (r *UsuarioRepo) scanUsuario(row pgx.Row, chave string) (*entity.Usuario, error) {
	var (
		u entity.Usuario
		// flags cruas como persistidas; NULL vira string vazia via ponteiro
		promocoes, relatorios, aniversarios, pesquisas, usuarios, bots *string
		empresa, rede, subRede                                         *string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Nome, &empresa, &rede, &subRede, &u.Sistema,
		&u.PasswordHash, &u.Status,
		&promocoes, &relatorios, &aniversarios, &pesquisas, &usuarios, &bots,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuário por %s: %w", chave, err)
	}
	u.Empresa = deref(empresa)
	u.Rede = deref(rede)
	u.SubRede = deref(subRede)
	u.Permissoes = entity.Permissoes{
		Promocoes:    simNao(promocoes),
		Relatorios:   simNao(relatorios),
		Aniversarios: simNao(aniversarios),
		Pesquisas:    simNao(pesquisas),
		Usuarios:     simNao(usuarios),
		Bots:         simNao(bots),
	}
	return &u, nil
}

// simNao converte a flag textual em booleano: "sim" -> true; qualquer outra
// coisa, inclusive NULL e coluna ausente, -> false. Nunca confiar em campo
// faltante como permissivo.
func simNao(v *string) bool {
	if v == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*v), "sim")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
