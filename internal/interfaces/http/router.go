package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shotfidelidade/painel-api/internal/application/auth"
	"github.com/shotfidelidade/painel-api/internal/application/filterconfig"
	"github.com/shotfidelidade/painel-api/internal/application/permissions"
	"github.com/shotfidelidade/painel-api/internal/application/reports"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	PermSvc     *permissions.Service
	ReportsSvc  *reports.Service
	FiltroUC    *filterconfig.UseCase
	UsuarioRepo repository.UsuarioRepository
	JWTSecret   string
	Cookie      CookieConfig
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Escopo: sessão opcional. Sem identidade renderiza "Não autenticado",
	// nunca bloqueia a navegação.
	escopoHandler := NewEscopoHandler(deps.UsuarioRepo)
	api.Get("/escopo",
		SessaoOpcional(deps.JWTSecret, deps.Cookie.Name, deps.PermSvc),
		escopoHandler.Get)

	// Rotas protegidas (token de sessão assinado ou cookie legado)
	protected := api.Group("/", SessaoMiddleware(deps.JWTSecret, deps.Cookie.Name, deps.PermSvc))

	protected.Get("/auth/perfil", authHandler.Perfil)

	// Permissões: modelo de leitura + invalidação explícita
	permHandler := NewPermissaoHandler(deps.AuthUC, deps.Cookie)
	protected.Get("/permissoes", permHandler.Get)
	protected.Post("/permissoes/atualizar", permHandler.Atualizar)

	// Relatórios: cada tela atrás da sua permissão; o filtro de tenant é
	// aplicado dentro do gateway, não aqui.
	relatorioHandler := NewRelatorioHandler(deps.ReportsSvc, deps.UsuarioRepo)
	relatorios := protected.Group("/relatorios")
	relatorios.Get("/promocoes", RequirePermissao(entity.PermPromocoes), relatorioHandler.Promocoes)
	relatorios.Get("/aniversarios", RequirePermissao(entity.PermAniversarios), relatorioHandler.Aniversarios)
	relatorios.Get("/pesquisas", RequirePermissao(entity.PermPesquisas), relatorioHandler.Pesquisas)
	relatorios.Get("/bots", RequirePermissao(entity.PermBots), relatorioHandler.Bots)

	// Filtros salvos (escopados pelo dono da sessão)
	filtroHandler := NewFiltroHandler(deps.FiltroUC)
	filtros := protected.Group("/filtros")
	filtros.Post("/", filtroHandler.Salvar)
	filtros.Get("/", filtroHandler.Listar)
	filtros.Delete("/:id", filtroHandler.Excluir)
}
