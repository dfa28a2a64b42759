package dto

// LoginRequest entrada do login (email + senha).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PerfilResponse saída do usuário autenticado (sem hash de senha).
type PerfilResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Nome       string          `json:"nome"`
	Empresa    string          `json:"empresa,omitempty"`
	Rede       string          `json:"rede,omitempty"`
	SubRede    string          `json:"sub_rede,omitempty"`
	Escopo     string          `json:"escopo"` // escopo de tenant resolvido para exibição
	Permissoes map[string]bool `json:"permissoes"`
}

// LoginResponse saída do login: token de sessão assinado + perfil.
type LoginResponse struct {
	Token  string         `json:"token"`
	Perfil PerfilResponse `json:"perfil"`
}

// EscopoResponse estado de exibição do escopo de tenant (GET /api/escopo).
type EscopoResponse struct {
	Texto string `json:"texto"` // texto fixo por variante ("Carregando...", etc.)
}

// PermissoesResponse conjunto corrente de permissões da sessão.
type PermissoesResponse struct {
	Permissoes map[string]bool `json:"permissoes"`
	// Origem indica de onde veio o conjunto: "sessao" (snapshot do login)
	// ou "diretorio" (após refresh).
	Origem string `json:"origem"`
}
