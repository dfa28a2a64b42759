package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais os campos próprios da sessão do
// painel. O token assinado substitui o antigo cookie "email_sufixo": a
// identidade vira uma estrutura de claims verificada, não uma convenção de
// split em string.
//
// Permissoes carrega o snapshot de permissões embutido no login (fast path).
// O middleware pode decidir rotas sem consultar o diretório; um refresh
// explícito força o slow path e substitui o snapshot por inteiro.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string          `json:"user_id"`
	Email      string          `json:"email"`
	Escopo     string          `json:"escopo"`
	Permissoes map[string]bool `json:"permissoes"`
}

// Generate gera um token de sessão assinado (HS256).
func Generate(secret, userID, email, escopo string, permissoes map[string]bool, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     userID,
		Email:      email,
		Escopo:     escopo,
		Permissoes: permissoes,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve os claims da sessão.
// Retorna erro se o token é inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
