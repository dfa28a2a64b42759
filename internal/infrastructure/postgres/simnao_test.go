package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestSimNao(t *testing.T) {
	casos := []struct {
		nome     string
		valor    *string
		esperado bool
	}{
		{"sim", ptr("sim"), true},
		{"sim com espacos", ptr("  sim "), true},
		{"SIM maiusculo", ptr("SIM"), true},
		{"nao", ptr("nao"), false},
		{"vazio", ptr(""), false},
		{"lixo", ptr("yes"), false},
		{"null", nil, false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, simNao(c.valor),
				"só o literal sim concede; ausência nunca é permissiva")
		})
	}
}
