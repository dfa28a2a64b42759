// Package filterconfig gerencia as configurações de filtro de relatório salvas
// por usuário, cifradas em repouso. Falha de decifra é erro estruturado próprio
// (domain.ErrConfigDecifrar), propagado ao chamador e nunca re-tentado.
package filterconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shotfidelidade/painel-api/internal/application/dto"
	"github.com/shotfidelidade/painel-api/internal/application/reports"
	"github.com/shotfidelidade/painel-api/internal/domain"
	"github.com/shotfidelidade/painel-api/internal/domain/entity"
	"github.com/shotfidelidade/painel-api/internal/domain/repository"
)

// Cipher contrato mínimo de cifra usado pelo caso de uso.
type Cipher interface {
	Encrypt(plain []byte) ([]byte, error)
	Decrypt(data []byte) ([]byte, error)
}

// payload é a forma serializada (e depois cifrada) da configuração.
type payload struct {
	Relatorio  string   `json:"relatorio"`
	DataInicio string   `json:"data_inicio"`
	DataFim    string   `json:"data_fim"`
	Campos     []string `json:"campos"`
}

// UseCase CRUD das configurações de filtro salvas.
type UseCase struct {
	repo   repository.FiltroSalvoRepository
	cipher Cipher
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.FiltroSalvoRepository, cipher Cipher) *UseCase {
	return &UseCase{repo: repo, cipher: cipher}
}

// Salvar valida, cifra e persiste uma configuração de filtro.
func (uc *UseCase) Salvar(ctx context.Context, usuarioID string, in dto.SalvarFiltroRequest) (*dto.FiltroResponse, error) {
	if usuarioID == "" || in.Nome == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if _, ok := reports.Tabela(entity.TipoRelatorio(in.Relatorio)); !ok {
		return nil, fmt.Errorf("%w: relatório desconhecido %q", domain.ErrEntradaInvalida, in.Relatorio)
	}
	if _, err := time.Parse("2006-01-02", in.DataInicio); err != nil {
		return nil, fmt.Errorf("%w: data_inicio", domain.ErrEntradaInvalida)
	}
	if _, err := time.Parse("2006-01-02", in.DataFim); err != nil {
		return nil, fmt.Errorf("%w: data_fim", domain.ErrEntradaInvalida)
	}

	raw, err := json.Marshal(payload{
		Relatorio:  in.Relatorio,
		DataInicio: in.DataInicio,
		DataFim:    in.DataFim,
		Campos:     in.Campos,
	})
	if err != nil {
		return nil, err
	}
	cifrado, err := uc.cipher.Encrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("cifrar filtro: %w", err)
	}

	id := uuid.New().String()
	if err := uc.repo.Save(ctx, id, usuarioID, in.Nome, cifrado); err != nil {
		return nil, err
	}
	return &dto.FiltroResponse{
		ID: id, Nome: in.Nome, Relatorio: in.Relatorio,
		DataInicio: in.DataInicio, DataFim: in.DataFim, Campos: in.Campos,
	}, nil
}

// Listar devolve as configurações do usuário decifradas.
// Qualquer payload que não decifre interrompe com ErrConfigDecifrar: melhor o
// operador ver a falha do que o usuário ver um filtro silenciosamente sumido.
func (uc *UseCase) Listar(ctx context.Context, usuarioID string) ([]dto.FiltroResponse, error) {
	regs, err := uc.repo.FindByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFalhaConsulta, err)
	}
	out := make([]dto.FiltroResponse, 0, len(regs))
	for _, reg := range regs {
		raw, err := uc.cipher.Decrypt(reg.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: filtro %s: %v", domain.ErrConfigDecifrar, reg.ID, err)
		}
		var p payload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: filtro %s: %v", domain.ErrConfigDecifrar, reg.ID, err)
		}
		out = append(out, dto.FiltroResponse{
			ID: reg.ID, Nome: reg.Nome, Relatorio: p.Relatorio,
			DataInicio: p.DataInicio, DataFim: p.DataFim, Campos: p.Campos,
		})
	}
	return out, nil
}

// Excluir remove uma configuração do usuário (escopada pelo dono).
func (uc *UseCase) Excluir(ctx context.Context, id, usuarioID string) error {
	if id == "" || usuarioID == "" {
		return domain.ErrEntradaInvalida
	}
	return uc.repo.Delete(ctx, id, usuarioID)
}
