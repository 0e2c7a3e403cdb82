package services

import (
	"time"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/repositories"
)

// FaturaService define a interface do serviço de faturas (boletos).
type FaturaService interface {
	// GetFaturasPorPeriodo retorna as parcelas do documento com
	// vencimento no período, na projeção pública. Bloqueia pela
	// latência simulada: chamar fora da thread da UI.
	GetFaturasPorPeriodo(cnpjCPF string, start, end time.Time) ([]*models.FaturaPublic, error)

	// GetFaturasAbertas retorna as parcelas em aberto ou vencidas, em
	// ordem de cobrança.
	GetFaturasAbertas(cnpjCPF string) ([]*models.FaturaPublic, error)
}

// faturaServiceImpl é a implementação de FaturaService.
type faturaServiceImpl struct {
	repo repositories.FaturaRepository
	rede simuladorRede
}

// NewFaturaService cria uma nova instância de FaturaService.
func NewFaturaService(repo repositories.FaturaRepository, cfg *core.Config) FaturaService {
	if repo == nil || cfg == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewFaturaService")
	}
	return &faturaServiceImpl{
		repo: repo,
		rede: novoSimuladorRede(cfg),
	}
}

func (s *faturaServiceImpl) GetFaturasPorPeriodo(cnpjCPF string, start, end time.Time) ([]*models.FaturaPublic, error) {
	if err := s.rede.chamada(); err != nil {
		appLogger.Warnf("Consulta de faturas falhou (simulação): %v", err)
		return nil, core.WrapErrorf(err, "falha ao consultar faturas do período")
	}

	parcelas, err := s.repo.GetByCNPJAndPeriod(cnpjCPF, start, end)
	if err != nil {
		return nil, err
	}
	appLogger.Debugf("Consulta de faturas: %d parcelas entre %s e %s.",
		len(parcelas), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return models.ToFaturaPublicList(parcelas), nil
}

func (s *faturaServiceImpl) GetFaturasAbertas(cnpjCPF string) ([]*models.FaturaPublic, error) {
	if err := s.rede.chamada(); err != nil {
		appLogger.Warnf("Consulta de faturas em aberto falhou (simulação): %v", err)
		return nil, core.WrapErrorf(err, "falha ao consultar faturas em aberto")
	}

	parcelas, err := s.repo.GetAbertas(cnpjCPF)
	if err != nil {
		return nil, err
	}
	return models.ToFaturaPublicList(parcelas), nil
}
