package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/repositories"
)

// ResumoDashboard agrega os números exibidos na tela inicial do
// portal. Os somatórios usam decimal para não acumular erro binário.
type ResumoDashboard struct {
	PedidosEmAndamento int
	PedidosUltimoMes   int
	ValorPedidosMes    decimal.Decimal

	ParcelasEmAberto int
	ParcelasVencidas int
	ValorEmAberto    decimal.Decimal

	// ProximoVencimento é a parcela em aberto mais próxima de vencer,
	// nula se não houver nenhuma.
	ProximoVencimento *models.FaturaPublic
}

// DashboardService define a interface do serviço do painel inicial.
type DashboardService interface {
	// GetResumo monta o resumo do documento na data de referência.
	// Bloqueia pela latência simulada: chamar fora da thread da UI.
	GetResumo(cnpjCPF string, ref time.Time) (*ResumoDashboard, error)
}

// dashboardServiceImpl é a implementação de DashboardService.
type dashboardServiceImpl struct {
	pedidoRepo repositories.PedidoRepository
	faturaRepo repositories.FaturaRepository
	rede       simuladorRede
}

// NewDashboardService cria uma nova instância de DashboardService.
func NewDashboardService(pedidoRepo repositories.PedidoRepository, faturaRepo repositories.FaturaRepository, cfg *core.Config) DashboardService {
	if pedidoRepo == nil || faturaRepo == nil || cfg == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewDashboardService")
	}
	return &dashboardServiceImpl{
		pedidoRepo: pedidoRepo,
		faturaRepo: faturaRepo,
		rede:       novoSimuladorRede(cfg),
	}
}

func (s *dashboardServiceImpl) GetResumo(cnpjCPF string, ref time.Time) (*ResumoDashboard, error) {
	if err := s.rede.chamada(); err != nil {
		appLogger.Warnf("Consulta do resumo falhou (simulação): %v", err)
		return nil, core.WrapErrorf(err, "falha ao montar o resumo do painel")
	}

	resumo := &ResumoDashboard{
		ValorPedidosMes: decimal.Zero,
		ValorEmAberto:   decimal.Zero,
	}

	inicioMes := ref.AddDate(0, -1, 0)
	pedidos, err := s.pedidoRepo.GetByCNPJAndPeriod(cnpjCPF, inicioMes, ref)
	if err != nil {
		return nil, err
	}
	for _, p := range pedidos {
		pub := models.ToPedidoPublic(p)
		resumo.PedidosUltimoMes++
		if pub.Status != models.PedidoCancelado {
			resumo.ValorPedidosMes = resumo.ValorPedidosMes.Add(pub.ValorTotal)
		}
		switch pub.Status {
		case models.PedidoEmSeparacao, models.PedidoFaturado, models.PedidoEmTransito:
			resumo.PedidosEmAndamento++
		}
	}

	abertas, err := s.faturaRepo.GetAbertas(cnpjCPF)
	if err != nil {
		return nil, err
	}
	for _, f := range abertas {
		pub := models.ToFaturaPublic(f)
		resumo.ParcelasEmAberto++
		resumo.ValorEmAberto = resumo.ValorEmAberto.Add(pub.Valor)
		if pub.EstaVencida(ref) {
			resumo.ParcelasVencidas++
		} else if resumo.ProximoVencimento == nil {
			// GetAbertas vem em ordem de vencimento: a primeira não
			// vencida é a próxima a vencer.
			resumo.ProximoVencimento = pub
		}
	}

	return resumo, nil
}
