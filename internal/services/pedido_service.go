package services

import (
	"time"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/repositories"
)

// PedidoService define a interface do serviço de pedidos do portal.
type PedidoService interface {
	// GetPedidosPorPeriodo retorna os pedidos do documento no período,
	// já na projeção pública e na ordem natural (data descendente).
	// Bloqueia pela latência simulada: chamar fora da thread da UI.
	GetPedidosPorPeriodo(cnpjCPF string, start, end time.Time) ([]*models.PedidoPublic, error)

	// GetRastreio retorna o pedido e sua linha do tempo de entrega.
	GetRastreio(codigo string) (*models.PedidoPublic, []*models.EventoRastreioPublic, error)
}

// pedidoServiceImpl é a implementação de PedidoService.
type pedidoServiceImpl struct {
	repo repositories.PedidoRepository
	rede simuladorRede
}

// NewPedidoService cria uma nova instância de PedidoService.
func NewPedidoService(repo repositories.PedidoRepository, cfg *core.Config) PedidoService {
	if repo == nil || cfg == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewPedidoService")
	}
	return &pedidoServiceImpl{
		repo: repo,
		rede: novoSimuladorRede(cfg),
	}
}

func (s *pedidoServiceImpl) GetPedidosPorPeriodo(cnpjCPF string, start, end time.Time) ([]*models.PedidoPublic, error) {
	if err := s.rede.chamada(); err != nil {
		appLogger.Warnf("Consulta de pedidos falhou (simulação): %v", err)
		return nil, core.WrapErrorf(err, "falha ao consultar pedidos do período")
	}

	pedidos, err := s.repo.GetByCNPJAndPeriod(cnpjCPF, start, end)
	if err != nil {
		return nil, err
	}
	appLogger.Debugf("Consulta de pedidos: %d registros entre %s e %s.",
		len(pedidos), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return models.ToPedidoPublicList(pedidos), nil
}

func (s *pedidoServiceImpl) GetRastreio(codigo string) (*models.PedidoPublic, []*models.EventoRastreioPublic, error) {
	if err := s.rede.chamada(); err != nil {
		appLogger.Warnf("Consulta de rastreio falhou (simulação): %v", err)
		return nil, nil, core.WrapErrorf(err, "falha ao consultar rastreio do pedido")
	}

	pedido, err := s.repo.GetByCodigo(codigo)
	if err != nil {
		return nil, nil, err
	}
	eventos, err := s.repo.GetEventosRastreio(pedido.ID)
	if err != nil {
		return nil, nil, err
	}
	return models.ToPedidoPublic(pedido), models.ToEventoRastreioPublicList(eventos), nil
}
