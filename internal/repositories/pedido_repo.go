package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

// PedidoRepository define a interface para consultas de pedidos.
type PedidoRepository interface {
	// GetByCNPJAndPeriod retorna os pedidos do documento no período
	// [start, end], na ordem natural do portal: descendente pela data
	// do pedido, desempate pelo ID.
	GetByCNPJAndPeriod(cnpjCPF string, start, end time.Time) ([]*models.DBPedido, error)

	// GetByCodigo retorna um pedido pelo código de exibição.
	GetByCodigo(codigo string) (*models.DBPedido, error)

	// GetEventosRastreio retorna a linha do tempo de entrega de um
	// pedido, do evento mais recente para o mais antigo.
	GetEventosRastreio(pedidoID uint64) ([]*models.DBEventoRastreio, error)
}

// gormPedidoRepository é a implementação GORM de PedidoRepository.
type gormPedidoRepository struct {
	db *gorm.DB
}

// NewGormPedidoRepository cria uma nova instância de gormPedidoRepository.
func NewGormPedidoRepository(db *gorm.DB) PedidoRepository {
	if db == nil {
		appLogger.Fatalf("gorm.DB não pode ser nil para NewGormPedidoRepository")
	}
	return &gormPedidoRepository{db: db}
}

func (r *gormPedidoRepository) GetByCNPJAndPeriod(cnpjCPF string, start, end time.Time) ([]*models.DBPedido, error) {
	cleaned := models.CleanDocumento(cnpjCPF)
	var pedidos []*models.DBPedido
	err := r.db.
		Where("cnpj_cpf = ? AND data_pedido BETWEEN ? AND ?", cleaned, start, end).
		Order("data_pedido DESC, id DESC").
		Find(&pedidos).Error
	if err != nil {
		appLogger.Errorf("Erro ao consultar pedidos do documento %s: %v", cleaned, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar pedidos (GORM)")
	}
	return pedidos, nil
}

func (r *gormPedidoRepository) GetByCodigo(codigo string) (*models.DBPedido, error) {
	var pedido models.DBPedido
	err := r.db.Where("codigo = ?", codigo).First(&pedido).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotFound
		}
		appLogger.Errorf("Erro ao consultar pedido '%s': %v", codigo, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar pedido (GORM)")
	}
	return &pedido, nil
}

func (r *gormPedidoRepository) GetEventosRastreio(pedidoID uint64) ([]*models.DBEventoRastreio, error) {
	var eventos []*models.DBEventoRastreio
	err := r.db.
		Where("pedido_id = ?", pedidoID).
		Order("data_evento DESC").
		Find(&eventos).Error
	if err != nil {
		appLogger.Errorf("Erro ao consultar eventos de rastreio do pedido %d: %v", pedidoID, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar eventos de rastreio (GORM)")
	}
	return eventos, nil
}
