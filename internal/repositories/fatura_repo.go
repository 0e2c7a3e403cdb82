package repositories

import (
	"time"

	"gorm.io/gorm"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

// FaturaRepository define a interface para consultas de parcelas de
// fatura (boletos).
type FaturaRepository interface {
	// GetByCNPJAndPeriod retorna as parcelas do documento com
	// vencimento no período [start, end], da mais recente para a mais
	// antiga.
	GetByCNPJAndPeriod(cnpjCPF string, start, end time.Time) ([]*models.DBFaturaParcela, error)

	// GetAbertas retorna as parcelas em aberto ou vencidas do
	// documento, da mais antiga para a mais recente (ordem de
	// cobrança).
	GetAbertas(cnpjCPF string) ([]*models.DBFaturaParcela, error)
}

// gormFaturaRepository é a implementação GORM de FaturaRepository.
type gormFaturaRepository struct {
	db *gorm.DB
}

// NewGormFaturaRepository cria uma nova instância de gormFaturaRepository.
func NewGormFaturaRepository(db *gorm.DB) FaturaRepository {
	if db == nil {
		appLogger.Fatalf("gorm.DB não pode ser nil para NewGormFaturaRepository")
	}
	return &gormFaturaRepository{db: db}
}

func (r *gormFaturaRepository) GetByCNPJAndPeriod(cnpjCPF string, start, end time.Time) ([]*models.DBFaturaParcela, error) {
	cleaned := models.CleanDocumento(cnpjCPF)
	var parcelas []*models.DBFaturaParcela
	err := r.db.
		Where("cnpj_cpf = ? AND data_vencimento BETWEEN ? AND ?", cleaned, start, end).
		Order("data_vencimento DESC, numero_documento DESC, parcela ASC").
		Find(&parcelas).Error
	if err != nil {
		appLogger.Errorf("Erro ao consultar faturas do documento %s: %v", cleaned, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar faturas (GORM)")
	}
	return parcelas, nil
}

func (r *gormFaturaRepository) GetAbertas(cnpjCPF string) ([]*models.DBFaturaParcela, error) {
	cleaned := models.CleanDocumento(cnpjCPF)
	var parcelas []*models.DBFaturaParcela
	err := r.db.
		Where("cnpj_cpf = ? AND status IN ?", cleaned, []string{string(models.FaturaAberta), string(models.FaturaVencida)}).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	if err != nil {
		appLogger.Errorf("Erro ao consultar faturas em aberto do documento %s: %v", cleaned, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar faturas em aberto (GORM)")
	}
	return parcelas, nil
}
