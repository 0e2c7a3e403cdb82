package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

// UsuarioRepository define a interface para operações na tabela de
// usuários do portal.
type UsuarioRepository interface {
	// GetByUsername retorna o usuário pelo nome de login (comparação
	// em minúsculas). Retorna ErrNotFound se não existir.
	GetByUsername(username string) (*models.DBUsuario, error)

	// RegisterLoginSuccess zera as tentativas falhas e registra o
	// horário do login.
	RegisterLoginSuccess(id uuid.UUID) error

	// RegisterLoginFailure incrementa o contador de tentativas falhas.
	RegisterLoginFailure(id uuid.UUID) error
}

// gormUsuarioRepository é a implementação GORM de UsuarioRepository.
type gormUsuarioRepository struct {
	db *gorm.DB
}

// NewGormUsuarioRepository cria uma nova instância de gormUsuarioRepository.
func NewGormUsuarioRepository(db *gorm.DB) UsuarioRepository {
	if db == nil {
		appLogger.Fatalf("gorm.DB não pode ser nil para NewGormUsuarioRepository")
	}
	return &gormUsuarioRepository{db: db}
}

func (r *gormUsuarioRepository) GetByUsername(username string) (*models.DBUsuario, error) {
	var usuario models.DBUsuario
	err := r.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotFound
		}
		appLogger.Errorf("Erro ao consultar usuário '%s': %v", username, err)
		return nil, appErrors.WrapErrorf(err, "falha ao consultar usuário (GORM)")
	}
	return &usuario, nil
}

func (r *gormUsuarioRepository) RegisterLoginSuccess(id uuid.UUID) error {
	agora := time.Now()
	err := r.db.Model(&models.DBUsuario{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"failed_attempts": 0,
			"last_login":      agora,
		}).Error
	if err != nil {
		appLogger.Errorf("Erro ao registrar login do usuário %s: %v", id, err)
		return appErrors.WrapErrorf(err, "falha ao registrar login (GORM)")
	}
	return nil
}

func (r *gormUsuarioRepository) RegisterLoginFailure(id uuid.UUID) error {
	agora := time.Now()
	err := r.db.Model(&models.DBUsuario{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"failed_attempts":   gorm.Expr("failed_attempts + 1"),
			"last_failed_login": agora,
		}).Error
	if err != nil {
		appLogger.Errorf("Erro ao registrar falha de login do usuário %s: %v", id, err)
		return appErrors.WrapErrorf(err, "falha ao registrar tentativa de login (GORM)")
	}
	return nil
}
