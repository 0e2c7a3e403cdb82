package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

var dbInstance *gorm.DB

// InitializeDB configura e estabelece a conexão com o banco de dados
// e executa migrações automáticas.
//
// No portal o banco é a fonte dos dados fictícios: por padrão um
// SQLite inteiramente em memória (`file::memory:?cache=shared`),
// populado na partida e descartado no encerramento. O motor
// "postgresql" permanece disponível para apontar o portal a uma base
// externa pré-carregada.
func InitializeDB(cfg *core.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	var err error

	appLogger.Infof("Inicializando conexão com banco de dados: %s", cfg.DBEngine)

	gormLogLevel := gormlogger.Silent
	if cfg.AppDebug {
		gormLogLevel = gormlogger.Info // Loga todas as queries SQL em modo debug
	}
	newGormLogger := gormlogger.New(
		appLogger.WithFields(logrus.Fields{"component": "gorm"}),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger: newGormLogger,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false, // Nomes de tabela no plural (ex: pedidos)
		},
	}

	switch cfg.DBEngine {
	case "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
		appLogger.Infof("Conectando ao PostgreSQL: host=%s dbname=%s user=%s port=%d", cfg.DBHost, cfg.DBName, cfg.DBUser, cfg.DBPort)
	case "sqlite":
		sep := "?"
		if strings.Contains(cfg.DBName, "?") {
			sep = "&"
		}
		dialector = sqlite.Open(cfg.DBName + sep + "_foreign_keys=on")
		appLogger.Infof("Usando banco de dados SQLite: %s", cfg.DBName)
	default:
		return nil, fmt.Errorf("%w: motor de banco de dados não suportado: %s", core.ErrConfiguration, cfg.DBEngine)
	}

	dbInstance, err = gorm.Open(dialector, gormConfig)
	if err != nil {
		appLogger.Errorf("Falha ao conectar ao banco de dados %s: %v", cfg.DBEngine, err)
		return nil, fmt.Errorf("falha ao abrir conexão com %s: %w", cfg.DBEngine, err)
	}

	sqlDB, err := dbInstance.DB()
	if err != nil {
		appLogger.Errorf("Falha ao obter instância *sql.DB do GORM: %v", err)
		return nil, fmt.Errorf("falha ao configurar pool de conexões: %w", err)
	}
	// Pool contido: o banco em memória vive enquanto houver ao menos
	// uma conexão aberta, e a aplicação é um único processo desktop.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(0)

	appLogger.Info("Conexão com banco de dados estabelecida.")

	appLogger.Info("Executando migrações automáticas do GORM...")
	err = dbInstance.AutoMigrate(
		&models.DBUsuario{},
		&models.DBPedido{},
		&models.DBFaturaParcela{},
		&models.DBEventoRastreio{},
	)
	if err != nil {
		appLogger.Errorf("Falha durante AutoMigrate: %v", err)
		return nil, fmt.Errorf("falha na migração do esquema do banco de dados: %w", err)
	}
	appLogger.Info("Migrações automáticas do GORM concluídas.")

	return dbInstance, nil
}

// GetDB retorna a instância global do GORM DB.
// Panics se InitializeDB não tiver sido chamado com sucesso.
func GetDB() *gorm.DB {
	if dbInstance == nil {
		appLogger.Fatalf("FATAL: Instância do banco de dados não inicializada. Chame InitializeDB primeiro.")
	}
	return dbInstance
}

// CloseDB fecha a conexão com o banco de dados. Com o SQLite em
// memória isso descarta todos os dados fictícios.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		appLogger.Warn("Tentativa de fechar conexão DB nula.")
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Errorf("Erro ao obter *sql.DB para fechar: %v", err)
		return err
	}
	appLogger.Info("Fechando conexão com o banco de dados...")
	return sqlDB.Close()
}

type DBSessionFunc func(tx *gorm.DB) error

// WithTransaction executa uma função dentro de uma transação GORM.
// Faz commit se a função não retornar erro, rollback caso contrário.
func WithTransaction(db *gorm.DB, fn DBSessionFunc) error {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("erro ao executar função (%v) e erro no rollback (%w)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("falha ao commitar transação: %w", err)
	}
	return nil
}
