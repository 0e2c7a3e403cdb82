package core

import (
	"errors"
	"fmt"
	"log" // Usado para logs iniciais antes que o logger da aplicação esteja configurado
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config struct para armazenar todas as configurações da aplicação
type Config struct {
	AppName    string
	AppVersion string
	AppDebug   bool

	// Database (fonte dos dados fictícios; sqlite em memória por padrão)
	DBEngine   string
	DBName     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string

	// Logging
	LogDir         string
	LogLevel       string
	LogMaxBytes    int
	LogBackupCount int
	LogToConsole   bool

	// Simulação de rede (o portal não tem backend real)
	SimulatedLatency     time.Duration // atraso artificial das "chamadas de rede"
	SimulatedFailureRate float64       // fração [0,1) de recargas que falham de propósito

	// Tabelas
	DefaultPageSize  int
	DebounceInterval time.Duration

	// Export
	ExportDir string

	// Login de demonstração
	DemoUsername string
	DemoPassword string
}

// LoadConfig carrega as configurações do arquivo .env especificado ou encontrado na árvore de diretórios.
func LoadConfig(envPath string) (*Config, error) {
	foundEnvPath, err := findEnvFile(envPath)
	if err != nil {
		log.Printf("Aviso: Arquivo .env em '%s' não encontrado ou inacessível: %v. Tentando carregar variáveis de ambiente globais.", envPath, err)
		if loadErr := godotenv.Load(); loadErr != nil {
			log.Printf("Aviso: Nenhum arquivo .env carregado: %v. Usando variáveis de ambiente existentes ou defaults.", loadErr)
		}
	} else {
		log.Printf("Carregando configurações de: %s", foundEnvPath)
		if err := godotenv.Load(foundEnvPath); err != nil {
			log.Printf("Aviso: Erro ao carregar arquivo .env de '%s': %v. Usando valores padrão ou variáveis de ambiente existentes.", foundEnvPath, err)
		}
	}

	cfg := &Config{}

	cfg.AppName = getEnv("APP_NAME", "Portal do Cliente")
	cfg.AppVersion = getEnv("APP_VERSION", "1.0.0-go")
	cfg.AppDebug = getEnvAsBool("APP_DEBUG", false)

	// `:memory:` mantém o banco inteiramente em RAM: os dados fictícios
	// são regenerados a cada execução, nada é persistido em disco.
	cfg.DBEngine = getEnv("APP_DB_ENGINE", "sqlite")
	cfg.DBName = getEnv("APP_DB_NAME", "file::memory:?cache=shared")
	cfg.DBHost = getEnv("APP_DB_HOST", "localhost")
	cfg.DBPort = getEnvAsInt("APP_DB_PORT", 5432)
	cfg.DBUser = getEnv("APP_DB_USER", "user")
	cfg.DBPassword = getEnv("APP_DB_PASSWORD", "password")

	cfg.LogDir = getEnv("APP_LOG_DIR", "./app_logs")
	cfg.LogLevel = strings.ToUpper(getEnv("APP_LOG_LEVEL", "INFO"))
	cfg.LogMaxBytes = getEnvAsInt("APP_LOG_MAX_BYTES", 5*1024*1024) // 5MB
	cfg.LogBackupCount = getEnvAsInt("APP_LOG_BACKUP_COUNT", 7)
	cfg.LogToConsole = getEnvAsBool("APP_LOG_TO_CONSOLE", true)

	cfg.SimulatedLatency = getEnvAsDurationMs("APP_SIMULATED_LATENCY_MS", 800)
	cfg.SimulatedFailureRate = getEnvAsFloat("APP_SIMULATED_FAILURE_RATE", 0.0)

	cfg.DefaultPageSize = getEnvAsInt("APP_DEFAULT_PAGE_SIZE", 10)
	cfg.DebounceInterval = getEnvAsDurationMs("APP_DEBOUNCE_MS", 300)

	cfg.ExportDir = getEnv("APP_EXPORT_DIR", "./app_exports")

	cfg.DemoUsername = getEnv("APP_DEMO_USERNAME", "cliente")
	cfg.DemoPassword = getEnv("APP_DEMO_PASSWORD", "cliente123")

	// Validações de Configurações Críticas
	if cfg.SimulatedFailureRate < 0 || cfg.SimulatedFailureRate >= 1 {
		return nil, fmt.Errorf("%w: APP_SIMULATED_FAILURE_RATE deve estar em [0, 1), recebido %.2f", ErrConfiguration, cfg.SimulatedFailureRate)
	}
	if cfg.DefaultPageSize < 1 {
		log.Printf("AVISO: APP_DEFAULT_PAGE_SIZE inválido (%d), usando 10.", cfg.DefaultPageSize)
		cfg.DefaultPageSize = 10
	}

	// Garantir que diretórios essenciais existam. LogDir é crítico.
	if err := ensureDir(cfg.LogDir, true); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de log essencial '%s': %w", cfg.LogDir, err)
	}
	_ = ensureDir(cfg.ExportDir, false)

	log.Println("Configurações carregadas e validadas.")
	return cfg, nil
}

// findEnvFile tenta localizar o arquivo .env.
// Primeiro no path fornecido, depois subindo na árvore de diretórios a partir do CWD.
func findEnvFile(envPath string) (string, error) {
	if _, err := os.Stat(envPath); err == nil {
		absPath, _ := filepath.Abs(envPath)
		return absPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("não foi possível obter o diretório de trabalho atual: %w", err)
	}

	for i := 0; i < 5; i++ {
		tryPath := filepath.Join(cwd, ".env")
		if _, err := os.Stat(tryPath); err == nil {
			return tryPath, nil
		}
		parent := filepath.Dir(cwd)
		if parent == cwd { // Chegou à raiz
			break
		}
		cwd = parent
	}
	return "", fmt.Errorf("arquivo .env não encontrado no caminho '%s' ou nos diretórios pais", envPath)
}

// ensureDir garante que um diretório exista, criando-o se necessário.
// Se 'critical' for true, retorna erro em caso de falha. Caso contrário, apenas loga um aviso.
func ensureDir(dirPath string, critical bool) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		msg := fmt.Sprintf("Não foi possível resolver o caminho absoluto para '%s': %v", dirPath, err)
		if critical {
			log.Println("ERRO CRÍTICO:", msg)
			return errors.New(msg)
		}
		log.Println("AVISO:", msg)
		return nil
	}

	if err := os.MkdirAll(absPath, os.ModePerm); err != nil {
		msg := fmt.Sprintf("Não foi possível criar o diretório '%s': %v", absPath, err)
		if critical {
			log.Println("ERRO CRÍTICO:", msg)
			return errors.New(msg)
		}
		log.Println("AVISO:", msg)
	}
	return nil
}

// getEnv recupera o valor de uma variável de ambiente ou retorna um fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt recupera uma variável de ambiente como int ou retorna um fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsBool recupera uma variável de ambiente como bool ou retorna um fallback.
func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsFloat recupera uma variável de ambiente como float64 ou retorna um fallback.
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDurationMs recupera uma variável de ambiente como time.Duration em milissegundos, ou retorna um fallback.
func getEnvAsDurationMs(key string, fallbackMillis int) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Millisecond
	}
	return time.Duration(fallbackMillis) * time.Millisecond
}
