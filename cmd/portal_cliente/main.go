package main

import (
	"log"
	"os"

	"gioui.org/app"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/mock"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/repositories"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/services"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/pages"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

func main() {
	go run()
	app.Main()
}

func run() {
	cfg, err := core.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Erro CRÍTICO ao carregar configuração: %v", err)
	}

	if err := appLogger.SetupLogger(cfg); err != nil {
		log.Fatalf("Erro CRÍTICO ao configurar logger: %v", err)
	}
	appLogger.Info("=====================================================")
	appLogger.Infof("Iniciando %s v%s...", cfg.AppName, cfg.AppVersion)
	appLogger.Debugf("Modo Debug: %t", cfg.AppDebug)
	appLogger.Info("=====================================================")

	db, err := data.InitializeDB(cfg)
	if err != nil {
		appLogger.Fatalf("Erro CRÍTICO ao inicializar banco de dados: %v", err)
	}
	defer func() {
		if err := data.CloseDB(db); err != nil {
			appLogger.Errorf("Erro ao fechar conexão com banco de dados: %v", err)
		} else {
			appLogger.Info("Conexão com banco de dados fechada.")
		}
	}()
	appLogger.Info("Banco de dados inicializado com sucesso.")

	// O portal é uma demonstração autocontida: sem um ERP por trás, a
	// carga inicial é gerada localmente quando o banco está vazio.
	if err := mock.SeedDatabase(db, cfg); err != nil {
		appLogger.Fatalf("Erro CRÍTICO ao popular dados de demonstração: %v", err)
	}

	usuarioRepo := repositories.NewGormUsuarioRepository(db)
	pedidoRepo := repositories.NewGormPedidoRepository(db)
	faturaRepo := repositories.NewGormFaturaRepository(db)

	authService := services.NewAuthService(usuarioRepo)
	pedidoService := services.NewPedidoService(pedidoRepo, cfg)
	faturaService := services.NewFaturaService(faturaRepo, cfg)
	dashboardService := services.NewDashboardService(pedidoRepo, faturaRepo, cfg)
	chatbotService := services.NewChatbotService(pedidoService, faturaService, cfg)
	appLogger.Info("Serviços inicializados.")

	th := theme.NewAppTheme()
	aw := ui.NewAppWindow(th, cfg, authService, pedidoService, faturaService, dashboardService, chatbotService)

	router := aw.Router()
	router.Register(ui.PageLogin, pages.NewLoginPage(router))
	router.Register(ui.PageMain, pages.NewMainAppLayout(router))
	router.NavigateTo(ui.PageLogin, nil)

	appLogger.Info("Janela principal criada. Iniciando loop de eventos da UI.")
	if err := aw.Run(); err != nil {
		appLogger.Fatalf("Erro fatal no loop de eventos da UI: %v", err)
	}

	appLogger.Info("Aplicação encerrada normalmente.")
	os.Exit(0)
}
