package ui

import (
	"fmt"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/services"
)

// PageID define um identificador único para cada página/view da aplicação.
type PageID int

const (
	PageNone PageID = iota // Valor zero para indicar nenhuma página específica
	PageLogin
	PageMain // Layout principal: sidebar + área de conteúdo dos módulos

	// Módulos exibidos dentro da área de conteúdo de PageMain. A
	// MainAppLayout é quem os gerencia; os IDs vivem aqui para a
	// navegação entre módulos (ex.: abrir o rastreio de um pedido).
	PageDashboard
	PagePedidos
	PageFaturas
	PageRastreio
	PageChatbot
)

// Page define a interface que cada página da aplicação deve implementar.
type Page interface {
	Layout(gtx layout.Context) layout.Dimensions
	// OnNavigatedTo é chamado quando a página se torna a página ativa.
	// `params` carrega dados da navegação (ex.: o usuário logado).
	OnNavigatedTo(params interface{})
	// OnNavigatedFrom é chamado quando o router está prestes a navegar para fora desta página.
	OnNavigatedFrom()
}

// Router gerencia a navegação entre as diferentes páginas da aplicação.
type Router struct {
	th        *material.Theme
	cfg       *core.Config
	appWindow *AppWindow // Referência à janela principal para callbacks

	pages             map[PageID]Page
	currentPageID     PageID
	previousPageID    PageID // Para funcionalidade de "voltar" simples
	currentPageParams interface{}

	// Serviços, para acesso pelas páginas através do router.
	authService      services.AuthService
	pedidoService    services.PedidoService
	faturaService    services.FaturaService
	dashboardService services.DashboardService
	chatbotService   services.ChatbotService
}

// NewRouter cria uma nova instância do Router.
func NewRouter(
	th *material.Theme,
	cfg *core.Config,
	aw *AppWindow,
	authSvc services.AuthService,
	pedidoSvc services.PedidoService,
	faturaSvc services.FaturaService,
	dashSvc services.DashboardService,
	chatSvc services.ChatbotService,
) *Router {
	if th == nil || cfg == nil || aw == nil || authSvc == nil || pedidoSvc == nil || faturaSvc == nil || dashSvc == nil || chatSvc == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewRouter")
	}
	return &Router{
		th:               th,
		cfg:              cfg,
		appWindow:        aw,
		pages:            make(map[PageID]Page),
		currentPageID:    PageNone, // AppWindow define a página inicial
		authService:      authSvc,
		pedidoService:    pedidoSvc,
		faturaService:    faturaSvc,
		dashboardService: dashSvc,
		chatbotService:   chatSvc,
	}
}

// Register associa um PageID a uma instância de Page.
func (r *Router) Register(id PageID, page Page) {
	if page == nil {
		appLogger.Warnf("Tentativa de registrar uma página nula para ID: %v", id)
		return
	}
	if _, exists := r.pages[id]; exists {
		appLogger.Warnf("Substituindo página já registrada para ID: %v", id)
	}
	r.pages[id] = page
	appLogger.Debugf("Página registrada: ID=%v, Tipo=%T", id, page)
}

// NavigateTo muda a página ativa.
func (r *Router) NavigateTo(id PageID, params interface{}) {
	appLogger.Infof("Navegando de %v para %v com params: %T", r.currentPageID, id, params)

	// Notifica a página antiga (se houver e for válida)
	if oldPage, exists := r.pages[r.currentPageID]; exists && oldPage != nil {
		oldPage.OnNavigatedFrom()
	}

	r.previousPageID = r.currentPageID
	r.currentPageID = id
	r.currentPageParams = params

	if newPage, exists := r.pages[id]; exists && newPage != nil {
		newPage.OnNavigatedTo(params)
	} else {
		appLogger.Errorf("Tentativa de navegar para página não registrada ou nula: ID=%v", id)
	}

	r.appWindow.Invalidate()
}

// NavigateBack navega para a página anterior no histórico simples.
// Retorna true se conseguiu voltar.
func (r *Router) NavigateBack(params interface{}) bool {
	if r.previousPageID != PageNone {
		appLogger.Infof("Navegando de volta para página anterior: %v", r.previousPageID)
		r.NavigateTo(r.previousPageID, params)
		r.previousPageID = PageNone // Evita voltas múltiplas para o mesmo lugar
		return true
	}
	appLogger.Warn("Nenhuma página anterior para navegar de volta.")
	return false
}

// Layout renderiza a página ativa atual.
func (r *Router) Layout(gtx layout.Context) layout.Dimensions {
	currentPage, exists := r.pages[r.currentPageID]
	if !exists || currentPage == nil {
		errorMsg := fmt.Sprintf("Erro: Página ID %v não encontrada ou não inicializada no router.", r.currentPageID)
		appLogger.Error(errorMsg)
		return layout.Center.Layout(gtx, material.Body1(r.th, errorMsg).Layout)
	}
	return currentPage.Layout(gtx)
}

// CurrentPageID retorna o ID da página ativa.
func (r *Router) CurrentPageID() PageID {
	return r.currentPageID
}

// GetAppWindow retorna a instância da AppWindow. As páginas usam isso
// para Invalidate, Execute e callbacks globais.
func (r *Router) GetAppWindow() *AppWindow {
	return r.appWindow
}

// GetTheme retorna o tema da aplicação.
func (r *Router) GetTheme() *material.Theme {
	return r.th
}

// GetConfig retorna as configurações da aplicação.
func (r *Router) GetConfig() *core.Config {
	return r.cfg
}

// --- Acesso aos serviços pelas páginas ---

func (r *Router) AuthService() services.AuthService           { return r.authService }
func (r *Router) PedidoService() services.PedidoService       { return r.pedidoService }
func (r *Router) FaturaService() services.FaturaService       { return r.faturaService }
func (r *Router) DashboardService() services.DashboardService { return r.dashboardService }
func (r *Router) ChatbotService() services.ChatbotService     { return r.chatbotService }
