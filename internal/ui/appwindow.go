package ui

import (
	"fmt"
	"image"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/services"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// AppWindow gerencia a janela principal da aplicação, o tema e o roteamento de páginas.
type AppWindow struct {
	window *app.Window
	th     *material.Theme
	cfg    *core.Config
	router *Router

	// Usuário autenticado na sessão atual (nil antes do login).
	currentUser *models.UsuarioPublic

	// Fila de funções a executar na thread de eventos da UI. As
	// goroutines de serviço entregam resultados por aqui; a fila é
	// drenada no início de cada frame.
	execMu    sync.Mutex
	execQueue []func()

	// Estado global da UI.
	globalSpinner   *components.LoadingSpinner
	isGlobalLoading bool

	// Mensagem/notificação global exibida no topo da janela.
	globalMessage         string
	globalMessageType     string // "info", "error", "success", "warning"
	showGlobalMessage     bool
	globalMessageAutoHide *time.Timer
}

// NewAppWindow cria e inicializa a janela principal da aplicação.
// As páginas são registradas pelo chamador via Router(), para que o
// pacote ui não dependa do pacote pages.
func NewAppWindow(
	th *material.Theme,
	cfg *core.Config,
	authSvc services.AuthService,
	pedidoSvc services.PedidoService,
	faturaSvc services.FaturaService,
	dashSvc services.DashboardService,
	chatSvc services.ChatbotService,
) *AppWindow {
	if th == nil {
		th = theme.NewAppTheme()
	}

	win := new(app.Window)
	win.Option(
		app.Title(fmt.Sprintf("%s v%s", cfg.AppName, cfg.AppVersion)),
		app.Size(theme.WindowDefaultWidth, theme.WindowDefaultHeight),
		app.MinSize(theme.WindowMinWidth, theme.WindowMinHeight),
	)

	aw := &AppWindow{
		window:        win,
		th:            th,
		cfg:           cfg,
		globalSpinner: components.NewLoadingSpinner(theme.Colors.Primary),
	}
	aw.router = NewRouter(th, cfg, aw, authSvc, pedidoSvc, faturaSvc, dashSvc, chatSvc)
	return aw
}

// Router retorna o router da janela, para registro de páginas e
// navegação inicial.
func (aw *AppWindow) Router() *Router {
	return aw.router
}

// Run inicia o loop de eventos da janela. Bloqueia até a janela fechar.
func (aw *AppWindow) Run() error {
	var ops op.Ops
	for {
		switch e := aw.window.Event().(type) {
		case app.DestroyEvent:
			appLogger.Info("AppWindow: Evento Destroy recebido, encerrando aplicação.")
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			aw.drainExecQueue()
			aw.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// drainExecQueue roda as funções enfileiradas por Execute, já na
// thread de eventos.
func (aw *AppWindow) drainExecQueue() {
	aw.execMu.Lock()
	queue := aw.execQueue
	aw.execQueue = nil
	aw.execMu.Unlock()
	for _, f := range queue {
		f()
	}
}

// Execute agenda `f` para rodar na thread de eventos da UI antes do
// próximo frame. É o caminho de volta das goroutines de serviço.
func (aw *AppWindow) Execute(f func()) {
	aw.execMu.Lock()
	aw.execQueue = append(aw.execQueue, f)
	aw.execMu.Unlock()
	aw.window.Invalidate()
}

// Layout organiza o frame: página atual, mensagem global e spinner.
func (aw *AppWindow) Layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, theme.Colors.Background, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Stack{Alignment: layout.N}.Layout(gtx,
		// Camada 1: conteúdo da página atual.
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return aw.router.Layout(gtx)
		}),
		// Camada 2: mensagem global.
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			if aw.showGlobalMessage {
				return aw.layoutGlobalMessage(gtx)
			}
			return layout.Dimensions{}
		}),
		// Camada 3: spinner global.
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			if aw.isGlobalLoading {
				return layout.Center.Layout(gtx, aw.globalSpinner.Layout)
			}
			return layout.Dimensions{}
		}),
	)
}

// layoutGlobalMessage desenha a notificação global no topo da janela.
func (aw *AppWindow) layoutGlobalMessage(gtx layout.Context) layout.Dimensions {
	bgColor := theme.Colors.InfoBg
	textColor := theme.Colors.InfoText

	switch aw.globalMessageType {
	case "error":
		bgColor = theme.Colors.DangerBg
		textColor = theme.Colors.DangerText
	case "success":
		bgColor = theme.Colors.SuccessBg
		textColor = theme.Colors.SuccessText
	case "warning":
		bgColor = theme.Colors.WarningBg
		textColor = theme.Colors.WarningText
	}

	return layout.Inset{Top: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(theme.CornerRadius)
				rect := image.Rectangle{Max: gtx.Constraints.Min}
				defer clip.UniformRRect(rect, rr).Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, bgColor)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(aw.th, aw.globalMessage)
				lbl.Color = textColor
				return layout.Inset{
					Top: unit.Dp(10), Bottom: unit.Dp(10),
					Left: unit.Dp(16), Right: unit.Dp(16),
				}.Layout(gtx, lbl.Layout)
			},
		)
	})
}

// hideGlobalMessage esconde a mensagem global.
func (aw *AppWindow) hideGlobalMessage() {
	if aw.globalMessageAutoHide != nil {
		aw.globalMessageAutoHide.Stop()
		aw.globalMessageAutoHide = nil
	}
	aw.showGlobalMessage = false
	aw.globalMessage = ""
	aw.Invalidate()
}

// --- Métodos de Callback e Interação com Páginas ---

// Theme retorna o tema Material da aplicação.
func (aw *AppWindow) Theme() *material.Theme {
	return aw.th
}

// Config retorna as configurações da aplicação.
func (aw *AppWindow) Config() *core.Config {
	return aw.cfg
}

// Invalidate solicita um novo frame para redesenhar a UI.
func (aw *AppWindow) Invalidate() {
	aw.window.Invalidate()
}

// CurrentUser retorna o usuário autenticado, ou nil antes do login.
func (aw *AppWindow) CurrentUser() *models.UsuarioPublic {
	return aw.currentUser
}

// HandleLoginSuccess é chamado pela LoginPage após um login bem-sucedido.
func (aw *AppWindow) HandleLoginSuccess(user *models.UsuarioPublic) {
	if user == nil {
		appLogger.Error("HandleLoginSuccess chamado com usuário nil. Login abortado.")
		aw.ShowGlobalMessage("Falha ao obter dados do usuário após login.", true, 5*time.Second)
		return
	}
	appLogger.Infof("Login bem-sucedido. Usuário: %s (%s)", user.Username, user.RazaoSocial)
	aw.currentUser = user
	aw.router.NavigateTo(PageMain, user)
}

// HandleLogout encerra a sessão e volta para a tela de login.
func (aw *AppWindow) HandleLogout() {
	appLogger.Info("Logout em progresso na AppWindow...")
	aw.currentUser = nil
	aw.router.NavigateTo(PageLogin, "Sessão encerrada.")
}

// StartGlobalLoading ativa o spinner de carregamento global.
func (aw *AppWindow) StartGlobalLoading(gtx layout.Context) {
	if !aw.isGlobalLoading {
		aw.isGlobalLoading = true
		aw.globalSpinner.Start(gtx)
	}
}

// StopGlobalLoading desativa o spinner de carregamento global.
func (aw *AppWindow) StopGlobalLoading(gtx layout.Context) {
	if aw.isGlobalLoading {
		aw.isGlobalLoading = false
		aw.globalSpinner.Stop(gtx)
	}
}

// ShowGlobalMessage exibe uma notificação no topo da janela.
// `autoHideDuration` > 0 esconde a mensagem automaticamente.
func (aw *AppWindow) ShowGlobalMessage(message string, isError bool, autoHideDuration time.Duration) {
	if aw.globalMessageAutoHide != nil {
		aw.globalMessageAutoHide.Stop()
	}

	aw.globalMessage = message
	if isError {
		aw.globalMessageType = "error"
	} else {
		aw.globalMessageType = "success"
	}
	aw.showGlobalMessage = true
	aw.Invalidate()

	if autoHideDuration > 0 {
		aw.globalMessageAutoHide = time.AfterFunc(autoHideDuration, func() {
			aw.Execute(aw.hideGlobalMessage)
		})
	}
}
