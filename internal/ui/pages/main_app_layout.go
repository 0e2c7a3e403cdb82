package pages

import (
	"fmt"
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/icons"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// ModuleConfig define a configuração de cada módulo na sidebar.
type ModuleConfig struct {
	ID    ui.PageID
	Title string
	Icon  icons.IconType
}

// MainAppLayout é a página principal do portal após o login: a sidebar
// de módulos à esquerda e a área de conteúdo do módulo ativo.
type MainAppLayout struct {
	router *ui.Router

	currentModuleID ui.PageID
	sidebarModules  []ModuleConfig
	sidebarClicks   []widget.Clickable
	logoutBtn       widget.Clickable

	// Sub-páginas de cada módulo; implementam ui.Page.
	modulePages map[ui.PageID]ui.Page

	// Diálogo de confirmação de logout.
	showLogoutConfirm bool
	logoutYesBtn      widget.Clickable
	logoutNoBtn       widget.Clickable

	currentUser *models.UsuarioPublic
}

// NewMainAppLayout cria o layout principal e instancia as páginas de
// todos os módulos.
func NewMainAppLayout(router *ui.Router) *MainAppLayout {
	ml := &MainAppLayout{
		router:      router,
		modulePages: make(map[ui.PageID]ui.Page),
	}

	ml.sidebarModules = []ModuleConfig{
		{ID: ui.PageDashboard, Title: "Painel", Icon: icons.IconDashboard},
		{ID: ui.PagePedidos, Title: "Pedidos", Icon: icons.IconPedidos},
		{ID: ui.PageFaturas, Title: "Faturas", Icon: icons.IconFaturas},
		{ID: ui.PageRastreio, Title: "Rastreio", Icon: icons.IconRastreio},
		{ID: ui.PageChatbot, Title: "Assistente", Icon: icons.IconChat},
	}
	ml.sidebarClicks = make([]widget.Clickable, len(ml.sidebarModules))

	abrirRastreio := func(codigo string) {
		ml.ShowModule(ui.PageRastreio, codigo)
	}

	ml.modulePages[ui.PageDashboard] = NewDashboardPage(router)
	ml.modulePages[ui.PagePedidos] = NewPedidosPage(router, abrirRastreio)
	ml.modulePages[ui.PageFaturas] = NewFaturasPage(router)
	ml.modulePages[ui.PageRastreio] = NewRastreioPage(router)
	ml.modulePages[ui.PageChatbot] = NewChatbotPage(router)

	ml.currentModuleID = ui.PageDashboard
	return ml
}

// ShowModule troca o módulo ativo da área de conteúdo.
func (ml *MainAppLayout) ShowModule(id ui.PageID, params interface{}) {
	if page, ok := ml.modulePages[ml.currentModuleID]; ok && page != nil && ml.currentModuleID != id {
		page.OnNavigatedFrom()
	}
	ml.currentModuleID = id
	if page, ok := ml.modulePages[id]; ok && page != nil {
		page.OnNavigatedTo(params)
	} else {
		appLogger.Errorf("Módulo desconhecido na MainAppLayout: %v", id)
	}
	ml.router.GetAppWindow().Invalidate()
}

func (ml *MainAppLayout) OnNavigatedTo(params interface{}) {
	appLogger.Info("Navegou para MainAppLayout")
	if user, ok := params.(*models.UsuarioPublic); ok {
		ml.currentUser = user
	}
	ml.showLogoutConfirm = false
	ml.ShowModule(ui.PageDashboard, ml.currentUser)
}

func (ml *MainAppLayout) OnNavigatedFrom() {
	if page, ok := ml.modulePages[ml.currentModuleID]; ok && page != nil {
		page.OnNavigatedFrom()
	}
	ml.currentUser = nil
}

func (ml *MainAppLayout) Layout(gtx layout.Context) layout.Dimensions {
	th := ml.router.GetTheme()

	// Cliques da sidebar.
	for i := range ml.sidebarModules {
		if ml.sidebarClicks[i].Clicked(gtx) {
			selected := ml.sidebarModules[i].ID
			if ml.currentModuleID != selected {
				ml.ShowModule(selected, nil)
				appLogger.Infof("Módulo alterado para: %s", ml.sidebarModules[i].Title)
			}
		}
	}
	if ml.logoutBtn.Clicked(gtx) {
		ml.showLogoutConfirm = true
	}

	content := layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return ml.layoutSidebar(gtx, th)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			currentPage := ml.modulePages[ml.currentModuleID]
			if currentPage == nil {
				return material.Body1(th, fmt.Sprintf("Erro: módulo %v não pôde ser carregado.", ml.currentModuleID)).Layout(gtx)
			}
			return layout.UniformInset(theme.PagePadding).Layout(gtx, currentPage.Layout)
		}),
	)

	if ml.showLogoutConfirm {
		return layout.Stack{}.Layout(gtx,
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}),
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				return ml.layoutLogoutConfirmDialog(gtx, th)
			}),
		)
	}
	return content
}

// layoutSidebar desenha a coluna de navegação à esquerda.
func (ml *MainAppLayout) layoutSidebar(gtx layout.Context, th *material.Theme) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(theme.SidebarWidth)
	gtx.Constraints.Max.X = gtx.Constraints.Min.X

	// Fundo da sidebar.
	paint.FillShape(gtx.Ops, theme.Colors.Grey50,
		clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Identificação do cliente.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						name := material.Body1(th, ml.userDisplayName())
						name.Font.Weight = font.Bold
						return name.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						doc := material.Body2(th, ml.userDocumento())
						doc.Color = theme.Colors.TextMuted
						return doc.Layout(gtx)
					}),
				)
			})
		}),
		// Módulos.
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			children := make([]layout.FlexChild, 0, len(ml.sidebarModules))
			for i, mod := range ml.sidebarModules {
				i, mod := i, mod
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return ml.layoutSidebarItem(gtx, th, &ml.sidebarClicks[i], mod, ml.currentModuleID == mod.ID)
				}))
			}
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
		}),
		// Sair.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				btn := theme.OutlineButton(th, &ml.logoutBtn, "Sair")
				return btn.Layout(gtx)
			})
		}),
	)
}

func (ml *MainAppLayout) layoutSidebarItem(gtx layout.Context, th *material.Theme, click *widget.Clickable, mod ModuleConfig, selected bool) layout.Dimensions {
	return click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		bg := theme.Colors.Grey50
		fg := theme.Colors.Grey600
		if selected {
			bg = theme.Colors.Primary
			fg = theme.Colors.PrimaryText
		}
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{
					Top: unit.Dp(12), Bottom: unit.Dp(12),
					Left: unit.Dp(16), Right: unit.Dp(16),
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return icons.Layout(gtx, icons.MustGet(mod.Icon), unit.Dp(20), fg)
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body1(th, mod.Title)
							lbl.Color = fg
							if selected {
								lbl.Font.Weight = font.Bold
							}
							return lbl.Layout(gtx)
						}),
					)
				})
			},
		)
	})
}

// layoutLogoutConfirmDialog desenha o diálogo de confirmação de saída.
func (ml *MainAppLayout) layoutLogoutConfirmDialog(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if ml.logoutYesBtn.Clicked(gtx) {
		ml.showLogoutConfirm = false
		ml.router.GetAppWindow().HandleLogout()
	}
	if ml.logoutNoBtn.Clicked(gtx) {
		ml.showLogoutConfirm = false
	}

	// Véu escurecendo o conteúdo.
	paint.FillShape(gtx.Ops, scrimColor, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Center.Layout(gtx, theme.Card(unit.Dp(24), func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H6(th, "Encerrar sessão?").Layout),
			layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
			layout.Rigid(material.Body2(th, "Você precisará entrar novamente para acessar o portal.").Layout),
			layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(theme.OutlineButton(th, &ml.logoutNoBtn, "Cancelar").Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(th, &ml.logoutYesBtn, "Sair")
						btn.Background = theme.Colors.Danger
						btn.Color = theme.Colors.White
						btn.CornerRadius = theme.CornerRadius
						return btn.Layout(gtx)
					}),
				)
			}),
		)
	}))
}

func (ml *MainAppLayout) userDisplayName() string {
	if ml.currentUser == nil {
		return ""
	}
	if ml.currentUser.RazaoSocial != "" {
		return ml.currentUser.RazaoSocial
	}
	return ml.currentUser.Username
}

func (ml *MainAppLayout) userDocumento() string {
	if ml.currentUser == nil {
		return ""
	}
	return models.FormatDocumento(ml.currentUser.CNPJCPF)
}
