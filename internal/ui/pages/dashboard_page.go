package pages

import (
	"fmt"
	"image/color"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/services"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/icons"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/utils"
)

// DashboardPage é o painel inicial: cartões com os números do mês e
// atalhos para os módulos de pedidos e faturas.
type DashboardPage struct {
	router *ui.Router

	resumo    *services.ResumoDashboard
	loading   bool
	loadError string

	retryBtn   widget.Clickable
	refreshBtn widget.Clickable
	spinner    *components.LoadingSpinner
}

func NewDashboardPage(router *ui.Router) *DashboardPage {
	return &DashboardPage{
		router:  router,
		spinner: components.NewLoadingSpinner(theme.Colors.Primary),
	}
}

func (dp *DashboardPage) OnNavigatedTo(params interface{}) {
	if dp.resumo == nil && !dp.loading {
		dp.carregarResumo()
	}
}

func (dp *DashboardPage) OnNavigatedFrom() {}

// carregarResumo dispara a consulta do resumo fora da thread da UI.
func (dp *DashboardPage) carregarResumo() {
	aw := dp.router.GetAppWindow()
	user := aw.CurrentUser()
	if user == nil {
		return
	}
	dp.loading = true
	dp.loadError = ""
	aw.Invalidate()

	go func() {
		resumo, err := dp.router.DashboardService().GetResumo(user.CNPJCPF, time.Now())
		aw.Execute(func() {
			dp.loading = false
			if err != nil {
				appLogger.Errorf("Falha ao carregar o resumo do painel: %v", err)
				dp.loadError = "Não foi possível carregar o resumo. Verifique sua conexão."
				return
			}
			dp.resumo = resumo
		})
	}()
}

func (dp *DashboardPage) Layout(gtx layout.Context) layout.Dimensions {
	th := dp.router.GetTheme()

	if dp.retryBtn.Clicked(gtx) || dp.refreshBtn.Clicked(gtx) {
		dp.carregarResumo()
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(material.H5(th, "Painel").Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := material.IconButton(th, &dp.refreshBtn, icons.MustGet(icons.IconRefresh), "Atualizar")
					btn.Background = theme.Colors.Surface
					btn.Color = theme.Colors.Primary
					btn.Inset = layout.UniformInset(unit.Dp(6))
					return btn.Layout(gtx)
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			switch {
			case dp.loading:
				dp.spinner.Start(gtx)
				return layout.Center.Layout(gtx, dp.spinner.Layout)
			case dp.loadError != "":
				dp.spinner.Stop(gtx)
				return errorBanner(th, dp.loadError, &dp.retryBtn)(gtx)
			case dp.resumo == nil:
				return layout.Dimensions{}
			}
			dp.spinner.Stop(gtx)
			return dp.layoutResumo(gtx, th)
		}),
	)
}

func (dp *DashboardPage) layoutResumo(gtx layout.Context, th *material.Theme) layout.Dimensions {
	r := dp.resumo
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(dp.sectionTitle(th, "Pedidos")),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, dp.metricCard(th, icons.IconPedidos, "Em andamento",
					fmt.Sprintf("%d", r.PedidosEmAndamento), theme.Colors.Info)),
				layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
				layout.Flexed(1, dp.metricCard(th, icons.IconPedidos, "Últimos 30 dias",
					fmt.Sprintf("%d", r.PedidosUltimoMes), theme.Colors.Primary)),
				layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
				layout.Flexed(1, dp.metricCard(th, icons.IconPedidos, "Valor no período",
					utils.FormatMoney(r.ValorPedidosMes), theme.Colors.Success)),
			)
		}),
		layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

		layout.Rigid(dp.sectionTitle(th, "Faturas")),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, dp.metricCard(th, icons.IconFaturas, "Parcelas em aberto",
					fmt.Sprintf("%d", r.ParcelasEmAberto), theme.Colors.Warning)),
				layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
				layout.Flexed(1, dp.metricCard(th, icons.IconWarning, "Parcelas vencidas",
					fmt.Sprintf("%d", r.ParcelasVencidas), theme.Colors.Danger)),
				layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
				layout.Flexed(1, dp.metricCard(th, icons.IconFaturas, "Valor em aberto",
					utils.FormatMoney(r.ValorEmAberto), theme.Colors.Primary)),
			)
		}),
		layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if r.ProximoVencimento == nil {
				return layout.Dimensions{}
			}
			f := r.ProximoVencimento
			return theme.Card(unit.Dp(16), func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return icons.Layout(gtx, icons.MustGet(icons.IconCalendar), unit.Dp(28), theme.Colors.Warning)
					}),
					layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								lbl := material.Body2(th, "Próximo vencimento")
								lbl.Color = theme.Colors.TextMuted
								return lbl.Layout(gtx)
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								txt := fmt.Sprintf("Documento %s, parcela %d/%d: %s em %s",
									f.NumeroDocumento, f.Parcela, f.TotalParcelas,
									utils.FormatMoney(f.Valor), utils.FormatDate(f.DataVencimento))
								lbl := material.Body1(th, txt)
								lbl.Font.Weight = font.Medium
								return lbl.Layout(gtx)
							}),
						)
					}),
				)
			})(gtx)
		}),
	)
}

func (dp *DashboardPage) sectionTitle(th *material.Theme, title string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.H6(th, title)
		lbl.Color = theme.Colors.Grey800
		return lbl.Layout(gtx)
	}
}

// metricCard desenha um cartão com um número grande e seu rótulo.
func (dp *DashboardPage) metricCard(th *material.Theme, icon icons.IconType, label, value string, accent color.NRGBA) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return theme.Card(unit.Dp(16), func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return icons.Layout(gtx, icons.MustGet(icon), unit.Dp(20), accent)
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(th, label)
							lbl.Color = theme.Colors.TextMuted
							return lbl.Layout(gtx)
						}),
					)
				}),
				layout.Rigid(layout.Spacer{Height: theme.TightVSpacer}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.H5(th, value)
					lbl.Font.Weight = font.Bold
					lbl.Color = theme.Colors.Text
					return lbl.Layout(gtx)
				}),
			)
		})(gtx)
	}
}
