package pages

import (
	"errors"
	"image"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/utils"
)

// RastreioPage é a tela de acompanhamento de entrega: recebe um código
// de pedido (vindo da tabela de pedidos ou digitado) e mostra a linha
// do tempo de eventos da transportadora.
type RastreioPage struct {
	router *ui.Router

	codigoEdit widget.Editor
	searchBtn  widget.Clickable
	spinner    *components.LoadingSpinner
	list       widget.List

	pedido    *models.PedidoPublic
	eventos   []*models.EventoRastreioPublic
	loading   bool
	loadError string
}

func NewRastreioPage(router *ui.Router) *RastreioPage {
	rp := &RastreioPage{
		router:  router,
		spinner: components.NewLoadingSpinner(theme.Colors.Primary),
	}
	rp.codigoEdit.SingleLine = true
	rp.codigoEdit.Submit = true
	rp.list.Axis = layout.Vertical
	return rp
}

// OnNavigatedTo aceita um código de pedido como parâmetro. Sem
// parâmetro a tela abre vazia com o campo de busca.
func (rp *RastreioPage) OnNavigatedTo(params interface{}) {
	if codigo, ok := params.(string); ok && codigo != "" {
		rp.codigoEdit.SetText(codigo)
		rp.consultar(codigo)
	}
}

func (rp *RastreioPage) OnNavigatedFrom() {}

// consultar dispara a busca do rastreio fora da thread da UI.
func (rp *RastreioPage) consultar(codigo string) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		rp.loadError = "Informe o código do pedido para consultar."
		return
	}
	aw := rp.router.GetAppWindow()
	rp.loading = true
	rp.loadError = ""
	rp.pedido = nil
	rp.eventos = nil
	aw.Invalidate()

	go func() {
		pedido, eventos, err := rp.router.PedidoService().GetRastreio(codigo)
		aw.Execute(func() {
			rp.loading = false
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					rp.loadError = "Pedido não encontrado. Confira o código informado."
				} else {
					appLogger.Errorf("Consulta de rastreio falhou: %v", err)
					rp.loadError = "Não foi possível consultar o rastreio. Tente novamente."
				}
				return
			}
			rp.pedido = pedido
			rp.eventos = eventos
		})
	}()
}

func (rp *RastreioPage) Layout(gtx layout.Context) layout.Dimensions {
	th := rp.router.GetTheme()

	for {
		ev, ok := rp.codigoEdit.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			rp.consultar(rp.codigoEdit.Text())
		}
	}
	if rp.searchBtn.Clicked(gtx) {
		rp.consultar(rp.codigoEdit.Text())
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(th, "Rastreio de Pedido").Layout),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
		layout.Rigid(rp.layoutBusca(th)),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if rp.loadError == "" {
				return layout.Dimensions{}
			}
			lbl := material.Body2(th, rp.loadError)
			lbl.Color = theme.Colors.Danger
			return layout.Inset{Bottom: theme.DefaultVSpacer}.Layout(gtx, lbl.Layout)
		}),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			switch {
			case rp.loading:
				rp.spinner.Start(gtx)
				return layout.Center.Layout(gtx, rp.spinner.Layout)
			case rp.pedido == nil:
				rp.spinner.Stop(gtx)
				return emptyState(th, "Consulte um código de pedido para ver a linha do tempo da entrega.")(gtx)
			}
			rp.spinner.Stop(gtx)
			return rp.layoutResultado(gtx, th)
		}),
	)
}

func (rp *RastreioPage) layoutBusca(th *material.Theme) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return widget.Border{
					Color:        theme.Colors.Border,
					Width:        unit.Dp(1),
					CornerRadius: theme.CornerRadius,
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(10)).Layout(gtx,
						material.Editor(th, &rp.codigoEdit, "Código do pedido (ex.: PED-2025-00042)").Layout)
				})
			}),
			layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
			layout.Rigid(theme.PrimaryButton(th, &rp.searchBtn, "Consultar").Layout),
		)
	}
}

func (rp *RastreioPage) layoutResultado(gtx layout.Context, th *material.Theme) layout.Dimensions {
	p := rp.pedido
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(theme.Card(unit.Dp(16), func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.H6(th, p.Codigo)
							lbl.Font.Weight = font.Bold
							return lbl.Layout(gtx)
						}),
						layout.Rigid(components.StatusBadge(th, string(p.Status))),
					)
				}),
				layout.Rigid(layout.Spacer{Height: theme.TightVSpacer}.Layout),
				layout.Rigid(rp.infoLine(th, "Pedido em", utils.FormatDate(p.DataPedido))),
				layout.Rigid(rp.infoLine(th, "Previsão de entrega", utils.FormatDatePtr(p.PrevisaoEntrega))),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if p.Transportadora == nil {
						return layout.Dimensions{}
					}
					return rp.infoLine(th, "Transportadora", *p.Transportadora)(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if p.CodigoRastreio == nil {
						return layout.Dimensions{}
					}
					return rp.infoLine(th, "Código de rastreio", *p.CodigoRastreio)(gtx)
				}),
			)
		})),
		layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(rp.eventos) == 0 {
				return emptyState(th, "Ainda não há eventos de entrega para este pedido.")(gtx)
			}
			return material.List(th, &rp.list).Layout(gtx, len(rp.eventos), func(gtx layout.Context, i int) layout.Dimensions {
				return rp.layoutEvento(gtx, th, i, rp.eventos[i])
			})
		}),
	)
}

func (rp *RastreioPage) infoLine(th *material.Theme, label, value string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(th, label+": ")
				lbl.Color = theme.Colors.TextMuted
				return lbl.Layout(gtx)
			}),
			layout.Rigid(material.Body2(th, value).Layout),
		)
	}
}

// layoutEvento desenha um evento da linha do tempo: marcador na
// esquerda, descrição e local na direita. O evento mais recente vem
// primeiro e ganha destaque.
func (rp *RastreioPage) layoutEvento(gtx layout.Context, th *material.Theme, index int, ev *models.EventoRastreioPublic) layout.Dimensions {
	markerColor := theme.Colors.Grey300
	if index == 0 {
		markerColor = theme.Colors.Primary
	}
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				size := gtx.Dp(unit.Dp(10))
				defer clip.Ellipse{Max: image.Pt(size, size)}.Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, markerColor)
				return layout.Dimensions{Size: image.Pt(size, size)}
			}),
			layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(th, ev.Descricao)
						if index == 0 {
							lbl.Font.Weight = font.Medium
						}
						return lbl.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						txt := utils.FormatDateTime(ev.DataEvento)
						if ev.Local != nil {
							txt += "  ·  " + *ev.Local
						}
						lbl := material.Body2(th, txt)
						lbl.Color = theme.Colors.TextMuted
						return lbl.Layout(gtx)
					}),
				)
			}),
		)
	})
}
