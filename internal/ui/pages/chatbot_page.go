package pages

import (
	"image"
	"strings"
	"time"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/services"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// ChatbotPage é a conversa com o assistente virtual do portal.
type ChatbotPage struct {
	router *ui.Router

	mensagens []services.MensagemChat
	list      widget.List
	inputEdit widget.Editor
	sendBtn   widget.Clickable
	spinner   *components.LoadingSpinner

	aguardando bool
}

func NewChatbotPage(router *ui.Router) *ChatbotPage {
	cp := &ChatbotPage{
		router:  router,
		spinner: components.NewLoadingSpinner(theme.Colors.Primary),
	}
	cp.inputEdit.SingleLine = true
	cp.inputEdit.Submit = true
	cp.list.Axis = layout.Vertical
	cp.list.ScrollToEnd = true
	return cp
}

func (cp *ChatbotPage) OnNavigatedTo(params interface{}) {
	if len(cp.mensagens) == 0 {
		cp.mensagens = append(cp.mensagens, services.MensagemChat{
			Texto:   "Olá! Sou o assistente do portal. Posso ajudar com a situação dos seus pedidos e boletos.",
			Horario: time.Now(),
		})
	}
}

func (cp *ChatbotPage) OnNavigatedFrom() {}

// enviar registra a mensagem do usuário e consulta o assistente fora
// da thread da UI.
func (cp *ChatbotPage) enviar() {
	texto := strings.TrimSpace(cp.inputEdit.Text())
	if texto == "" || cp.aguardando {
		return
	}
	aw := cp.router.GetAppWindow()
	user := aw.CurrentUser()
	if user == nil {
		return
	}
	cp.inputEdit.SetText("")
	cp.mensagens = append(cp.mensagens, services.MensagemChat{
		DoUsuario: true,
		Texto:     texto,
		Horario:   time.Now(),
	})
	cp.aguardando = true
	aw.Invalidate()

	go func() {
		resposta, err := cp.router.ChatbotService().Responder(user.CNPJCPF, texto)
		aw.Execute(func() {
			cp.aguardando = false
			if err != nil {
				appLogger.Warnf("Assistente falhou ao responder: %v", err)
				resposta = "Estou com dificuldade para responder agora. Tente novamente em instantes."
			}
			cp.mensagens = append(cp.mensagens, services.MensagemChat{
				Texto:   resposta,
				Horario: time.Now(),
			})
		})
	}()
}

func (cp *ChatbotPage) Layout(gtx layout.Context) layout.Dimensions {
	th := cp.router.GetTheme()

	for {
		ev, ok := cp.inputEdit.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			cp.enviar()
		}
	}
	if cp.sendBtn.Clicked(gtx) {
		cp.enviar()
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(th, "Assistente Virtual").Layout),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(th, &cp.list).Layout(gtx, len(cp.mensagens), func(gtx layout.Context, i int) layout.Dimensions {
				return cp.layoutMensagem(gtx, th, cp.mensagens[i])
			})
		}),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !cp.aguardando {
				return layout.Dimensions{}
			}
			lbl := material.Body2(th, "O assistente está digitando…")
			lbl.Color = theme.Colors.TextMuted
			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, lbl.Layout)
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return widget.Border{
						Color:        theme.Colors.Border,
						Width:        unit.Dp(1),
						CornerRadius: theme.CornerRadius,
					}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.UniformInset(unit.Dp(10)).Layout(gtx,
							material.Editor(th, &cp.inputEdit, "Pergunte sobre seus pedidos ou boletos…").Layout)
					})
				}),
				layout.Rigid(layout.Spacer{Width: theme.DefaultVSpacer}.Layout),
				layout.Rigid(theme.PrimaryButton(th, &cp.sendBtn, "Enviar").Layout),
			)
		}),
	)
}

// layoutMensagem desenha um balão de mensagem: do usuário à direita em
// azul, do assistente à esquerda em cinza.
func (cp *ChatbotPage) layoutMensagem(gtx layout.Context, th *material.Theme, m services.MensagemChat) layout.Dimensions {
	align := layout.W
	bg := theme.Colors.Grey100
	fg := theme.Colors.Text
	if m.DoUsuario {
		align = layout.E
		bg = theme.Colors.Primary
		fg = theme.Colors.PrimaryText
	}
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return align.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			// Balões ocupam no máximo 3/4 da largura disponível.
			gtx.Constraints.Max.X = gtx.Constraints.Max.X * 3 / 4
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					rr := gtx.Dp(unit.Dp(10))
					rect := image.Rectangle{Max: gtx.Constraints.Min}
					defer clip.UniformRRect(rect, rr).Push(gtx.Ops).Pop()
					paint.Fill(gtx.Ops, bg)
					return layout.Dimensions{Size: gtx.Constraints.Min}
				},
				func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(th, m.Texto)
						lbl.Color = fg
						return lbl.Layout(gtx)
					})
				},
			)
		})
	})
}
