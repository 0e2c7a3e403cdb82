package components

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	mdicons "golang.org/x/exp/shiny/materialdesign/icons"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// PasswordInput é um widget de entrada de senha com ícone de
// alternância de visibilidade.
type PasswordInput struct {
	Editor       widget.Editor
	isVisible    bool             // Controla se a senha está visível ou mascarada
	toggleButton widget.Clickable // Botão para alternar a visibilidade
	eyeIcon      *widget.Icon     // Ícone para "senha visível"
	eyeOffIcon   *widget.Icon     // Ícone para "senha mascarada"

	// OnSubmit é chamado quando o usuário pressiona Enter no editor.
	OnSubmit func(text string)

	hint string
}

// NewPasswordInput cria uma nova instância de PasswordInput.
func NewPasswordInput() *PasswordInput {
	pi := &PasswordInput{
		Editor: widget.Editor{
			SingleLine: true,
			Mask:       '*', // Começa mascarado por padrão
			Submit:     true,
		},
	}

	var err error
	pi.eyeIcon, err = widget.NewIcon(mdicons.ActionVisibility)
	if err != nil {
		appLogger.Errorf("Falha ao carregar ícone 'visibility': %v", err)
	}
	pi.eyeOffIcon, err = widget.NewIcon(mdicons.ActionVisibilityOff)
	if err != nil {
		appLogger.Errorf("Falha ao carregar ícone 'visibility_off': %v", err)
	}
	return pi
}

// SetHint define o texto de dica para o campo de senha.
func (pi *PasswordInput) SetHint(hint string) {
	pi.hint = hint
}

// Text retorna o texto atual do editor.
func (pi *PasswordInput) Text() string {
	return pi.Editor.Text()
}

// SetText define o texto do editor.
func (pi *PasswordInput) SetText(txt string) {
	pi.Editor.SetText(txt)
}

// Clear limpa o texto do editor.
func (pi *PasswordInput) Clear() {
	pi.Editor.SetText("")
}

// Layout desenha o componente PasswordInput.
func (pi *PasswordInput) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	// Processar eventos do editor de texto.
	for {
		ev, ok := pi.Editor.Update(gtx)
		if !ok {
			break
		}
		if _, submitted := ev.(widget.SubmitEvent); submitted && pi.OnSubmit != nil {
			pi.OnSubmit(pi.Editor.Text())
		}
	}

	// Processar clique no botão de alternar visibilidade.
	if pi.toggleButton.Clicked(gtx) {
		pi.isVisible = !pi.isVisible
		if pi.isVisible {
			pi.Editor.Mask = 0 // Sem máscara (senha visível)
		} else {
			pi.Editor.Mask = '*'
		}
	}

	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			border := widget.Border{
				Color:        theme.Colors.Border,
				CornerRadius: theme.CornerRadius,
				Width:        theme.BorderWidthDefault,
			}

			inputEditor := material.Editor(th, &pi.Editor, pi.hint)
			inputEditor.Font.Weight = font.Normal
			inputEditor.TextSize = unit.Sp(14)

			return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				// O ícone de toggle é desenhado sobreposto, então o
				// padding direito acomoda o espaço dele.
				return layout.Inset{
					Top: unit.Dp(8), Bottom: unit.Dp(8),
					Left: unit.Dp(10), Right: unit.Dp(36),
				}.Layout(gtx, inputEditor.Layout)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			// Inset negativo para mover o ícone para dentro da borda.
			return layout.Inset{Left: unit.Dp(-32), Right: unit.Dp(4)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					iconToShow := pi.eyeOffIcon
					if pi.isVisible {
						iconToShow = pi.eyeIcon
					}
					if iconToShow == nil {
						return layout.Dimensions{}
					}
					btn := material.IconButton(th, &pi.toggleButton, iconToShow, "Alternar visibilidade da senha")
					btn.Background = color.NRGBA{}
					btn.Color = theme.Colors.TextMuted
					btn.Inset = layout.UniformInset(unit.Dp(6))
					return btn.Layout(gtx)
				},
			)
		}),
	)
}
