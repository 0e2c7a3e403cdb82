package pages

import (
	"image"
	"image/color"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// scrimColor é o véu translúcido atrás de diálogos modais.
var scrimColor = color.NRGBA{R: 0, G: 0, B: 0, A: 0x66}

// periodOption é uma opção do seletor de período grosseiro das
// tabelas (a recarga completa, distinta do filtro em memória).
type periodOption struct {
	Label string
	Days  int
}

var periodOptions = []periodOption{
	{Label: "30 dias", Days: 30},
	{Label: "90 dias", Days: 90},
	{Label: "180 dias", Days: 180},
}

// periodRange converte a opção em um intervalo [hoje-dias, hoje].
func periodRange(days int) (start, end time.Time) {
	end = time.Now()
	start = end.AddDate(0, 0, -days)
	return start, end
}

// layoutPeriodSelector desenha a fileira de opções de período.
func layoutPeriodSelector(gtx layout.Context, th *material.Theme, clicks []widget.Clickable, selectedDays int) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(periodOptions))
	for i, opt := range periodOptions {
		i, opt := i, opt
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(th, &clicks[i], opt.Label)
			btn.CornerRadius = theme.CornerRadius
			btn.TextSize = unit.Sp(13)
			btn.Inset = layout.Inset{Top: unit.Dp(5), Bottom: unit.Dp(5), Left: unit.Dp(10), Right: unit.Dp(10)}
			if opt.Days == selectedDays {
				btn.Background = theme.Colors.PrimaryDark
				btn.Color = theme.Colors.PrimaryText
			} else {
				btn.Background = theme.Colors.Grey100
				btn.Color = theme.Colors.Grey600
			}
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, btn.Layout)
		}))
	}
	return layout.Flex{}.Layout(gtx, children...)
}

// headerCell desenha uma célula de cabeçalho de tabela, com a seta de
// ordenação quando a coluna é a ordenada.
func headerCell(th *material.Theme, label string, sortMark string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		text := label
		if sortMark != "" {
			text += " " + sortMark
		}
		lbl := material.Body2(th, text)
		lbl.Font.Weight = font.Bold
		lbl.Color = theme.Colors.Grey800
		return lbl.Layout(gtx)
	}
}

// bodyCell desenha uma célula comum de linha de tabela.
func bodyCell(th *material.Theme, text string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, text)
		lbl.Color = theme.Colors.Text
		return lbl.Layout(gtx)
	}
}

// mutedCell desenha uma célula com texto sutil.
func mutedCell(th *material.Theme, text string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, text)
		lbl.Color = theme.Colors.TextMuted
		return lbl.Layout(gtx)
	}
}

// zebraBackground pinta o fundo alternado das linhas.
func zebraBackground(gtx layout.Context, index int) {
	if index%2 == 1 {
		paint.FillShape(gtx.Ops, theme.Colors.BackgroundAlt,
			clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Min.Y)}.Op())
	}
}

// errorBanner desenha a faixa de erro de recarga com ação de repetir.
func errorBanner(th *material.Theme, message string, retry *widget.Clickable) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(theme.CornerRadius)
				rect := image.Rectangle{Max: gtx.Constraints.Min}
				defer clip.UniformRRect(rect, rr).Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, theme.Colors.DangerBg)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(th, message)
							lbl.Color = theme.Colors.DangerText
							return lbl.Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							btn := material.Button(th, retry, "Tentar novamente")
							btn.Background = theme.Colors.Danger
							btn.Color = theme.Colors.White
							btn.TextSize = unit.Sp(13)
							btn.CornerRadius = theme.CornerRadius
							return btn.Layout(gtx)
						}),
					)
				})
			},
		)
	}
}

// emptyState desenha a mensagem central de tabela vazia.
func emptyState(th *material.Theme, message string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body1(th, message)
			lbl.Color = theme.Colors.TextMuted
			return layout.UniformInset(unit.Dp(32)).Layout(gtx, lbl.Layout)
		})
	}
}
