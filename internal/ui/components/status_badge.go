package components

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// StatusBadge desenha o status de um pedido ou parcela como uma pílula
// colorida, no esquema semântico da paleta.
func StatusBadge(th *material.Theme, status string) layout.Widget {
	bg, fg := statusColors(status)
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, status)
		lbl.Color = fg
		lbl.TextSize = unit.Sp(12)
		lbl.Font.Weight = font.Medium

		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Constraints.Min.Y / 2
				rect := image.Rectangle{Max: gtx.Constraints.Min}
				defer clip.UniformRRect(rect, rr).Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, bg)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{
					Top: unit.Dp(3), Bottom: unit.Dp(3),
					Left: unit.Dp(10), Right: unit.Dp(10),
				}.Layout(gtx, lbl.Layout)
			},
		)
	}
}

func statusColors(status string) (bg, fg color.NRGBA) {
	switch status {
	case string(models.PedidoEntregue), string(models.FaturaPaga):
		return theme.Colors.SuccessBg, theme.Colors.SuccessText
	case string(models.PedidoEmTransito):
		return theme.Colors.InfoBg, theme.Colors.InfoText
	case string(models.PedidoEmSeparacao), string(models.PedidoFaturado), string(models.FaturaAberta):
		return theme.Colors.WarningBg, theme.Colors.WarningText
	case string(models.PedidoCancelado), string(models.FaturaVencida), string(models.FaturaCancelada):
		return theme.Colors.DangerBg, theme.Colors.DangerText
	}
	return theme.Colors.Grey200, theme.Colors.Grey600
}
