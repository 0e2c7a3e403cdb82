package components

import (
	"strconv"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/datatable"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/icons"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// PaginationBar desenha a sequência de páginas com reticências, mais
// os botões de anterior/próxima. A sequência em si vem do controlador
// da tabela; o componente só a apresenta.
type PaginationBar struct {
	// OnSelect é chamado com o número (1-based) da página escolhida.
	OnSelect func(page int)

	// Compact troca para a densidade reduzida da sequência em
	// janelas estreitas.
	Compact bool

	prevBtn  widget.Clickable
	nextBtn  widget.Clickable
	pageBtns []widget.Clickable
}

// Layout desenha a barra para o estado atual de `current`/`count`.
func (pb *PaginationBar) Layout(gtx layout.Context, th *material.Theme, current, count int) layout.Dimensions {
	density := datatable.DensityFull
	if pb.Compact {
		density = datatable.DensityCompact
	}
	markers := datatable.PageSequence(current, count, density)
	if len(markers) == 0 {
		return layout.Dimensions{}
	}

	// Um clickable por marcador, reutilizados entre frames.
	if len(pb.pageBtns) < len(markers) {
		pb.pageBtns = make([]widget.Clickable, len(markers))
	}

	if pb.prevBtn.Clicked(gtx) && current > 1 && pb.OnSelect != nil {
		pb.OnSelect(current - 1)
	}
	if pb.nextBtn.Clicked(gtx) && current < count && pb.OnSelect != nil {
		pb.OnSelect(current + 1)
	}
	for i, m := range markers {
		if m.Kind == datatable.MarkerNumber && pb.pageBtns[i].Clicked(gtx) && pb.OnSelect != nil {
			pb.OnSelect(m.Page)
		}
	}

	children := make([]layout.FlexChild, 0, len(markers)+2)

	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return pb.layoutArrow(gtx, th, &pb.prevBtn, icons.IconChevronLeft, current > 1)
	}))

	for i, m := range markers {
		i, m := i, m
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if m.Kind == datatable.MarkerEllipsis {
				lbl := material.Body1(th, "…")
				lbl.Color = theme.Colors.TextMuted
				return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, lbl.Layout)
			}
			return pb.layoutPageButton(gtx, th, &pb.pageBtns[i], m.Page, m.Page == current)
		}))
	}

	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return pb.layoutArrow(gtx, th, &pb.nextBtn, icons.IconChevronRight, current < count)
	}))

	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

func (pb *PaginationBar) layoutPageButton(gtx layout.Context, th *material.Theme, click *widget.Clickable, page int, isCurrent bool) layout.Dimensions {
	btn := material.Button(th, click, strconv.Itoa(page))
	btn.CornerRadius = theme.CornerRadius
	btn.Inset = layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(10), Right: unit.Dp(10)}
	if isCurrent {
		btn.Background = theme.Colors.Primary
		btn.Color = theme.Colors.PrimaryText
		btn.Font.Weight = font.Bold
	} else {
		btn.Background = theme.Colors.Surface
		btn.Color = theme.Colors.Text
	}
	return layout.Inset{Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx, btn.Layout)
}

func (pb *PaginationBar) layoutArrow(gtx layout.Context, th *material.Theme, click *widget.Clickable, icon icons.IconType, enabled bool) layout.Dimensions {
	btn := material.IconButton(th, click, icons.MustGet(icon), "")
	btn.Background = theme.Colors.Surface
	btn.Color = theme.Colors.Primary
	if !enabled {
		btn.Color = theme.Colors.Grey300
	}
	btn.Inset = layout.UniformInset(unit.Dp(6))
	return btn.Layout(gtx)
}
