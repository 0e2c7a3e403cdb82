package components

import (
	"fmt"
	"strings"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/datatable"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/icons"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

const dateLayoutBR = "02/01/2006"

// FilterBar é a barra de filtro das tabelas do portal: a fileira de
// campos filtráveis, o campo de busca textual e o seletor de período
// para o campo de data. O estado do critério mora no controlador da
// tabela; a barra apenas emite as transições.
type FilterBar struct {
	// OnFieldSelect troca o campo ativo no controlador e retorna o
	// UIIntent da transição. A barra abre o seletor de período quando
	// o intent pede.
	OnFieldSelect func(key string) datatable.UIIntent
	// OnValueChange repassa cada tecla do campo textual (o debounce é
	// do controlador, não da barra).
	OnValueChange func(text string)
	// OnRangeApply confirma o intervalo de datas escolhido. Lados nulos
	// significam intervalo aberto daquele lado.
	OnRangeApply func(start, end *time.Time)
	// OnClear limpa o critério inteiro.
	OnClear func()

	fieldBtns []widget.Clickable
	editor    widget.Editor
	clearBtn  widget.Clickable
	rangeBtn  widget.Clickable

	// Estado do diálogo de período.
	rangeOpen   bool
	startEditor widget.Editor
	endEditor   widget.Editor
	applyBtn    widget.Clickable
	cancelBtn   widget.Clickable
	rangeErr    string

	editorInit bool
}

// OpenRangePicker abre o diálogo de período. As páginas chamam isso
// quando o controlador devolve IntentOpenRangePicker.
func (fb *FilterBar) OpenRangePicker() {
	fb.rangeOpen = true
	fb.rangeErr = ""
}

// RangePickerOpen informa se o diálogo de período está visível. O
// diálogo é desenhado por cima da tabela pela página.
func (fb *FilterBar) RangePickerOpen() bool { return fb.rangeOpen }

// ResetEditor limpa o campo textual (usado após ClearFilter ou troca
// de campo, para o texto exibido acompanhar o critério).
func (fb *FilterBar) ResetEditor() {
	fb.editor.SetText("")
}

// Layout desenha a barra para o estado atual do critério.
func (fb *FilterBar) Layout(gtx layout.Context, th *material.Theme, catalog *datatable.Catalog, crit *datatable.Criterion) layout.Dimensions {
	if !fb.editorInit {
		fb.editor.SingleLine = true
		fb.startEditor.SingleLine = true
		fb.endEditor.SingleLine = true
		fb.editorInit = true
	}

	fields := catalog.Fields()
	if len(fb.fieldBtns) < len(fields) {
		fb.fieldBtns = make([]widget.Clickable, len(fields))
	}

	// Cliques nos chips de campo.
	for i, f := range fields {
		if fb.fieldBtns[i].Clicked(gtx) && fb.OnFieldSelect != nil {
			fb.ResetEditor()
			if fb.OnFieldSelect(f.Key) == datatable.IntentOpenRangePicker {
				fb.OpenRangePicker()
			} else {
				fb.rangeOpen = false
			}
		}
	}
	if fb.rangeBtn.Clicked(gtx) {
		fb.OpenRangePicker()
	}
	if fb.clearBtn.Clicked(gtx) && fb.OnClear != nil {
		fb.ResetEditor()
		fb.startEditor.SetText("")
		fb.endEditor.SetText("")
		fb.rangeOpen = false
		fb.OnClear()
	}

	// Teclas do campo textual.
	for {
		ev, ok := fb.editor.Update(gtx)
		if !ok {
			break
		}
		if _, changed := ev.(widget.ChangeEvent); changed && fb.OnValueChange != nil {
			fb.OnValueChange(fb.editor.Text())
		}
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Linha 1: chips de campo.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			children := make([]layout.FlexChild, 0, len(fields))
			for i, f := range fields {
				i, f := i, f
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return fb.layoutFieldChip(gtx, th, &fb.fieldBtns[i], f, crit.Field().Key == f.Key)
					})
				}))
			}
			return layout.Flex{}.Layout(gtx, children...)
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
		// Linha 2: editor textual ou botão de período, mais o limpar.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					if crit.Field().IsDateRange() {
						return fb.layoutRangeSummary(gtx, th, crit)
					}
					return fb.layoutValueEditor(gtx, th, crit)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := theme.OutlineButton(th, &fb.clearBtn, "Limpar")
					return btn.Layout(gtx)
				}),
			)
		}),
	)
}

func (fb *FilterBar) layoutFieldChip(gtx layout.Context, th *material.Theme, click *widget.Clickable, f datatable.FilterField, selected bool) layout.Dimensions {
	btn := material.Button(th, click, f.Label)
	btn.CornerRadius = unit.Dp(14)
	btn.Inset = layout.Inset{Top: unit.Dp(5), Bottom: unit.Dp(5), Left: unit.Dp(12), Right: unit.Dp(12)}
	btn.TextSize = unit.Sp(13)
	if selected {
		btn.Background = theme.Colors.Primary
		btn.Color = theme.Colors.PrimaryText
		btn.Font.Weight = font.Bold
	} else {
		btn.Background = theme.Colors.Grey100
		btn.Color = theme.Colors.Grey600
	}
	return btn.Layout(gtx)
}

func (fb *FilterBar) layoutValueEditor(gtx layout.Context, th *material.Theme, crit *datatable.Criterion) layout.Dimensions {
	border := widget.Border{
		Color:        theme.Colors.Border,
		CornerRadius: theme.CornerRadius,
		Width:        theme.BorderWidthDefault,
	}
	hint := fmt.Sprintf("Filtrar por %s…", crit.Field().Label)
	ed := material.Editor(th, &fb.editor, hint)
	ed.TextSize = unit.Sp(14)
	return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return icons.Layout(gtx, icons.MustGet(icons.IconSearch), unit.Dp(18), theme.Colors.TextMuted)
				})
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{
					Top: unit.Dp(8), Bottom: unit.Dp(8),
					Left: unit.Dp(8), Right: unit.Dp(10),
				}.Layout(gtx, ed.Layout)
			}),
		)
	})
}

// layoutRangeSummary mostra o intervalo aplicado e reabre o seletor.
func (fb *FilterBar) layoutRangeSummary(gtx layout.Context, th *material.Theme, crit *datatable.Criterion) layout.Dimensions {
	label := "Selecionar período…"
	if start, end, ok := crit.Range(); ok {
		label = fmt.Sprintf("Período: %s a %s", start.Format(dateLayoutBR), end.Format(dateLayoutBR))
	}
	btn := theme.OutlineButton(th, &fb.rangeBtn, label)
	return btn.Layout(gtx)
}

// LayoutRangeDialog desenha o diálogo de seleção de período. A página
// o sobrepõe à tabela enquanto RangePickerOpen for verdadeiro.
func (fb *FilterBar) LayoutRangeDialog(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if fb.applyBtn.Clicked(gtx) {
		fb.applyRange()
	}
	if fb.cancelBtn.Clicked(gtx) {
		fb.rangeOpen = false
		fb.rangeErr = ""
	}

	card := theme.Card(unit.Dp(20), func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Dp(unit.Dp(340))
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H6(th, "Filtrar por período").Layout),
			layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
			layout.Rigid(fb.dateField(th, "Data inicial (dd/mm/aaaa)", &fb.startEditor)),
			layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),
			layout.Rigid(fb.dateField(th, "Data final (dd/mm/aaaa)", &fb.endEditor)),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if fb.rangeErr == "" {
					return layout.Dimensions{}
				}
				lbl := material.Body2(th, fb.rangeErr)
				lbl.Color = theme.Colors.Danger
				return layout.Inset{Top: unit.Dp(6)}.Layout(gtx, lbl.Layout)
			}),
			layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(theme.OutlineButton(th, &fb.cancelBtn, "Cancelar").Layout),
					layout.Rigid(theme.PrimaryButton(th, &fb.applyBtn, "Aplicar").Layout),
				)
			}),
		)
	})
	return layout.Center.Layout(gtx, card)
}

func (fb *FilterBar) dateField(th *material.Theme, label string, ed *widget.Editor) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.Body2(th, label).Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				border := widget.Border{
					Color:        theme.Colors.Border,
					CornerRadius: theme.CornerRadius,
					Width:        theme.BorderWidthDefault,
				}
				return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, material.Editor(th, ed, "dd/mm/aaaa").Layout)
				})
			}),
		)
	}
}

// applyRange valida os campos digitados e confirma o intervalo. Campos
// vazios viram lados abertos; os dois vazios desfazem o filtro.
func (fb *FilterBar) applyRange() {
	start, errS := parseDateBR(fb.startEditor.Text())
	end, errE := parseDateBR(fb.endEditor.Text())
	if errS != nil || errE != nil {
		fb.rangeErr = "Data inválida. Use o formato dd/mm/aaaa."
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		fb.rangeErr = "A data final não pode ser anterior à inicial."
		return
	}

	fb.rangeErr = ""
	fb.rangeOpen = false
	if fb.OnRangeApply != nil {
		fb.OnRangeApply(start, end)
	}
}

// parseDateBR interpreta "dd/mm/aaaa"; vazio é um lado aberto.
func parseDateBR(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayoutBR, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
