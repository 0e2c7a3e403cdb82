package pages

import (
	"fmt"
	"strings"
	"time"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/datatable"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/utils"
)

// Colunas ordenáveis da tabela de pedidos.
const (
	pedidoColCodigo = "codigo"
	pedidoColData   = "data"
	pedidoColValor  = "valor"
	pedidoColStatus = "status"
)

// PedidosPage é a tela de pedidos: a tabela filtrável, ordenável e
// paginada, com recarga por período e exportação da visão filtrada.
type PedidosPage struct {
	router        *ui.Router
	abrirRastreio func(codigo string)

	ctrl      *datatable.Controller[*models.PedidoPublic]
	filterBar components.FilterBar
	pagBar    components.PaginationBar
	list      widget.List

	periodClicks []widget.Clickable
	periodDays   int

	headerClicks map[string]*widget.Clickable
	rowClicks    []widget.Clickable
	exportBtn    widget.Clickable
	retryBtn     widget.Clickable
	spinner      *components.LoadingSpinner

	exporting bool
	loaded    bool
}

// NewPedidosPage cria a página e monta o controlador da tabela.
func NewPedidosPage(router *ui.Router, abrirRastreio func(codigo string)) *PedidosPage {
	pp := &PedidosPage{
		router:        router,
		abrirRastreio: abrirRastreio,
		periodClicks:  make([]widget.Clickable, len(periodOptions)),
		periodDays:    periodOptions[0].Days,
		spinner:       components.NewLoadingSpinner(theme.Colors.Primary),
		headerClicks: map[string]*widget.Clickable{
			pedidoColCodigo: {},
			pedidoColData:   {},
			pedidoColValor:  {},
			pedidoColStatus: {},
		},
	}
	pp.list.Axis = layout.Vertical

	catalog := datatable.MustCatalog([]datatable.FilterField{
		{Key: models.PedidoCampoCodigo, Label: "Código", Kind: datatable.CompareNumeric},
		{Key: models.PedidoCampoStatus, Label: "Status", Kind: datatable.CompareText},
		{Key: models.PedidoCampoCNPJ, Label: "CNPJ", Kind: datatable.CompareDocument},
		{Key: models.PedidoCampoData, Label: "Data do pedido", Kind: datatable.CompareDateRange},
	})

	aw := router.GetAppWindow()
	cfg := router.GetConfig()
	ctrl, err := datatable.NewController(datatable.Options[*models.PedidoPublic]{
		Catalog:          catalog,
		PageSize:         cfg.DefaultPageSize,
		DebounceInterval: cfg.DebounceInterval,
		Fetch: func(start, end time.Time) ([]*models.PedidoPublic, error) {
			user := aw.CurrentUser()
			if user == nil {
				return nil, fmt.Errorf("sessão encerrada durante a recarga")
			}
			return router.PedidoService().GetPedidosPorPeriodo(user.CNPJCPF, start, end)
		},
		Post:     aw.Execute,
		OnChange: aw.Invalidate,
		Comparators: map[string]func(a, b *models.PedidoPublic) int{
			pedidoColCodigo: func(a, b *models.PedidoPublic) int {
				return strings.Compare(a.Codigo, b.Codigo)
			},
			pedidoColData: func(a, b *models.PedidoPublic) int {
				return a.DataPedido.Compare(b.DataPedido)
			},
			pedidoColValor: func(a, b *models.PedidoPublic) int {
				return a.ValorTotal.Cmp(b.ValorTotal)
			},
			pedidoColStatus: func(a, b *models.PedidoPublic) int {
				return strings.Compare(string(a.Status), string(b.Status))
			},
		},
	})
	if err != nil {
		appLogger.Fatalf("Falha ao montar o controlador da tabela de pedidos: %v", err)
	}
	pp.ctrl = ctrl

	pp.filterBar.OnFieldSelect = func(key string) datatable.UIIntent {
		intent, err := pp.ctrl.SetFilterField(key)
		if err != nil {
			appLogger.Warnf("Campo de filtro rejeitado: %v", err)
		}
		return intent
	}
	pp.filterBar.OnValueChange = func(text string) {
		if err := pp.ctrl.SetFilterValue(text); err != nil {
			appLogger.Warnf("Valor de filtro rejeitado: %v", err)
		}
	}
	pp.filterBar.OnRangeApply = func(start, end *time.Time) {
		if err := pp.ctrl.SetDateRange(start, end); err != nil {
			appLogger.Warnf("Intervalo de filtro rejeitado: %v", err)
			return
		}
		pp.ctrl.ApplyDateRangeFilter()
	}
	pp.filterBar.OnClear = func() {
		pp.ctrl.ClearFilter()
	}
	pp.pagBar.OnSelect = func(page int) {
		pp.ctrl.SetPage(page)
	}
	return pp
}

func (pp *PedidosPage) OnNavigatedTo(params interface{}) {
	// Primeira visita carrega o período padrão; retornos mantêm a
	// visão (critério, ordenação e página) como o usuário deixou.
	if !pp.loaded {
		pp.loaded = true
		pp.refetch()
	}
}

func (pp *PedidosPage) OnNavigatedFrom() {}

func (pp *PedidosPage) refetch() {
	start, end := periodRange(pp.periodDays)
	pp.ctrl.RefetchRange(start, end)
}

func (pp *PedidosPage) Layout(gtx layout.Context) layout.Dimensions {
	th := pp.router.GetTheme()

	// Seletor de período.
	for i := range periodOptions {
		if pp.periodClicks[i].Clicked(gtx) {
			pp.periodDays = periodOptions[i].Days
			pp.refetch()
		}
	}
	if pp.retryBtn.Clicked(gtx) {
		pp.refetch()
	}
	if pp.exportBtn.Clicked(gtx) {
		pp.handleExport()
	}
	pp.handleSortClicks(gtx)

	rows := pp.ctrl.VisibleRows()
	if len(pp.rowClicks) < len(rows) {
		pp.rowClicks = make([]widget.Clickable, len(rows))
	}
	for i := range rows {
		if pp.rowClicks[i].Clicked(gtx) {
			pp.abrirRastreio(rows[i].Codigo)
		}
	}

	main := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(th, "Meus Pedidos").Layout),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		// Período + exportação.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layoutPeriodSelector(gtx, th, pp.periodClicks, pp.periodDays)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					label := "Exportar XLSX"
					if pp.exporting {
						label = "Exportando…"
					}
					return theme.OutlineButton(th, &pp.exportBtn, label).Layout(gtx)
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		// Barra de filtro.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return pp.filterBar.Layout(gtx, th, pp.ctrl.Catalog(), pp.ctrl.Criterion())
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		// Faixa de erro de recarga (o conjunto anterior permanece).
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if pp.ctrl.State() != datatable.StateError {
				return layout.Dimensions{}
			}
			return layout.Inset{Bottom: theme.DefaultVSpacer}.Layout(gtx,
				errorBanner(th, "Não foi possível recarregar os pedidos do período.", &pp.retryBtn))
		}),

		// Cabeçalho da tabela.
		layout.Rigid(pp.layoutHeader(th)),

		// Linhas.
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if pp.ctrl.IsLoading() {
				pp.spinner.Start(gtx)
				return layout.Center.Layout(gtx, pp.spinner.Layout)
			}
			pp.spinner.Stop(gtx)
			if len(rows) == 0 {
				return emptyState(th, "Nenhum pedido encontrado para o filtro atual.")(gtx)
			}
			return material.List(th, &pp.list).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
				return pp.layoutRow(gtx, th, i, rows[i])
			})
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		// Rodapé: contagem e paginação.
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					txt := fmt.Sprintf("%d de %d pedidos", pp.ctrl.TotalFilteredCount(), pp.ctrl.TotalCount())
					lbl := material.Body2(th, txt)
					lbl.Color = theme.Colors.TextMuted
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					pp.pagBar.Compact = gtx.Constraints.Max.X < gtx.Dp(unit.Dp(520))
					return pp.pagBar.Layout(gtx, th, pp.ctrl.CurrentPage(), pp.ctrl.PageCount())
				}),
			)
		}),
	)

	// Diálogo de período sobreposto.
	if pp.filterBar.RangePickerOpen() {
		return layout.Stack{}.Layout(gtx,
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}),
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				return pp.filterBar.LayoutRangeDialog(gtx, th)
			}),
		)
	}
	return main
}

// handleSortClicks alterna a ordenação da coluna clicada: primeira vez
// ascendente, segunda descendente, terceira volta à ordem natural.
func (pp *PedidosPage) handleSortClicks(gtx layout.Context) {
	for col, click := range pp.headerClicks {
		if !click.Clicked(gtx) {
			continue
		}
		curCol, curDir := pp.ctrl.SortState()
		switch {
		case curCol != col:
			pp.ctrl.SetSort(col, datatable.SortAsc)
		case curDir == datatable.SortAsc:
			pp.ctrl.SetSort(col, datatable.SortDesc)
		default:
			pp.ctrl.ClearSort()
		}
	}
}

func (pp *PedidosPage) sortMark(col string) string {
	curCol, curDir := pp.ctrl.SortState()
	if curCol != col {
		return ""
	}
	if curDir == datatable.SortAsc {
		return "▲"
	}
	return "▼"
}

func (pp *PedidosPage) layoutHeader(th *material.Theme) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(2, pp.sortableHeader(th, "Código", pedidoColCodigo)),
				layout.Flexed(2, pp.sortableHeader(th, "Data", pedidoColData)),
				layout.Flexed(1, headerCell(th, "Itens", "")),
				layout.Flexed(2, pp.sortableHeader(th, "Valor", pedidoColValor)),
				layout.Flexed(2, pp.sortableHeader(th, "Status", pedidoColStatus)),
				layout.Flexed(2, headerCell(th, "Transportadora", "")),
			)
		})
	}
}

func (pp *PedidosPage) sortableHeader(th *material.Theme, label, col string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return pp.headerClicks[col].Layout(gtx, headerCell(th, label, pp.sortMark(col)))
	}
}

func (pp *PedidosPage) layoutRow(gtx layout.Context, th *material.Theme, index int, p *models.PedidoPublic) layout.Dimensions {
	return pp.rowClicks[index].Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		zebraBackground(gtx, index)
		transp := "—"
		if p.Transportadora != nil {
			transp = *p.Transportadora
		}
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(2, bodyCell(th, p.Codigo)),
				layout.Flexed(2, bodyCell(th, utils.FormatDate(p.DataPedido))),
				layout.Flexed(1, bodyCell(th, fmt.Sprintf("%d", p.QuantidadeItens))),
				layout.Flexed(2, bodyCell(th, utils.FormatMoney(p.ValorTotal))),
				layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
					return components.StatusBadge(th, string(p.Status))(gtx)
				}),
				layout.Flexed(2, mutedCell(th, transp)),
			)
		})
	})
}

// handleExport exporta a visão filtrada e ordenada corrente (todas as
// páginas) para XLSX.
func (pp *PedidosPage) handleExport() {
	if pp.exporting {
		return
	}
	rows := pp.ctrl.FilteredRows()
	if len(rows) == 0 {
		pp.router.GetAppWindow().ShowGlobalMessage("Nada para exportar com o filtro atual.", true, 4*time.Second)
		return
	}
	pp.exporting = true

	data := make([][]string, 0, len(rows)+1)
	data = append(data, []string{"Código", "Data", "Qtde Itens", "Valor (R$)", "Status", "Transportadora", "Rastreio"})
	for _, p := range rows {
		transp, rastreio := "", ""
		if p.Transportadora != nil {
			transp = *p.Transportadora
		}
		if p.CodigoRastreio != nil {
			rastreio = *p.CodigoRastreio
		}
		data = append(data, []string{
			p.Codigo,
			utils.FormatDate(p.DataPedido),
			fmt.Sprintf("%d", p.QuantidadeItens),
			p.ValorTotal.StringFixedBank(2),
			string(p.Status),
			transp,
			rastreio,
		})
	}

	aw := pp.router.GetAppWindow()
	cfg := pp.router.GetConfig()
	go func() {
		input, err := utils.NewSliceDataInput(data, "Pedidos")
		var path string
		if err == nil {
			fileName := fmt.Sprintf("pedidos_%s.xlsx", time.Now().Format("20060102_150405"))
			path, err = utils.ExportToXLSX([]utils.DataInput{input}, fileName, cfg, nil)
		}
		aw.Execute(func() {
			pp.exporting = false
			if err != nil {
				appLogger.Errorf("Exportação de pedidos falhou: %v", err)
				aw.ShowGlobalMessage("Falha ao exportar os pedidos.", true, 5*time.Second)
				return
			}
			aw.ShowGlobalMessage("Pedidos exportados para "+path, false, 6*time.Second)
		})
	}()
}
