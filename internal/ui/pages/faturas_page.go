package pages

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gioui.org/io/clipboard"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/datatable"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/icons"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/utils"
)

// Colunas ordenáveis da tabela de faturas.
const (
	faturaColDocumento  = "documento"
	faturaColVencimento = "vencimento"
	faturaColValor      = "valor"
	faturaColStatus     = "status"
)

// FaturasPage é a tela de faturas e boletos: tabela filtrável de
// parcelas com segunda via (linha digitável) e exportação.
type FaturasPage struct {
	router *ui.Router

	ctrl      *datatable.Controller[*models.FaturaPublic]
	filterBar components.FilterBar
	pagBar    components.PaginationBar
	list      widget.List

	periodClicks []widget.Clickable
	periodDays   int

	headerClicks map[string]*widget.Clickable
	copyClicks   []widget.Clickable
	exportBtn    widget.Clickable
	retryBtn     widget.Clickable
	spinner      *components.LoadingSpinner

	exporting bool
	loaded    bool
}

// NewFaturasPage cria a página e monta o controlador da tabela.
func NewFaturasPage(router *ui.Router) *FaturasPage {
	fp := &FaturasPage{
		router:       router,
		periodClicks: make([]widget.Clickable, len(periodOptions)),
		periodDays:   periodOptions[1].Days, // Boletos olham mais para trás
		spinner:      components.NewLoadingSpinner(theme.Colors.Primary),
		headerClicks: map[string]*widget.Clickable{
			faturaColDocumento:  {},
			faturaColVencimento: {},
			faturaColValor:      {},
			faturaColStatus:     {},
		},
	}
	fp.list.Axis = layout.Vertical

	catalog := datatable.MustCatalog([]datatable.FilterField{
		{Key: models.FaturaCampoDocumento, Label: "Documento", Kind: datatable.CompareNumeric},
		{Key: models.FaturaCampoStatus, Label: "Status", Kind: datatable.CompareText},
		{Key: models.FaturaCampoCNPJ, Label: "CNPJ", Kind: datatable.CompareDocument},
		{Key: models.FaturaCampoVencimento, Label: "Vencimento", Kind: datatable.CompareDateRange},
	})

	aw := router.GetAppWindow()
	cfg := router.GetConfig()
	ctrl, err := datatable.NewController(datatable.Options[*models.FaturaPublic]{
		Catalog:          catalog,
		PageSize:         cfg.DefaultPageSize,
		DebounceInterval: cfg.DebounceInterval,
		Fetch: func(start, end time.Time) ([]*models.FaturaPublic, error) {
			user := aw.CurrentUser()
			if user == nil {
				return nil, fmt.Errorf("sessão encerrada durante a recarga")
			}
			return router.FaturaService().GetFaturasPorPeriodo(user.CNPJCPF, start, end)
		},
		Post:     aw.Execute,
		OnChange: aw.Invalidate,
		Comparators: map[string]func(a, b *models.FaturaPublic) int{
			faturaColDocumento: func(a, b *models.FaturaPublic) int {
				if c := strings.Compare(a.NumeroDocumento, b.NumeroDocumento); c != 0 {
					return c
				}
				return a.Parcela - b.Parcela
			},
			faturaColVencimento: func(a, b *models.FaturaPublic) int {
				return a.DataVencimento.Compare(b.DataVencimento)
			},
			faturaColValor: func(a, b *models.FaturaPublic) int {
				return a.Valor.Cmp(b.Valor)
			},
			faturaColStatus: func(a, b *models.FaturaPublic) int {
				return strings.Compare(string(a.Status), string(b.Status))
			},
		},
	})
	if err != nil {
		appLogger.Fatalf("Falha ao montar o controlador da tabela de faturas: %v", err)
	}
	fp.ctrl = ctrl

	fp.filterBar.OnFieldSelect = func(key string) datatable.UIIntent {
		intent, err := fp.ctrl.SetFilterField(key)
		if err != nil {
			appLogger.Warnf("Campo de filtro rejeitado: %v", err)
		}
		return intent
	}
	fp.filterBar.OnValueChange = func(text string) {
		if err := fp.ctrl.SetFilterValue(text); err != nil {
			appLogger.Warnf("Valor de filtro rejeitado: %v", err)
		}
	}
	fp.filterBar.OnRangeApply = func(start, end *time.Time) {
		if err := fp.ctrl.SetDateRange(start, end); err != nil {
			appLogger.Warnf("Intervalo de filtro rejeitado: %v", err)
			return
		}
		fp.ctrl.ApplyDateRangeFilter()
	}
	fp.filterBar.OnClear = func() {
		fp.ctrl.ClearFilter()
	}
	fp.pagBar.OnSelect = func(page int) {
		fp.ctrl.SetPage(page)
	}
	return fp
}

func (fp *FaturasPage) OnNavigatedTo(params interface{}) {
	if !fp.loaded {
		fp.loaded = true
		fp.refetch()
	}
}

func (fp *FaturasPage) OnNavigatedFrom() {}

func (fp *FaturasPage) refetch() {
	start, end := periodRange(fp.periodDays)
	// Vencimentos futuros também interessam: parcelas a vencer.
	end = end.AddDate(0, 3, 0)
	fp.ctrl.RefetchRange(start, end)
}

func (fp *FaturasPage) Layout(gtx layout.Context) layout.Dimensions {
	th := fp.router.GetTheme()

	for i := range periodOptions {
		if fp.periodClicks[i].Clicked(gtx) {
			fp.periodDays = periodOptions[i].Days
			fp.refetch()
		}
	}
	if fp.retryBtn.Clicked(gtx) {
		fp.refetch()
	}
	if fp.exportBtn.Clicked(gtx) {
		fp.handleExport()
	}
	fp.handleSortClicks(gtx)

	rows := fp.ctrl.VisibleRows()
	if len(fp.copyClicks) < len(rows) {
		fp.copyClicks = make([]widget.Clickable, len(rows))
	}
	for i := range rows {
		if fp.copyClicks[i].Clicked(gtx) {
			fp.copiarLinhaDigitavel(gtx, rows[i])
		}
	}

	main := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(th, "Faturas e Boletos").Layout),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layoutPeriodSelector(gtx, th, fp.periodClicks, fp.periodDays)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					label := "Exportar XLSX"
					if fp.exporting {
						label = "Exportando…"
					}
					return theme.OutlineButton(th, &fp.exportBtn, label).Layout(gtx)
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return fp.filterBar.Layout(gtx, th, fp.ctrl.Catalog(), fp.ctrl.Criterion())
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if fp.ctrl.State() != datatable.StateError {
				return layout.Dimensions{}
			}
			return layout.Inset{Bottom: theme.DefaultVSpacer}.Layout(gtx,
				errorBanner(th, "Não foi possível recarregar as faturas do período.", &fp.retryBtn))
		}),

		layout.Rigid(fp.layoutHeader(th)),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if fp.ctrl.IsLoading() {
				fp.spinner.Start(gtx)
				return layout.Center.Layout(gtx, fp.spinner.Layout)
			}
			fp.spinner.Stop(gtx)
			if len(rows) == 0 {
				return emptyState(th, "Nenhuma parcela encontrada para o filtro atual.")(gtx)
			}
			return material.List(th, &fp.list).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
				return fp.layoutRow(gtx, th, i, rows[i])
			})
		}),
		layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					txt := fmt.Sprintf("%d de %d parcelas", fp.ctrl.TotalFilteredCount(), fp.ctrl.TotalCount())
					lbl := material.Body2(th, txt)
					lbl.Color = theme.Colors.TextMuted
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					fp.pagBar.Compact = gtx.Constraints.Max.X < gtx.Dp(unit.Dp(520))
					return fp.pagBar.Layout(gtx, th, fp.ctrl.CurrentPage(), fp.ctrl.PageCount())
				}),
			)
		}),
	)

	if fp.filterBar.RangePickerOpen() {
		return layout.Stack{}.Layout(gtx,
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}),
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				return fp.filterBar.LayoutRangeDialog(gtx, th)
			}),
		)
	}
	return main
}

func (fp *FaturasPage) handleSortClicks(gtx layout.Context) {
	for col, click := range fp.headerClicks {
		if !click.Clicked(gtx) {
			continue
		}
		curCol, curDir := fp.ctrl.SortState()
		switch {
		case curCol != col:
			fp.ctrl.SetSort(col, datatable.SortAsc)
		case curDir == datatable.SortAsc:
			fp.ctrl.SetSort(col, datatable.SortDesc)
		default:
			fp.ctrl.ClearSort()
		}
	}
}

func (fp *FaturasPage) sortMark(col string) string {
	curCol, curDir := fp.ctrl.SortState()
	if curCol != col {
		return ""
	}
	if curDir == datatable.SortAsc {
		return "▲"
	}
	return "▼"
}

func (fp *FaturasPage) layoutHeader(th *material.Theme) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(2, fp.sortableHeader(th, "Documento", faturaColDocumento)),
				layout.Flexed(1, headerCell(th, "Parcela", "")),
				layout.Flexed(2, fp.sortableHeader(th, "Vencimento", faturaColVencimento)),
				layout.Flexed(2, fp.sortableHeader(th, "Valor", faturaColValor)),
				layout.Flexed(2, fp.sortableHeader(th, "Status", faturaColStatus)),
				layout.Flexed(1, headerCell(th, "2ª via", "")),
			)
		})
	}
}

func (fp *FaturasPage) sortableHeader(th *material.Theme, label, col string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return fp.headerClicks[col].Layout(gtx, headerCell(th, label, fp.sortMark(col)))
	}
}

func (fp *FaturasPage) layoutRow(gtx layout.Context, th *material.Theme, index int, f *models.FaturaPublic) layout.Dimensions {
	zebraBackground(gtx, index)
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(2, bodyCell(th, f.NumeroDocumento)),
			layout.Flexed(1, bodyCell(th, fmt.Sprintf("%d/%d", f.Parcela, f.TotalParcelas))),
			layout.Flexed(2, bodyCell(th, utils.FormatDate(f.DataVencimento))),
			layout.Flexed(2, bodyCell(th, utils.FormatMoney(f.Valor))),
			layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
				return components.StatusBadge(th, string(f.Status))(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				// Segunda via só faz sentido para parcelas não pagas.
				if f.Status == models.FaturaPaga || f.Status == models.FaturaCancelada {
					return layout.Dimensions{}
				}
				btn := material.IconButton(th, &fp.copyClicks[index], icons.MustGet(icons.IconCopy), "Copiar linha digitável")
				btn.Background = theme.Colors.Surface
				btn.Color = theme.Colors.Primary
				btn.Inset = layout.UniformInset(unit.Dp(6))
				return btn.Layout(gtx)
			}),
		)
	})
}

// copiarLinhaDigitavel coloca a linha digitável do boleto na área de
// transferência do sistema.
func (fp *FaturasPage) copiarLinhaDigitavel(gtx layout.Context, f *models.FaturaPublic) {
	gtx.Execute(clipboard.WriteCmd{
		Type: "application/text",
		Data: io.NopCloser(strings.NewReader(f.LinhaDigitavel)),
	})
	fp.router.GetAppWindow().ShowGlobalMessage(
		fmt.Sprintf("Linha digitável do documento %s copiada.", f.NumeroDocumento), false, 4*time.Second)
}

// handleExport exporta a visão filtrada e ordenada corrente para XLSX.
func (fp *FaturasPage) handleExport() {
	if fp.exporting {
		return
	}
	rows := fp.ctrl.FilteredRows()
	if len(rows) == 0 {
		fp.router.GetAppWindow().ShowGlobalMessage("Nada para exportar com o filtro atual.", true, 4*time.Second)
		return
	}
	fp.exporting = true

	data := make([][]string, 0, len(rows)+1)
	data = append(data, []string{"Documento", "Parcela", "Emissão", "Vencimento", "Pagamento", "Valor (R$)", "Status", "Linha Digitável"})
	for _, f := range rows {
		data = append(data, []string{
			f.NumeroDocumento,
			fmt.Sprintf("%d/%d", f.Parcela, f.TotalParcelas),
			utils.FormatDate(f.DataEmissao),
			utils.FormatDate(f.DataVencimento),
			utils.FormatDatePtr(f.DataPagamento),
			f.Valor.StringFixedBank(2),
			string(f.Status),
			f.LinhaDigitavel,
		})
	}

	aw := fp.router.GetAppWindow()
	cfg := fp.router.GetConfig()
	go func() {
		input, err := utils.NewSliceDataInput(data, "Faturas")
		var path string
		if err == nil {
			fileName := fmt.Sprintf("faturas_%s.xlsx", time.Now().Format("20060102_150405"))
			path, err = utils.ExportToXLSX([]utils.DataInput{input}, fileName, cfg, nil)
		}
		aw.Execute(func() {
			fp.exporting = false
			if err != nil {
				appLogger.Errorf("Exportação de faturas falhou: %v", err)
				aw.ShowGlobalMessage("Falha ao exportar as faturas.", true, 5*time.Second)
				return
			}
			aw.ShowGlobalMessage("Faturas exportadas para "+path, false, 6*time.Second)
		})
	}()
}
