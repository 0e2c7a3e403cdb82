package datatable

import (
	"fmt"
	"sort"
	"time"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
)

// SortDirection indica a direção da ordenação de uma coluna.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// LoadState é o estado de carga do conjunto completo. "Erro" é um
// estado distinto de "carregando" e "carregado": numa falha de
// recarga o conjunto anterior é mantido (sem limpeza destrutiva).
type LoadState int

const (
	StateLoaded LoadState = iota
	StateLoading
	StateError
)

const filterScheduleKey = "filtro"

// DefaultDebounceInterval é o atraso padrão entre a última tecla e a
// reavaliação do filtro textual.
const DefaultDebounceInterval = 300 * time.Millisecond

// FetchFunc busca o conjunto completo para um período grosseiro
// (ex.: "último mês", "últimos 90 dias"). No portal é uma E/S
// simulada; o controlador só exige a assinatura.
type FetchFunc[T Filterable] func(start, end time.Time) ([]T, error)

// Options configura um Controller.
type Options[T Filterable] struct {
	// Catalog é a enumeração de campos filtráveis da tela (obrigatório).
	Catalog *Catalog
	// PageSize inicial; valores < 1 são fixados em 1.
	PageSize int
	// DebounceInterval para digitação; zero usa DefaultDebounceInterval.
	DebounceInterval time.Duration
	// Fetch realiza a recarga grosseira por período. Opcional: telas
	// que injetam o conjunto via SetDataset podem omitir.
	Fetch FetchFunc[T]
	// Post executa uma função na thread de eventos da UI (ex.:
	// AppWindow.Execute). Nula executa em linha — útil em testes.
	Post func(func())
	// OnChange é chamado após qualquer mutação de estado visível,
	// tipicamente para invalidar a janela. Opcional.
	OnChange func()
	// Comparators projeta cada coluna ordenável em uma comparação
	// tri-estado (<0, 0, >0). Colunas ausentes não são ordenáveis.
	Comparators map[string]func(a, b T) int
	// Clock injeta o relógio do agendador (testes). Nulo usa o real.
	Clock Clock
}

// Controller orquestra uma tabela filtrável e paginada: é dono do
// conjunto completo, do critério, da ordenação e da paginação, e expõe
// a fatia visível. O conjunto filtrado é sempre uma derivação pura de
// (conjunto completo, critério) — nunca uma coleção mutada à parte.
//
// O controlador não é seguro para uso concorrente: todas as chamadas
// devem partir da thread de eventos da UI. Resultados de operações
// assíncronas voltam por Post.
type Controller[T Filterable] struct {
	catalog     *Catalog
	criterion   *Criterion
	scheduler   *Scheduler
	debounce    time.Duration
	fetch       FetchFunc[T]
	post        func(func())
	onChange    func()
	comparators map[string]func(a, b T) int

	full     []T
	filtered []T

	sortKey string
	sortDir SortDirection

	pageIndex int // 0-based
	pageSize  int

	state   LoadState
	lastErr error

	fetchGen uint64
	closed   bool
}

// NewController monta um controlador no estado de tela recém-montada:
// critério vazio, página 0, conjunto vazio e carregado.
func NewController[T Filterable](opts Options[T]) (*Controller[T], error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%w: Options.Catalog é obrigatório", appErrors.ErrInvalidInput)
	}
	criterion, err := NewCriterion(opts.Catalog)
	if err != nil {
		return nil, err
	}
	if opts.PageSize < 1 {
		opts.PageSize = 1
	}
	if opts.DebounceInterval <= 0 {
		opts.DebounceInterval = DefaultDebounceInterval
	}
	if opts.Post == nil {
		opts.Post = func(f func()) { f() }
	}
	c := &Controller[T]{
		catalog:     opts.Catalog,
		criterion:   criterion,
		scheduler:   NewSchedulerWithClock(opts.Clock),
		debounce:    opts.DebounceInterval,
		fetch:       opts.Fetch,
		post:        opts.Post,
		onChange:    opts.OnChange,
		comparators: opts.Comparators,
		pageSize:    opts.PageSize,
		state:       StateLoaded,
	}
	c.recompute()
	return c, nil
}

// Close desmonta o controlador: cancela qualquer avaliação pendente e
// faz com que resultados de recargas em voo sejam ignorados.
func (c *Controller[T]) Close() {
	c.closed = true
	c.scheduler.CancelAll()
}

// SetDataset substitui o conjunto completo diretamente (sem E/S). O
// critério ativo NÃO é limpo: o avaliador roda de imediato contra o
// novo conjunto.
func (c *Controller[T]) SetDataset(rows []T) {
	c.full = rows
	c.state = StateLoaded
	c.lastErr = nil
	c.recompute()
	c.clampPageIndex()
	c.notify()
}

// RefetchRange dispara a recarga grosseira por período. Enquanto
// pendente o controlador fica em StateLoading; um resultado que chegar
// depois de outra recarga (ou do desmonte) é descartado. Em falha, o
// conjunto anterior é preservado e o estado vira StateError.
func (c *Controller[T]) RefetchRange(start, end time.Time) {
	if c.fetch == nil {
		appLogger.Warn("RefetchRange chamado sem FetchFunc configurada; ignorado.")
		return
	}
	if c.closed {
		return
	}
	c.fetchGen++
	gen := c.fetchGen
	c.state = StateLoading
	c.lastErr = nil
	c.notify()

	go func() {
		rows, err := c.fetch(start, end)
		c.post(func() {
			if c.closed || gen != c.fetchGen {
				// Resultado obsoleto: outra recarga começou ou a tela
				// foi desmontada.
				return
			}
			if err != nil {
				appLogger.Errorf("Falha na recarga do conjunto de dados: %v", err)
				c.state = StateError
				c.lastErr = fmt.Errorf("%w: %v", appErrors.ErrRefetch, err)
				c.notify()
				return
			}
			c.full = rows
			c.state = StateLoaded
			// O filtro do usuário sobrevive à recarga por período.
			c.recompute()
			c.clampPageIndex()
			c.notify()
		})
	}()
}

// SetFilterField troca o campo ativo do filtro. A troca cancela
// qualquer avaliação pendente e reavalia de imediato contra o critério
// (agora vazio): a tabela volta na hora ao conjunto completo. O
// UIIntent retornado informa à tela se deve abrir o seletor de
// período.
func (c *Controller[T]) SetFilterField(key string) (UIIntent, error) {
	intent, err := c.criterion.SetField(key)
	if err != nil {
		return IntentNone, err
	}
	c.scheduler.Cancel(filterScheduleKey)
	c.applyFilter()
	return intent, nil
}

// SetFilterValue define o texto de busca. Valor não vazio é avaliado
// após o intervalo de debounce (teclas subsequentes reiniciam o
// intervalo); valor vazio é avaliado de imediato.
func (c *Controller[T]) SetFilterValue(text string) error {
	if err := c.criterion.SetScalarValue(text); err != nil {
		return err
	}
	if c.criterion.Value() == "" {
		c.scheduler.Cancel(filterScheduleKey)
		c.applyFilter()
		return nil
	}
	c.scheduler.Schedule(filterScheduleKey, c.debounce, func() {
		c.post(func() {
			if c.closed {
				return
			}
			c.applyFilter()
		})
	})
	return nil
}

// SetDateRange registra os limites do intervalo sem avaliar: a
// avaliação só ocorre no "aplicar" explícito. Exceção: limpar o
// intervalo (ambos nulos) avalia de imediato.
func (c *Controller[T]) SetDateRange(start, end *time.Time) error {
	if err := c.criterion.SetDateRange(start, end); err != nil {
		return err
	}
	if start == nil && end == nil {
		c.scheduler.Cancel(filterScheduleKey)
		c.applyFilter()
	}
	return nil
}

// ApplyDateRangeFilter é a confirmação explícita do intervalo. Um
// intervalo incompleto equivale a "sem filtro" e não é erro.
func (c *Controller[T]) ApplyDateRangeFilter() {
	c.scheduler.Cancel(filterScheduleKey)
	c.applyFilter()
}

// ClearFilter reseta o critério ao estado inicial e reavalia de
// imediato.
func (c *Controller[T]) ClearFilter() {
	c.criterion.Clear()
	c.scheduler.Cancel(filterScheduleKey)
	c.applyFilter()
}

// applyFilter é o passo pós-debounce: rederiva o conjunto filtrado e
// volta o usuário à página 1 (mudança de filtro sempre volta ao
// início).
func (c *Controller[T]) applyFilter() {
	c.recompute()
	c.pageIndex = 0
	c.notify()
}

// SetSort ordena o conjunto filtrado pela projeção da coluna, com
// ordenação estável (empates mantêm a ordem relativa original).
// Ordenar não reposiciona a página.
func (c *Controller[T]) SetSort(column string, dir SortDirection) error {
	if _, ok := c.comparators[column]; !ok {
		return fmt.Errorf("%w: coluna não ordenável '%s'", appErrors.ErrInvalidInput, column)
	}
	c.sortKey = column
	c.sortDir = dir
	c.recompute()
	c.clampPageIndex()
	c.notify()
	return nil
}

// ClearSort volta à ordem natural do conjunto (descendente pela data
// primária, definida na geração dos dados).
func (c *Controller[T]) ClearSort() {
	c.sortKey = ""
	c.recompute()
	c.notify()
}

// SetPage navega para a página n (1-based), fixada em [1, pageCount].
// Pedir uma página fora do intervalo não é erro.
func (c *Controller[T]) SetPage(n int) {
	pages := c.PageCount()
	if pages == 0 {
		c.pageIndex = 0
		return
	}
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}
	c.pageIndex = n - 1
	c.notify()
}

// SetPageSize troca o tamanho da página. O índice atual só é alterado
// se ficar fora do novo intervalo (fixado na última página válida,
// nunca resetado gratuitamente para o início).
func (c *Controller[T]) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	c.pageSize = size
	c.clampPageIndex()
	c.notify()
}

// recompute rederiva o conjunto filtrado a partir do completo e do
// critério, reaplicando a ordenação ativa. O filtro nunca reordena; a
// ordenação trabalha sobre uma cópia para não tocar o conjunto
// completo.
func (c *Controller[T]) recompute() {
	c.filtered = Evaluate(c.full, c.criterion)
	if c.sortKey == "" {
		return
	}
	cmp, ok := c.comparators[c.sortKey]
	if !ok {
		return
	}
	sorted := make([]T, len(c.filtered))
	copy(sorted, c.filtered)
	desc := c.sortDir == SortDesc
	sort.SliceStable(sorted, func(i, j int) bool {
		r := cmp(sorted[i], sorted[j])
		if desc {
			return r > 0
		}
		return r < 0
	})
	c.filtered = sorted
}

// clampPageIndex restaura o invariante pageIndex*pageSize < max(1, n).
func (c *Controller[T]) clampPageIndex() {
	pages := c.PageCount()
	if pages == 0 {
		c.pageIndex = 0
		return
	}
	if c.pageIndex > pages-1 {
		c.pageIndex = pages - 1
	}
	if c.pageIndex < 0 {
		c.pageIndex = 0
	}
}

func (c *Controller[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// --- Contrato de renderização (Controller → Tela) ---

// VisibleRows retorna a fatia da página atual do conjunto filtrado.
func (c *Controller[T]) VisibleRows() []T {
	if len(c.filtered) == 0 {
		return nil
	}
	start := c.pageIndex * c.pageSize
	if start >= len(c.filtered) {
		return nil
	}
	end := start + c.pageSize
	if end > len(c.filtered) {
		end = len(c.filtered)
	}
	return c.filtered[start:end]
}

// FilteredRows retorna uma cópia do conjunto filtrado e ordenado
// inteiro, na ordem visível. É a visão que a exportação usa.
func (c *Controller[T]) FilteredRows() []T {
	if len(c.filtered) == 0 {
		return nil
	}
	out := make([]T, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// PageCount retorna o total de páginas do conjunto filtrado.
func (c *Controller[T]) PageCount() int {
	if len(c.filtered) == 0 {
		return 0
	}
	return (len(c.filtered) + c.pageSize - 1) / c.pageSize
}

// CurrentPage retorna a página atual, 1-based.
func (c *Controller[T]) CurrentPage() int { return c.pageIndex + 1 }

// PageSize retorna o tamanho de página vigente.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// TotalFilteredCount retorna o total de registros após o filtro.
func (c *Controller[T]) TotalFilteredCount() int { return len(c.filtered) }

// TotalCount retorna o total de registros do conjunto completo.
func (c *Controller[T]) TotalCount() int { return len(c.full) }

// IsLoading informa se uma recarga grosseira está pendente. Enquanto
// verdadeiro a tela deve exibir o placeholder de carga e reter
// mutações de paginação/ordenação.
func (c *Controller[T]) IsLoading() bool { return c.state == StateLoading }

// State retorna o estado de carga corrente.
func (c *Controller[T]) State() LoadState { return c.state }

// Err retorna o erro da última recarga falha (nulo fora de StateError).
func (c *Controller[T]) Err() error { return c.lastErr }

// Criterion expõe o critério ativo para a barra de filtros da tela.
func (c *Controller[T]) Criterion() *Criterion { return c.criterion }

// Catalog expõe a enumeração de campos filtráveis da tela.
func (c *Controller[T]) Catalog() *Catalog { return c.catalog }

// SortState retorna a coluna e direção de ordenação ativas.
func (c *Controller[T]) SortState() (column string, dir SortDirection) {
	return c.sortKey, c.sortDir
}

// PageSequence gera os marcadores de paginação para a densidade dada.
func (c *Controller[T]) PageSequence(d Density) []PageMarker {
	return PageSequence(c.CurrentPage(), c.PageCount(), d)
}
