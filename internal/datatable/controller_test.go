package datatable

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

func gerarLinhas(n int) []linhaTeste {
	rows := make([]linhaTeste, 0, n)
	base := dia(2025, 6, 30)
	for i := 0; i < n; i++ {
		rows = append(rows, linhaTeste{
			codigo:  fmt.Sprintf("%04d", i+1),
			cliente: fmt.Sprintf("Cliente %02d", i+1),
			data:    base.AddDate(0, 0, -i), // ordem natural: descendente pela data
		})
	}
	return rows
}

func novoControladorTeste(t *testing.T, pageSize int, clock Clock) *Controller[linhaTeste] {
	t.Helper()
	c, err := NewController(Options[linhaTeste]{
		Catalog:  testCatalog(t),
		PageSize: pageSize,
		Clock:    clock,
		Comparators: map[string]func(a, b linhaTeste) int{
			"codigo":  func(a, b linhaTeste) int { return strings.Compare(a.codigo, b.codigo) },
			"cliente": func(a, b linhaTeste) int { return strings.Compare(a.cliente, b.cliente) },
			"data":    func(a, b linhaTeste) int { return a.data.Compare(b.data) },
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewControllerRequiresCatalog(t *testing.T) {
	_, err := NewController(Options[linhaTeste]{})
	if !errors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("esperava ErrInvalidInput sem catálogo, obteve %v", err)
	}
}

func TestControllerPagination(t *testing.T) {
	c := novoControladorTeste(t, 6, nil)
	c.SetDataset(gerarLinhas(13))

	if got := c.PageCount(); got != 3 {
		t.Fatalf("PageCount = %d, esperava 3 (13 linhas, 6 por página)", got)
	}
	if got := len(c.VisibleRows()); got != 6 {
		t.Errorf("primeira página com %d linhas, esperava 6", got)
	}

	c.SetPage(3)
	if got := len(c.VisibleRows()); got != 1 {
		t.Errorf("última página com %d linhas, esperava 1", got)
	}

	// Página fora do intervalo é fixada, nunca erro.
	c.SetPage(5)
	if got := c.CurrentPage(); got != 3 {
		t.Errorf("SetPage(5) deixou página %d, esperava fixar em 3", got)
	}
	c.SetPage(0)
	if got := c.CurrentPage(); got != 1 {
		t.Errorf("SetPage(0) deixou página %d, esperava fixar em 1", got)
	}
}

func TestControllerEmptyDataset(t *testing.T) {
	c := novoControladorTeste(t, 10, nil)
	if c.PageCount() != 0 {
		t.Errorf("conjunto vazio deveria ter 0 páginas, obteve %d", c.PageCount())
	}
	if rows := c.VisibleRows(); rows != nil {
		t.Errorf("conjunto vazio deveria ter fatia visível nula, obteve %d linhas", len(rows))
	}
	if seq := c.PageSequence(DensityFull); seq != nil {
		t.Error("sem páginas o controle de paginação não deve ser exibido")
	}
}

func TestControllerDebouncedFilter(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(13))
	c.SetPage(2)

	c.SetFilterField("cliente")
	// Digitação rápida: nenhuma avaliação até o intervalo vencer.
	for _, texto := range []string{"c", "cl", "cli", "cliente 01"} {
		if err := c.SetFilterValue(texto); err != nil {
			t.Fatal(err)
		}
		clock.Avanca(100 * time.Millisecond)
		if c.TotalFilteredCount() != 13 {
			t.Fatal("filtro avaliado antes do debounce vencer")
		}
	}

	clock.Avanca(300 * time.Millisecond)
	if got := c.TotalFilteredCount(); got != 1 {
		t.Fatalf("após o debounce, %d linhas filtradas, esperava 1", got)
	}
	if got := c.CurrentPage(); got != 1 {
		t.Errorf("mudança de filtro deveria voltar à página 1, ficou em %d", got)
	}
	if got := c.TotalCount(); got != 13 {
		t.Errorf("o conjunto completo não deveria mudar com o filtro: %d", got)
	}
}

func TestControllerEmptyValueAppliesImmediately(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(5))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 01")
	clock.Avanca(300 * time.Millisecond)
	if c.TotalFilteredCount() != 1 {
		t.Fatal("filtro inicial não aplicado")
	}

	// Apagar tudo limpa sem esperar o debounce.
	if err := c.SetFilterValue(""); err != nil {
		t.Fatal(err)
	}
	if got := c.TotalFilteredCount(); got != 5 {
		t.Errorf("valor vazio deveria reverter de imediato ao conjunto completo, obteve %d", got)
	}
}

func TestControllerFieldSwitchRevertsImmediately(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(8))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 03")
	clock.Avanca(300 * time.Millisecond)
	if c.TotalFilteredCount() != 1 {
		t.Fatal("filtro não aplicado")
	}

	// Trocar o campo descarta o valor e reavalia na hora.
	intent, err := c.SetFilterField("codigo")
	if err != nil {
		t.Fatal(err)
	}
	if intent != IntentNone {
		t.Errorf("intent = %v para campo escalar", intent)
	}
	if got := c.TotalFilteredCount(); got != 8 {
		t.Errorf("troca de campo deveria reverter ao conjunto completo, obteve %d", got)
	}

	// Troca para o campo de datas sinaliza a abertura do seletor.
	intent, err = c.SetFilterField("data")
	if err != nil {
		t.Fatal(err)
	}
	if intent != IntentOpenRangePicker {
		t.Errorf("intent = %v, esperava IntentOpenRangePicker", intent)
	}
}

func TestControllerFieldSwitchCancelsPendingEvaluation(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(8))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 03")
	// Antes do debounce vencer, o usuário troca o campo.
	c.SetFilterField("codigo")
	clock.Avanca(time.Second)
	if got := c.TotalFilteredCount(); got != 8 {
		t.Errorf("avaliação pendente deveria ter sido cancelada, obteve %d linhas", got)
	}
}

func TestControllerDateRangeAppliesOnlyOnConfirm(t *testing.T) {
	c := novoControladorTeste(t, 10, nil)
	c.SetDataset(gerarLinhas(10))

	if _, err := c.SetFilterField("data"); err != nil {
		t.Fatal(err)
	}
	start := dia(2025, 6, 28)
	end := dia(2025, 6, 30)
	if err := c.SetDateRange(&start, &end); err != nil {
		t.Fatal(err)
	}
	if got := c.TotalFilteredCount(); got != 10 {
		t.Fatalf("seleção de intervalo não deveria avaliar antes do aplicar, obteve %d", got)
	}

	c.ApplyDateRangeFilter()
	if got := c.TotalFilteredCount(); got != 3 {
		t.Errorf("intervalo 28-30/06 deveria manter 3 linhas, obteve %d", got)
	}

	// Limpar o intervalo (ambos nulos) reverte de imediato.
	if err := c.SetDateRange(nil, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.TotalFilteredCount(); got != 10 {
		t.Errorf("limpar o intervalo deveria reverter de imediato, obteve %d", got)
	}
}

func TestControllerIncompleteRangeActsAsNoFilter(t *testing.T) {
	c := novoControladorTeste(t, 10, nil)
	c.SetDataset(gerarLinhas(10))
	c.SetFilterField("data")

	start := dia(2025, 6, 28)
	if err := c.SetDateRange(&start, nil); err != nil {
		t.Fatal(err)
	}
	c.ApplyDateRangeFilter()
	if got := c.TotalFilteredCount(); got != 10 {
		t.Errorf("intervalo incompleto equivale a sem filtro, obteve %d", got)
	}
}

func TestControllerClearFilter(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 4, clock)
	c.SetDataset(gerarLinhas(12))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 1")
	clock.Avanca(300 * time.Millisecond)
	if c.TotalFilteredCount() == 12 {
		t.Fatal("filtro não aplicado")
	}

	c.ClearFilter()
	if got := c.TotalFilteredCount(); got != 12 {
		t.Errorf("ClearFilter deveria reverter ao conjunto completo, obteve %d", got)
	}
	if got := c.Criterion().Field().Key; got != "codigo" {
		t.Errorf("ClearFilter deveria voltar ao campo padrão, ficou em %q", got)
	}
	if got := c.CurrentPage(); got != 1 {
		t.Errorf("ClearFilter deveria voltar à página 1, ficou em %d", got)
	}
}

func TestControllerSort(t *testing.T) {
	c := novoControladorTeste(t, 5, nil)
	c.SetDataset(gerarLinhas(10))
	c.SetPage(2)

	if err := c.SetSort("codigo", SortDesc); err != nil {
		t.Fatal(err)
	}
	rows := c.VisibleRows()
	// Página 2 em ordem descendente de código: 0005..0001.
	if rows[0].codigo != "0005" {
		t.Errorf("primeira linha da página 2 = %q, esperava '0005'", rows[0].codigo)
	}
	if got := c.CurrentPage(); got != 2 {
		t.Errorf("ordenar não deveria reposicionar a página, ficou em %d", got)
	}

	// A ordem natural do conjunto completo não é tocada.
	c.ClearSort()
	c.SetPage(1)
	if got := c.VisibleRows()[0].codigo; got != "0001" {
		t.Errorf("ClearSort deveria restaurar a ordem natural, primeira linha %q", got)
	}
}

func TestControllerSortUnknownColumn(t *testing.T) {
	c := novoControladorTeste(t, 5, nil)
	if err := c.SetSort("inexistente", SortAsc); !errors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("esperava ErrInvalidInput para coluna não ordenável, obteve %v", err)
	}
}

func TestControllerSortIsStable(t *testing.T) {
	c := novoControladorTeste(t, 10, nil)
	rows := []linhaTeste{
		{codigo: "0001", cliente: "Alfa", data: dia(2025, 6, 1)},
		{codigo: "0002", cliente: "Beta", data: dia(2025, 6, 1)},
		{codigo: "0003", cliente: "Gama", data: dia(2025, 6, 1)},
		{codigo: "0004", cliente: "Delta", data: dia(2025, 5, 1)},
	}
	c.SetDataset(rows)
	if err := c.SetSort("data", SortAsc); err != nil {
		t.Fatal(err)
	}
	got := c.VisibleRows()
	// Empates na data preservam a ordem relativa original.
	want := []string{"0004", "0001", "0002", "0003"}
	for i, w := range want {
		if got[i].codigo != w {
			t.Fatalf("ordenação instável: posição %d = %q, esperava %q", i, got[i].codigo, w)
		}
	}
}

func TestControllerSortSurvivesFilter(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(10))

	if err := c.SetSort("codigo", SortDesc); err != nil {
		t.Fatal(err)
	}
	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 0")
	clock.Avanca(300 * time.Millisecond)

	rows := c.VisibleRows()
	if len(rows) != 9 {
		t.Fatalf("%d linhas filtradas, esperava 9", len(rows))
	}
	if rows[0].codigo != "0009" {
		t.Errorf("a ordenação deveria sobreviver ao filtro, primeira linha %q", rows[0].codigo)
	}
}

func TestControllerSetPageSize(t *testing.T) {
	c := novoControladorTeste(t, 6, nil)
	c.SetDataset(gerarLinhas(13))
	c.SetPage(2)

	// Novo tamanho que mantém a página válida não reposiciona.
	c.SetPageSize(7)
	if got := c.CurrentPage(); got != 2 {
		t.Errorf("página deveria permanecer 2, ficou em %d", got)
	}

	// Novo tamanho que invalida a página fixa na última válida.
	c.SetPage(2)
	c.SetPageSize(13)
	if got := c.CurrentPage(); got != 1 {
		t.Errorf("página deveria ser fixada em 1, ficou em %d", got)
	}

	c.SetPageSize(0)
	if got := c.PageSize(); got != 1 {
		t.Errorf("tamanho de página inválido deveria ser fixado em 1, obteve %d", got)
	}
}

func TestControllerRefetchReplacesDataset(t *testing.T) {
	posts := make(chan func(), 4)
	c, err := NewController(Options[linhaTeste]{
		Catalog: testCatalog(t),
		Fetch: func(start, end time.Time) ([]linhaTeste, error) {
			return gerarLinhas(5), nil
		},
		Post: func(f func()) { posts <- f },
	})
	if err != nil {
		t.Fatal(err)
	}
	c.SetDataset(gerarLinhas(2))

	c.RefetchRange(dia(2025, 5, 1), dia(2025, 6, 30))
	if !c.IsLoading() {
		t.Error("controlador deveria estar em carga durante a recarga")
	}

	(<-posts)()
	if c.IsLoading() {
		t.Error("carga deveria ter terminado")
	}
	if got := c.TotalCount(); got != 5 {
		t.Errorf("conjunto completo = %d linhas, esperava 5", got)
	}
	if c.State() != StateLoaded {
		t.Errorf("estado = %v, esperava StateLoaded", c.State())
	}
}

func TestControllerRefetchFailureKeepsDataset(t *testing.T) {
	posts := make(chan func(), 4)
	c, err := NewController(Options[linhaTeste]{
		Catalog: testCatalog(t),
		Fetch: func(start, end time.Time) ([]linhaTeste, error) {
			return nil, errors.New("rede indisponível")
		},
		Post: func(f func()) { posts <- f },
	})
	if err != nil {
		t.Fatal(err)
	}
	c.SetDataset(gerarLinhas(4))

	c.RefetchRange(dia(2025, 5, 1), dia(2025, 6, 30))
	(<-posts)()

	if c.State() != StateError {
		t.Fatalf("estado = %v, esperava StateError", c.State())
	}
	if !errors.Is(c.Err(), appErrors.ErrRefetch) {
		t.Errorf("Err deveria embrulhar ErrRefetch, obteve %v", c.Err())
	}
	if got := c.TotalCount(); got != 4 {
		t.Errorf("falha de recarga não deveria descartar o conjunto anterior: %d linhas", got)
	}
}

func TestControllerRefetchStaleResultIsDiscarded(t *testing.T) {
	posts := make(chan func(), 4)
	c, err := NewController(Options[linhaTeste]{
		Catalog: testCatalog(t),
		Fetch: func(start, end time.Time) ([]linhaTeste, error) {
			if start.Month() == time.May {
				return gerarLinhas(1), nil
			}
			return gerarLinhas(2), nil
		},
		Post: func(f func()) { posts <- f },
	})
	if err != nil {
		t.Fatal(err)
	}

	// Duas recargas em sequência: só o resultado da segunda conta,
	// independentemente da ordem de chegada dos resultados.
	c.RefetchRange(dia(2025, 5, 1), dia(2025, 5, 31))
	c.RefetchRange(dia(2025, 6, 1), dia(2025, 6, 30))

	(<-posts)()
	(<-posts)()

	if got := c.TotalCount(); got != 2 {
		t.Errorf("conjunto = %d linhas, esperava 2 (resultado da recarga de junho)", got)
	}
}

func TestControllerRefetchPreservesFilter(t *testing.T) {
	posts := make(chan func(), 4)
	clock := novoRelogioFalso()
	c, err := NewController(Options[linhaTeste]{
		Catalog: testCatalog(t),
		Clock:   clock,
		Fetch: func(start, end time.Time) ([]linhaTeste, error) {
			return gerarLinhas(10), nil
		},
		Post: func(f func()) { posts <- f },
	})
	if err != nil {
		t.Fatal(err)
	}
	c.SetDataset(gerarLinhas(3))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 02")
	clock.Avanca(300 * time.Millisecond)

	c.RefetchRange(dia(2025, 5, 1), dia(2025, 6, 30))
	(<-posts)()

	if got := c.TotalCount(); got != 10 {
		t.Fatalf("conjunto completo = %d, esperava 10", got)
	}
	if got := c.TotalFilteredCount(); got != 1 {
		t.Errorf("o filtro deveria sobreviver à recarga: %d linhas filtradas", got)
	}
}

func TestControllerCloseDiscardsPendingWork(t *testing.T) {
	clock := novoRelogioFalso()
	c := novoControladorTeste(t, 10, clock)
	c.SetDataset(gerarLinhas(5))

	c.SetFilterField("cliente")
	c.SetFilterValue("cliente 01")
	c.Close()
	clock.Avanca(time.Second)
	if got := c.TotalFilteredCount(); got != 5 {
		t.Errorf("avaliação agendada não deveria rodar após o desmonte, obteve %d", got)
	}
}

func TestControllerOnChangeNotifies(t *testing.T) {
	notificacoes := 0
	c, err := NewController(Options[linhaTeste]{
		Catalog:  testCatalog(t),
		PageSize: 5,
		OnChange: func() { notificacoes++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	c.SetDataset(gerarLinhas(10))
	if notificacoes == 0 {
		t.Error("SetDataset deveria notificar a tela")
	}
	antes := notificacoes
	c.SetPage(2)
	if notificacoes <= antes {
		t.Error("SetPage deveria notificar a tela")
	}
}
