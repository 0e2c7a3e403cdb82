package datatable

import (
	"strings"
	"time"
)

// Filterable é o contrato mínimo que um registro precisa cumprir para
// participar do filtro tabular. As chaves são as do catálogo da tela.
//
// FilterValue retorna a projeção textual de um campo escalar;
// FilterDate, o valor de um campo de data. O segundo retorno indica se
// o campo existe e está populado no registro — um registro sem o campo
// filtrado simplesmente não casa, nunca gera erro.
type Filterable interface {
	FilterValue(fieldKey string) (string, bool)
	FilterDate(fieldKey string) (time.Time, bool)
}

// Evaluate aplica o critério sobre o conjunto completo e devolve o
// subconjunto filtrado. É uma função pura: não reordena, não muta a
// entrada e é sempre recomputável a partir de (conjunto, critério).
//
// Critério nulo ou incompleto devolve o próprio conjunto de entrada,
// na mesma ordem.
func Evaluate[T Filterable](rows []T, c *Criterion) []T {
	if !c.IsComplete() {
		return rows
	}

	field := c.Field()
	if field.Kind == CompareDateRange {
		start, end, ok := c.Range()
		if !ok {
			return rows
		}
		return filterByDay(rows, field.Key, DayOf(start), DayOf(end))
	}

	query := scalarQuery(field.Kind, c.Value())
	if query == "" {
		// Valor composto só de pontuação: nada restou para comparar,
		// equivale a filtro vazio.
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		raw, ok := row.FilterValue(field.Key)
		if !ok {
			continue
		}
		if strings.Contains(scalarQuery(field.Kind, raw), query) {
			out = append(out, row)
		}
	}
	return out
}

// scalarQuery normaliza um dos lados da comparação escalar conforme o
// tipo do campo.
func scalarQuery(kind ComparisonKind, s string) string {
	switch kind {
	case CompareNumeric, CompareDocument:
		return OnlyDigits(s)
	default:
		return Fold(s)
	}
}

// filterByDay mantém os registros cuja data, reduzida ao dia de
// calendário, cai em [startDay, endDay] inclusivo.
func filterByDay[T Filterable](rows []T, fieldKey string, startDay, endDay time.Time) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		d, ok := row.FilterDate(fieldKey)
		if !ok {
			continue
		}
		day := DayOf(d)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out = append(out, row)
	}
	return out
}
