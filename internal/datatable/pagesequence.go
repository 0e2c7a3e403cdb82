package datatable

// Density seleciona a variante do controle de paginação. A tela
// escolhe pela largura disponível (desktop ou janela estreita).
type Density int

const (
	DensityFull Density = iota
	DensityCompact
)

// MarkerKind distingue números de página de reticências de colapso.
type MarkerKind int

const (
	MarkerNumber MarkerKind = iota
	MarkerEllipsis
)

// PageMarker é um item do controle de paginação: um número de página
// (1-based) ou uma reticência. A sequência é efêmera — recomputada a
// cada frame, nunca armazenada.
type PageMarker struct {
	Kind MarkerKind
	Page int // válido apenas para MarkerNumber
}

func number(p int) PageMarker  { return PageMarker{Kind: MarkerNumber, Page: p} }
func ellipsis() PageMarker     { return PageMarker{Kind: MarkerEllipsis} }
func numbers(from, to int) []PageMarker {
	out := make([]PageMarker, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, number(p))
	}
	return out
}

// densityThreshold é o total de páginas até o qual a sequência é
// exibida por extenso, sem reticências.
func densityThreshold(d Density) int {
	if d == DensityCompact {
		return 3
	}
	return 7
}

// PageSequence gera a sequência de marcadores de paginação para a
// página atual (1-based) e o total de páginas. Com pageCount <= 1 o
// controle não é exibido e a sequência é vazia. Páginas fora de
// [1, pageCount] são fixadas no limite mais próximo, nunca erro.
func PageSequence(currentPage, pageCount int, d Density) []PageMarker {
	if pageCount <= 1 {
		return nil
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > pageCount {
		currentPage = pageCount
	}

	if pageCount <= densityThreshold(d) {
		return numbers(1, pageCount)
	}

	if d == DensityCompact {
		return compactSequence(currentPage, pageCount)
	}
	return fullSequence(currentPage, pageCount)
}

// fullSequence: primeira e última página sempre visíveis, a página
// atual com um vizinho de cada lado, reticências nos saltos.
func fullSequence(currentPage, pageCount int) []PageMarker {
	switch {
	case currentPage <= 3:
		seq := numbers(1, 4)
		seq = append(seq, ellipsis(), number(pageCount))
		return seq
	case currentPage >= pageCount-2:
		seq := []PageMarker{number(1), ellipsis()}
		return append(seq, numbers(pageCount-3, pageCount)...)
	default:
		seq := []PageMarker{number(1), ellipsis()}
		seq = append(seq, numbers(currentPage-1, currentPage+1)...)
		return append(seq, ellipsis(), number(pageCount))
	}
}

// compactSequence espelha a lógica ancorada em primeira/última, mas
// sem vizinhos da página atual e colapsando mais cedo.
func compactSequence(currentPage, pageCount int) []PageMarker {
	switch {
	case currentPage <= 2:
		return []PageMarker{number(1), number(2), ellipsis(), number(pageCount)}
	case currentPage >= pageCount-1:
		return []PageMarker{number(1), ellipsis(), number(pageCount - 1), number(pageCount)}
	default:
		return []PageMarker{number(1), ellipsis(), number(currentPage), ellipsis(), number(pageCount)}
	}
}
