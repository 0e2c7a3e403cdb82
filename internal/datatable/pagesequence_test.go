package datatable

import "testing"

// seqStr projeta a sequência numa forma legível para comparação nos
// testes: "1 2 3 … 10".
func seqStr(markers []PageMarker) string {
	out := ""
	for i, m := range markers {
		if i > 0 {
			out += " "
		}
		if m.Kind == MarkerEllipsis {
			out += "…"
		} else {
			out += itoa(m.Page)
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestPageSequenceFull(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		want    string
	}{
		{"uma página não exibe controle", 1, 1, ""},
		{"zero páginas", 1, 0, ""},
		{"até sete páginas por extenso", 4, 7, "1 2 3 4 5 6 7"},
		{"duas páginas", 2, 2, "1 2"},
		{"início colapsa só a direita", 1, 20, "1 2 3 4 … 20"},
		{"página 2 ainda ancorada no início", 2, 20, "1 2 3 4 … 20"},
		{"página 3 ainda ancorada no início", 3, 20, "1 2 3 4 … 20"},
		{"meio colapsa os dois lados", 10, 20, "1 … 9 10 11 … 20"},
		{"primeira transição para o meio", 4, 20, "1 … 3 4 5 … 20"},
		{"fim colapsa só a esquerda", 20, 20, "1 … 17 18 19 20"},
		{"penúltima ancorada no fim", 19, 20, "1 … 17 18 19 20"},
		{"antepenúltima ancorada no fim", 18, 20, "1 … 17 18 19 20"},
		{"oito páginas no início", 1, 8, "1 2 3 4 … 8"},
		{"oito páginas no meio", 4, 8, "1 … 3 4 5 … 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seqStr(PageSequence(tt.current, tt.count, DensityFull))
			if got != tt.want {
				t.Errorf("PageSequence(%d, %d) = %q, esperava %q", tt.current, tt.count, got, tt.want)
			}
		})
	}
}

func TestPageSequenceCompact(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		want    string
	}{
		{"até três páginas por extenso", 2, 3, "1 2 3"},
		{"início", 1, 10, "1 2 … 10"},
		{"página 2 ancorada no início", 2, 10, "1 2 … 10"},
		{"meio colapsa os dois lados", 5, 10, "1 … 5 … 10"},
		{"fim", 10, 10, "1 … 9 10"},
		{"penúltima ancorada no fim", 9, 10, "1 … 9 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seqStr(PageSequence(tt.current, tt.count, DensityCompact))
			if got != tt.want {
				t.Errorf("PageSequence(%d, %d) = %q, esperava %q", tt.current, tt.count, got, tt.want)
			}
		})
	}
}

func TestPageSequenceClampsOutOfRangePage(t *testing.T) {
	if got, want := seqStr(PageSequence(0, 20, DensityFull)), seqStr(PageSequence(1, 20, DensityFull)); got != want {
		t.Errorf("página 0 deveria ser fixada em 1: %q vs %q", got, want)
	}
	if got, want := seqStr(PageSequence(99, 20, DensityFull)), seqStr(PageSequence(20, 20, DensityFull)); got != want {
		t.Errorf("página além do fim deveria ser fixada na última: %q vs %q", got, want)
	}
}

// As invariantes estruturais valem para qualquer combinação: números
// estritamente crescentes, sem reticências adjacentes, primeira e
// última página sempre presentes quando há colapso.
func TestPageSequenceInvariants(t *testing.T) {
	for _, d := range []Density{DensityFull, DensityCompact} {
		for count := 2; count <= 30; count++ {
			for current := 1; current <= count; current++ {
				seq := PageSequence(current, count, d)
				if len(seq) == 0 {
					t.Fatalf("sequência vazia para current=%d count=%d", current, count)
				}
				if seq[0].Kind != MarkerNumber || seq[0].Page != 1 {
					t.Fatalf("sequência não começa na página 1: %v (current=%d count=%d)", seqStr(seq), current, count)
				}
				last := seq[len(seq)-1]
				if last.Kind != MarkerNumber || last.Page != count {
					t.Fatalf("sequência não termina na última página: %v (current=%d count=%d)", seqStr(seq), current, count)
				}
				prevPage := 0
				prevEllipsis := false
				currentVisible := false
				for _, m := range seq {
					if m.Kind == MarkerEllipsis {
						if prevEllipsis {
							t.Fatalf("reticências adjacentes em %v (current=%d count=%d)", seqStr(seq), current, count)
						}
						prevEllipsis = true
						continue
					}
					prevEllipsis = false
					if m.Page <= prevPage {
						t.Fatalf("páginas fora de ordem em %v (current=%d count=%d)", seqStr(seq), current, count)
					}
					prevPage = m.Page
					if m.Page == current {
						currentVisible = true
					}
				}
				if !currentVisible {
					t.Fatalf("página atual %d ausente em %v (count=%d)", current, seqStr(seq), count)
				}
			}
		}
	}
}
