package datatable

import (
	"testing"
	"time"
)

// linhaTeste é um registro mínimo para exercitar o avaliador sem
// depender dos modelos de negócio.
type linhaTeste struct {
	codigo  string
	cliente string
	cnpj    string
	data    time.Time
	semData bool
}

func (l linhaTeste) FilterValue(fieldKey string) (string, bool) {
	switch fieldKey {
	case "codigo":
		return l.codigo, true
	case "cliente":
		return l.cliente, true
	case "cnpj":
		if l.cnpj == "" {
			return "", false
		}
		return l.cnpj, true
	}
	return "", false
}

func (l linhaTeste) FilterDate(fieldKey string) (time.Time, bool) {
	if fieldKey == "data" && !l.semData {
		return l.data, true
	}
	return time.Time{}, false
}

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func linhasExemplo() []linhaTeste {
	return []linhaTeste{
		{codigo: "1000.234-5", cliente: "José da Silva", cnpj: "12.345.678/0001-90", data: time.Date(2025, 6, 20, 23, 50, 0, 0, time.UTC)},
		{codigo: "1000.235-1", cliente: "Maria Conceição", cnpj: "98.765.432/0001-10", data: dia(2025, 6, 15)},
		{codigo: "2000.111-0", cliente: "Padaria São João Ltda", cnpj: "11.222.333/0001-44", data: dia(2025, 5, 30)},
		{codigo: "2000.112-9", cliente: "AgroSul Distribuidora", data: dia(2025, 5, 1), cnpj: ""},
	}
}

func chaves(rows []linhaTeste) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.codigo
	}
	return out
}

func igual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvaluateNilOrIncompleteReturnsInput(t *testing.T) {
	rows := linhasExemplo()

	if got := Evaluate(rows, nil); len(got) != len(rows) {
		t.Errorf("critério nulo: %d linhas, esperava %d", len(got), len(rows))
	}

	c, _ := NewCriterion(testCatalog(t))
	got := Evaluate(rows, c)
	if !igual(chaves(got), chaves(rows)) {
		t.Error("critério incompleto deveria devolver o conjunto completo na mesma ordem")
	}
}

func TestEvaluateNumericIgnoresPunctuation(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))

	// O usuário digita só os dígitos; o registro tem pontuação.
	c.SetScalarValue("10002345")
	got := Evaluate(rows, c)
	if !igual(chaves(got), []string{"1000.234-5"}) {
		t.Errorf("busca por dígitos = %v, esperava só 1000.234-5", chaves(got))
	}

	// O usuário digita com pontuação; dos dois lados só contam dígitos.
	c.SetScalarValue("1000.234")
	got = Evaluate(rows, c)
	if !igual(chaves(got), []string{"1000.234-5"}) {
		t.Errorf("busca pontuada = %v, esperava só 1000.234-5", chaves(got))
	}

	// Prefixo parcial casa por substring.
	c.SetScalarValue("2000")
	got = Evaluate(rows, c)
	if !igual(chaves(got), []string{"2000.111-0", "2000.112-9"}) {
		t.Errorf("busca parcial = %v", chaves(got))
	}
}

func TestEvaluatePunctuationOnlyQueryMatchesAll(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetScalarValue(".-/")
	got := Evaluate(rows, c)
	if len(got) != len(rows) {
		t.Errorf("consulta só de pontuação deveria equivaler a filtro vazio: %d de %d linhas", len(got), len(rows))
	}
}

func TestEvaluateTextIsAccentAndCaseInsensitive(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("cliente")

	tests := []struct {
		query string
		want  []string
	}{
		{"jose", []string{"1000.234-5"}},
		{"JOSÉ", []string{"1000.234-5"}},
		{"conceicao", []string{"1000.235-1"}},
		{"sao joao", []string{"2000.111-0"}},
		{"inexistente", nil},
	}
	for _, tt := range tests {
		if err := c.SetScalarValue(tt.query); err != nil {
			t.Fatal(err)
		}
		got := chaves(Evaluate(rows, c))
		if !igual(got, tt.want) {
			t.Errorf("busca %q = %v, esperava %v", tt.query, got, tt.want)
		}
	}
}

func TestEvaluateDocumentComparesDigitsOnly(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("cnpj")
	c.SetScalarValue("12345678000190")
	got := Evaluate(rows, c)
	if !igual(chaves(got), []string{"1000.234-5"}) {
		t.Errorf("busca por CNPJ em dígitos = %v", chaves(got))
	}

	c.SetScalarValue("11.222.333")
	got = Evaluate(rows, c)
	if !igual(chaves(got), []string{"2000.111-0"}) {
		t.Errorf("busca por CNPJ pontuado = %v", chaves(got))
	}
}

func TestEvaluateMissingFieldExcludesRecord(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("cnpj")
	c.SetScalarValue("0001")
	got := Evaluate(rows, c)
	// A última linha não tem CNPJ populado e não deve casar.
	for _, r := range got {
		if r.codigo == "2000.112-9" {
			t.Error("registro sem o campo filtrado não deveria aparecer no resultado")
		}
	}
}

func TestEvaluateDateRangeIsInclusiveByCalendarDay(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("data")

	start := dia(2025, 6, 15)
	end := dia(2025, 6, 20)
	if err := c.SetDateRange(&start, &end); err != nil {
		t.Fatal(err)
	}
	got := chaves(Evaluate(rows, c))
	// O registro de 20/06 às 23:50 está dentro: o limite final cobre o
	// dia de calendário inteiro.
	if !igual(got, []string{"1000.234-5", "1000.235-1"}) {
		t.Errorf("intervalo 15-20/06 = %v", got)
	}

	// Intervalo de um único dia.
	único := dia(2025, 5, 30)
	c.SetDateRange(&único, &único)
	got = chaves(Evaluate(rows, c))
	if !igual(got, []string{"2000.111-0"}) {
		t.Errorf("intervalo de um dia = %v", got)
	}
}

func TestEvaluateIsIdempotentAndPure(t *testing.T) {
	rows := linhasExemplo()
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("cliente")
	c.SetScalarValue("a")

	primeira := chaves(Evaluate(rows, c))
	segunda := chaves(Evaluate(rows, c))
	if !igual(primeira, segunda) {
		t.Error("avaliações repetidas com o mesmo critério deveriam ser idênticas")
	}
	if !igual(chaves(rows), chaves(linhasExemplo())) {
		t.Error("Evaluate não deveria mutar o conjunto de entrada")
	}

	// Limpar o critério reverte ao conjunto completo.
	c.Clear()
	if got := chaves(Evaluate(rows, c)); !igual(got, chaves(rows)) {
		t.Error("critério limpo deveria devolver o conjunto completo")
	}
}
