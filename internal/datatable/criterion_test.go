package datatable

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	return MustCatalog([]FilterField{
		{Key: "codigo", Label: "Código", Kind: CompareNumeric},
		{Key: "cliente", Label: "Cliente", Kind: CompareText},
		{Key: "cnpj", Label: "CNPJ", Kind: CompareDocument},
		{Key: "data", Label: "Data do Pedido", Kind: CompareDateRange},
	})
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields []FilterField
	}{
		{"vazio", nil},
		{"chave vazia", []FilterField{{Key: "", Label: "X"}}},
		{"chave duplicada", []FilterField{
			{Key: "codigo", Label: "A"},
			{Key: "codigo", Label: "B"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.fields)
			if err == nil {
				t.Fatal("esperava erro, obteve nil")
			}
			if !errors.Is(err, appErrors.ErrInvalidInput) {
				t.Errorf("esperava ErrInvalidInput, obteve %v", err)
			}
		})
	}
}

func TestCatalogDefaultIsFirstField(t *testing.T) {
	cat := testCatalog(t)
	if got := cat.Default().Key; got != "codigo" {
		t.Errorf("campo padrão = %q, esperava 'codigo'", got)
	}
}

func TestCriterionSetFieldUnknown(t *testing.T) {
	c, err := NewCriterion(testCatalog(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetField("inexistente"); !errors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("esperava ErrInvalidInput para campo desconhecido, obteve %v", err)
	}
}

func TestCriterionSetFieldDateRangeIntent(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	intent, err := c.SetField("data")
	if err != nil {
		t.Fatal(err)
	}
	if intent != IntentOpenRangePicker {
		t.Errorf("intent = %v, esperava IntentOpenRangePicker", intent)
	}
	intent, err = c.SetField("cliente")
	if err != nil {
		t.Fatal(err)
	}
	if intent != IntentNone {
		t.Errorf("intent = %v, esperava IntentNone para campo escalar", intent)
	}
}

func TestCriterionScalarNormalization(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	if err := c.SetScalarValue("  Silva  "); err != nil {
		t.Fatal(err)
	}
	if c.RawValue() != "  Silva  " {
		t.Errorf("RawValue = %q, deveria preservar o texto como digitado", c.RawValue())
	}
	if c.Value() != "silva" {
		t.Errorf("Value = %q, esperava 'silva'", c.Value())
	}
	if !c.IsComplete() {
		t.Error("critério com valor não vazio deveria estar completo")
	}
}

func TestCriterionScalarOnDateFieldFails(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	if _, err := c.SetField("data"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetScalarValue("abc"); !errors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("esperava ErrInvalidInput ao digitar texto no campo de datas, obteve %v", err)
	}
}

func TestCriterionDateRangeOnScalarFieldFails(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	now := time.Now()
	if err := c.SetDateRange(&now, &now); !errors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("esperava ErrInvalidInput ao definir intervalo em campo escalar, obteve %v", err)
	}
}

func TestCriterionDateRangeNormalization(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	if _, err := c.SetField("data"); err != nil {
		t.Fatal(err)
	}
	start := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	end := time.Date(2025, 3, 10, 9, 15, 0, 0, time.Local)
	if err := c.SetDateRange(&start, &end); err != nil {
		t.Fatal(err)
	}
	s, e, ok := c.Range()
	if !ok {
		t.Fatal("intervalo com ambos os limites deveria estar completo")
	}
	if s.Hour() != 0 || s.Minute() != 0 {
		t.Errorf("limite inicial não normalizado para meia-noite: %v", s)
	}
	if e.Hour() != 23 || e.Minute() != 59 || e.Second() != 59 {
		t.Errorf("limite final não normalizado para o fim do dia: %v", e)
	}
	// Intervalo de um único dia deve cobrir o dia inteiro.
	if !s.Before(e) {
		t.Errorf("início %v deveria preceder fim %v mesmo num intervalo de um dia", s, e)
	}
}

func TestCriterionPartialRangeIsIncomplete(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("data")
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := c.SetDateRange(&start, nil); err != nil {
		t.Fatal(err)
	}
	if c.IsComplete() {
		t.Error("intervalo com um só limite não deveria estar completo")
	}
	if _, _, ok := c.Range(); ok {
		t.Error("Range deveria reportar ok=false com limite ausente")
	}
}

func TestCriterionSetFieldDiscardsPreviousValue(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	if err := c.SetScalarValue("1000"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetField("cliente"); err != nil {
		t.Fatal(err)
	}
	if c.Value() != "" || c.RawValue() != "" {
		t.Error("trocar o campo deveria descartar o valor anterior")
	}
	if c.IsComplete() {
		t.Error("critério recém trocado de campo deveria estar incompleto")
	}

	// Inclusive um intervalo parcialmente selecionado.
	c.SetField("data")
	start := time.Now()
	c.SetDateRange(&start, nil)
	c.SetField("codigo")
	if c.IsComplete() {
		t.Error("intervalo parcial deveria ser descartado na troca de campo")
	}
}

func TestCriterionClearRestoresInitialState(t *testing.T) {
	c, _ := NewCriterion(testCatalog(t))
	c.SetField("cnpj")
	c.SetScalarValue("12.345.678/0001-90")
	c.Clear()
	if c.Field().Key != "codigo" {
		t.Errorf("Clear deveria voltar ao campo padrão, ficou em %q", c.Field().Key)
	}
	if c.IsComplete() {
		t.Error("critério limpo não deveria estar completo")
	}
}

func TestNilCriterionIsIncomplete(t *testing.T) {
	var c *Criterion
	if c.IsComplete() {
		t.Error("critério nulo deveria reportar incompleto, não entrar em pânico")
	}
}
