package datatable

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

// UIIntent é o sinal de interface emitido por uma transição de estado
// do critério. É separado da mudança de dado em si: o núcleo nunca
// abre popovers, apenas informa a intenção à tela.
type UIIntent int

const (
	IntentNone UIIntent = iota
	// IntentOpenRangePicker: o usuário selecionou o campo de intervalo
	// de datas; a tela deve abrir o seletor de período.
	IntentOpenRangePicker
)

// Criterion é o critério de filtro ativo de uma tabela: um campo do
// catálogo mais um valor escalar OU um intervalo de datas —
// exclusivamente um dos dois. Trocar o campo sempre descarta o valor
// anterior (inclusive um intervalo incompleto).
type Criterion struct {
	catalog *Catalog
	field   FilterField

	rawValue string // como digitado, para exibição
	value    string // normalizado (trim + minúsculas) para comparação

	start *time.Time
	end   *time.Time
}

// NewCriterion cria um critério vazio apontando para o campo padrão do
// catálogo — o mesmo estado deixado por Clear().
func NewCriterion(catalog *Catalog) (*Criterion, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catálogo de filtros é obrigatório", appErrors.ErrInvalidInput)
	}
	return &Criterion{catalog: catalog, field: catalog.Default()}, nil
}

// SetField troca o campo ativo. Qualquer valor escalar ou intervalo
// existente é descartado: até que um novo valor seja informado, o
// critério fica incompleto e a tabela volta a exibir o conjunto
// completo. Retorna IntentOpenRangePicker quando o novo campo é o de
// intervalo de datas.
func (c *Criterion) SetField(key string) (UIIntent, error) {
	f, ok := c.catalog.ByKey(key)
	if !ok {
		return IntentNone, fmt.Errorf("%w: campo de filtro desconhecido '%s'", appErrors.ErrInvalidInput, key)
	}
	c.field = f
	c.resetValues()
	if f.IsDateRange() {
		return IntentOpenRangePicker, nil
	}
	return IntentNone, nil
}

// SetScalarValue define o texto de busca do campo ativo. Válido apenas
// quando o campo ativo não é o de intervalo de datas. O valor original
// é preservado para exibição; a comparação usa a forma normalizada.
func (c *Criterion) SetScalarValue(text string) error {
	if c.field.IsDateRange() {
		return fmt.Errorf("%w: campo '%s' usa intervalo de datas, não valor textual", appErrors.ErrInvalidInput, c.field.Key)
	}
	c.start, c.end = nil, nil
	c.rawValue = text
	c.value = strings.ToLower(strings.TrimSpace(text))
	return nil
}

// SetDateRange define o intervalo do campo ativo. Válido apenas quando
// o campo ativo é o de intervalo de datas. Limites podem ser definidos
// um de cada vez (seleção progressiva no calendário); o critério só é
// considerado completo com ambos presentes. O limite final é
// normalizado para o último instante do seu dia, de modo que um
// intervalo de um único dia seja inclusivo.
func (c *Criterion) SetDateRange(start, end *time.Time) error {
	if !c.field.IsDateRange() {
		return fmt.Errorf("%w: campo '%s' não aceita intervalo de datas", appErrors.ErrInvalidInput, c.field.Key)
	}
	c.rawValue, c.value = "", ""
	if start != nil {
		s := DayOf(*start)
		c.start = &s
	} else {
		c.start = nil
	}
	if end != nil {
		e := EndOfDay(*end)
		c.end = &e
	} else {
		c.end = nil
	}
	return nil
}

// Clear volta o critério exatamente ao estado de montagem inicial:
// campo padrão, sem valor, sem intervalo.
func (c *Criterion) Clear() {
	c.field = c.catalog.Default()
	c.resetValues()
}

func (c *Criterion) resetValues() {
	c.rawValue = ""
	c.value = ""
	c.start = nil
	c.end = nil
}

// Field retorna o campo ativo.
func (c *Criterion) Field() FilterField { return c.field }

// RawValue retorna o texto como digitado (para o editor da UI).
func (c *Criterion) RawValue() string { return c.rawValue }

// Value retorna o texto normalizado usado na comparação.
func (c *Criterion) Value() string { return c.value }

// Range retorna os limites do intervalo; ok é falso se algum limite
// estiver ausente (critério incompleto).
func (c *Criterion) Range() (start, end time.Time, ok bool) {
	if c.start == nil || c.end == nil {
		return time.Time{}, time.Time{}, false
	}
	return *c.start, *c.end, true
}

// IsComplete informa se o critério tem valor suficiente para filtrar.
// Um critério incompleto (texto vazio ou intervalo com um só limite) é
// tratado pelo avaliador como "sem filtro" — nunca como erro.
func (c *Criterion) IsComplete() bool {
	if c == nil {
		return false
	}
	if c.field.IsDateRange() {
		return c.start != nil && c.end != nil
	}
	return c.value != ""
}
