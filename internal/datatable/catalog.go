package datatable

import (
	"fmt"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

// ComparisonKind define como o valor digitado pelo usuário é comparado
// com o campo correspondente de cada registro.
type ComparisonKind int

const (
	// CompareNumeric: ambos os lados são reduzidos a dígitos antes do
	// teste de substring (pontuação de códigos/números é ignorada).
	CompareNumeric ComparisonKind = iota
	// CompareText: substring sem distinção de maiúsculas ou acentos.
	CompareText
	// CompareDocument: CNPJ/CPF — apenas dígitos dos dois lados.
	CompareDocument
	// CompareDateRange: intervalo de datas inclusivo, por dia de calendário.
	CompareDateRange
)

// FilterField descreve um campo filtrável de uma tabela. O motor de
// filtro não conhece os nomes de negócio; só precisa da chave e do
// tipo de comparação. O catálogo é fornecido por cada tela.
type FilterField struct {
	Key   string
	Label string
	Kind  ComparisonKind
}

// IsDateRange informa se o campo usa o modo de intervalo de datas.
func (f FilterField) IsDateRange() bool {
	return f.Kind == CompareDateRange
}

// Catalog é a enumeração estática dos campos filtráveis de uma tela.
// O primeiro campo da lista é o campo padrão (selecionado no mount e
// após um "limpar").
type Catalog struct {
	fields []FilterField
	byKey  map[string]FilterField
}

// NewCatalog valida e monta um catálogo de campos.
func NewCatalog(fields []FilterField) (*Catalog, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: catálogo de filtros requer ao menos um campo", appErrors.ErrInvalidInput)
	}
	byKey := make(map[string]FilterField, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("%w: campo de filtro sem chave", appErrors.ErrInvalidInput)
		}
		if _, dup := byKey[f.Key]; dup {
			return nil, fmt.Errorf("%w: chave de filtro duplicada '%s'", appErrors.ErrInvalidInput, f.Key)
		}
		byKey[f.Key] = f
	}
	return &Catalog{fields: fields, byKey: byKey}, nil
}

// MustCatalog é um helper para catálogos estáticos declarados em código.
// Entra em pânico se o catálogo for inválido (erro de programação).
func MustCatalog(fields []FilterField) *Catalog {
	c, err := NewCatalog(fields)
	if err != nil {
		panic(err)
	}
	return c
}

// Default retorna o campo padrão do catálogo.
func (c *Catalog) Default() FilterField {
	return c.fields[0]
}

// ByKey procura um campo pela chave.
func (c *Catalog) ByKey(key string) (FilterField, bool) {
	f, ok := c.byKey[key]
	return f, ok
}

// Fields retorna os campos na ordem de declaração (cópia defensiva não
// é necessária: a UI só lê a lista).
func (c *Catalog) Fields() []FilterField {
	return c.fields
}
