package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusFatura enumera os estados de uma parcela de fatura (boleto).
type StatusFatura string

const (
	FaturaAberta    StatusFatura = "Em Aberto"
	FaturaPaga      StatusFatura = "Paga"
	FaturaVencida   StatusFatura = "Vencida"
	FaturaCancelada StatusFatura = "Cancelada"
)

// DBFaturaParcela representa um registro na tabela 'faturas_parcelas':
// uma parcela (boleto) de uma fatura emitida contra o cliente.
type DBFaturaParcela struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// NumeroDocumento identifica a fatura (ex: "78901-2"); Parcela é a
	// posição desta parcela dentro dela.
	NumeroDocumento string `gorm:"type:varchar(20);not null;index"`
	Parcela         int    `gorm:"not null"`
	TotalParcelas   int    `gorm:"not null"`

	CNPJCPF string `gorm:"type:varchar(14);not null;index"` // Apenas dígitos

	DataEmissao    time.Time  `gorm:"type:date;not null"`
	DataVencimento time.Time  `gorm:"type:date;not null;index"`
	DataPagamento  *time.Time `gorm:"type:date"`

	Status string `gorm:"type:varchar(20);not null"`

	// Valores monetários como string, convertidos na projeção pública.
	Valor string `gorm:"type:varchar(30);not null"`

	// LinhaDigitavel é o código de barras do boleto em forma numérica
	// pontuada; NossoNumero é a referência bancária.
	LinhaDigitavel string `gorm:"type:varchar(60);not null"`
	NossoNumero    string `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName especifica o nome da tabela para GORM.
func (DBFaturaParcela) TableName() string {
	return "faturas_parcelas"
}

// FaturaPublic é a projeção de uma parcela para exibição na UI.
type FaturaPublic struct {
	ID              uint64
	NumeroDocumento string
	Parcela         int
	TotalParcelas   int
	CNPJCPF         string
	DataEmissao     time.Time
	DataVencimento  time.Time
	DataPagamento   *time.Time
	Status          StatusFatura
	Valor           decimal.Decimal
	LinhaDigitavel  string
	NossoNumero     string
}

// ToFaturaPublic converte um DBFaturaParcela para FaturaPublic.
func ToFaturaPublic(f *DBFaturaParcela) *FaturaPublic {
	if f == nil {
		return nil
	}
	valor, err := decimal.NewFromString(f.Valor)
	if err != nil {
		valor = decimal.Zero
	}
	return &FaturaPublic{
		ID:              f.ID,
		NumeroDocumento: f.NumeroDocumento,
		Parcela:         f.Parcela,
		TotalParcelas:   f.TotalParcelas,
		CNPJCPF:         f.CNPJCPF,
		DataEmissao:     f.DataEmissao,
		DataVencimento:  f.DataVencimento,
		DataPagamento:   f.DataPagamento,
		Status:          StatusFatura(f.Status),
		Valor:           valor,
		LinhaDigitavel:  f.LinhaDigitavel,
		NossoNumero:     f.NossoNumero,
	}
}

// ToFaturaPublicList converte uma lista de DBFaturaParcela.
func ToFaturaPublicList(faturas []*DBFaturaParcela) []*FaturaPublic {
	out := make([]*FaturaPublic, len(faturas))
	for i, f := range faturas {
		out[i] = ToFaturaPublic(f)
	}
	return out
}

// Chaves do catálogo de filtros da tela de faturas.
const (
	FaturaCampoDocumento  = "documento"
	FaturaCampoCNPJ       = "cnpj"
	FaturaCampoStatus     = "status"
	FaturaCampoVencimento = "vencimento"
)

// FilterValue implementa datatable.Filterable.
func (f *FaturaPublic) FilterValue(fieldKey string) (string, bool) {
	switch fieldKey {
	case FaturaCampoDocumento:
		return f.NumeroDocumento, true
	case FaturaCampoCNPJ:
		return f.CNPJCPF, true
	case FaturaCampoStatus:
		return string(f.Status), true
	}
	return "", false
}

// FilterDate implementa datatable.Filterable.
func (f *FaturaPublic) FilterDate(fieldKey string) (time.Time, bool) {
	if fieldKey == FaturaCampoVencimento {
		return f.DataVencimento, true
	}
	return time.Time{}, false
}

// EstaVencida informa se a parcela em aberto já passou do vencimento
// na data de referência.
func (f *FaturaPublic) EstaVencida(ref time.Time) bool {
	if f.Status != FaturaAberta {
		return f.Status == FaturaVencida
	}
	ano, mes, dia := ref.Date()
	hoje := time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
	venc := time.Date(f.DataVencimento.Year(), f.DataVencimento.Month(), f.DataVencimento.Day(), 0, 0, 0, 0, time.UTC)
	return venc.Before(hoje)
}
