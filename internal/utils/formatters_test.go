package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		valor string
		want  string
	}{
		{"zero", "0", "R$ 0,00"},
		{"sem agrupamento", "123.45", "R$ 123,45"},
		{"milhar", "1234.56", "R$ 1.234,56"},
		{"milhão", "1234567.89", "R$ 1.234.567,89"},
		{"negativo", "-1234.56", "-R$ 1.234,56"},
		{"arredondamento", "10.005", "R$ 10,00"},
		{"exatamente mil", "1000", "R$ 1.000,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decimal.RequireFromString(tt.valor)
			if got := FormatMoney(v); got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, esperava %q", tt.valor, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "07/03/2025" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDateTime(d); got != "07/03/2025 14:30" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestFormatDatePtr(t *testing.T) {
	if got := FormatDatePtr(nil); got != "—" {
		t.Errorf("FormatDatePtr(nil) = %q", got)
	}
	d := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatDatePtr(&d); got != "31/12/2025" {
		t.Errorf("FormatDatePtr = %q", got)
	}
}
