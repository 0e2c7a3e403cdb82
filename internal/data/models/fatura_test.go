package models

import (
	"testing"
	"time"
)

func TestEstaVencida(t *testing.T) {
	venc := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status StatusFatura
		ref    time.Time
		want   bool
	}{
		// O vencimento conta por dia de calendário: no próprio dia a
		// parcela ainda não está vencida, qualquer que seja a hora.
		{"aberta no dia do vencimento", FaturaAberta, time.Date(2025, time.June, 10, 23, 59, 0, 0, time.UTC), false},
		{"aberta um dia depois", FaturaAberta, time.Date(2025, time.June, 11, 0, 1, 0, 0, time.UTC), true},
		{"aberta antes do vencimento", FaturaAberta, time.Date(2025, time.June, 9, 12, 0, 0, 0, time.UTC), false},
		{"paga nunca vence", FaturaPaga, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"cancelada nunca vence", FaturaCancelada, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"já marcada vencida", FaturaVencida, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FaturaPublic{Status: tt.status, DataVencimento: venc}
			if got := f.EstaVencida(tt.ref); got != tt.want {
				t.Errorf("EstaVencida = %v, esperava %v", got, tt.want)
			}
		})
	}
}
