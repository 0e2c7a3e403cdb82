package models

import "testing"

func TestFormatDocumento(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"cnpj", "12345678000195", "12.345.678/0001-95"},
		{"cpf", "52998224725", "529.982.247-25"},
		{"tamanho inesperado volta como está", "12345", "12345"},
		{"vazio", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDocumento(tt.doc); got != tt.want {
				t.Errorf("FormatDocumento(%q) = %q, esperava %q", tt.doc, got, tt.want)
			}
		})
	}
}
