package utils

import (
	"reflect"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cpf formatado", "doc 529.982.247-25 ok", "doc ***.***.***-** ok"},
		{"cnpj sem máscara", "12345678000195", "**.***.***/****-**"},
		{"email", "contato cliente@exemplo.com fim", "contato ****@****.*** fim"},
		{"texto limpo", "pedido PED-2025-00042", "pedido PED-2025-00042"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeString(tt.in); got != tt.want {
				t.Errorf("sanitizeString(%q) = %q, esperava %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeData(t *testing.T) {
	headers := []string{"Documento", "Cliente", "CNPJ"}
	rows := [][]string{
		{"FAT-001", "ACME Ltda", "12.345.678/0001-95"},
		{"FAT-002", "Beta SA", "98.765.432/0001-10"},
	}

	got := sanitizeData(headers, rows, []string{"cnpj"})
	want := [][]string{
		{"FAT-001", "ACME Ltda", "**.***.***/****-**"},
		{"FAT-002", "Beta SA", "**.***.***/****-**"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sanitizeData = %v, esperava %v", got, want)
	}

	// As linhas originais não podem ser alteradas.
	if rows[0][2] != "12.345.678/0001-95" {
		t.Error("sanitizeData modificou a entrada")
	}

	// Sem colunas a mascarar, devolve as linhas como estão.
	if got := sanitizeData(headers, rows, nil); !reflect.DeepEqual(got, rows) {
		t.Error("esperava as linhas originais sem colunas a mascarar")
	}
}
