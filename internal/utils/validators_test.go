package utils

import "testing"

func TestIsValidCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		cnpj  string
		valid bool
	}{
		{"válido", "11222333000181", true},
		{"dígito verificador errado", "11222333000182", false},
		{"todos os dígitos iguais", "00000000000000", false},
		{"curto demais", "1122233300018", false},
		{"longo demais", "112223330001810", false},
		{"vazio", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCNPJ(tt.cnpj); got != tt.valid {
				t.Errorf("IsValidCNPJ(%q) = %v, esperava %v", tt.cnpj, got, tt.valid)
			}
		})
	}
}

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"válido", "52998224725", true},
		{"dígito verificador errado", "52998224726", false},
		{"todos os dígitos iguais", "11111111111", false},
		{"curto demais", "5299822472", false},
		{"vazio", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCPF(tt.cpf); got != tt.valid {
				t.Errorf("IsValidCPF(%q) = %v, esperava %v", tt.cpf, got, tt.valid)
			}
		})
	}
}

func TestIsValidDocumento(t *testing.T) {
	if !IsValidDocumento("11222333000181") {
		t.Error("CNPJ válido rejeitado")
	}
	if !IsValidDocumento("52998224725") {
		t.Error("CPF válido rejeitado")
	}
	// Tamanho que não é nem CPF nem CNPJ.
	if IsValidDocumento("123456789012") {
		t.Error("documento de 12 dígitos aceito")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("cliente@exemplo.com.br"); err != nil {
		t.Errorf("e-mail válido rejeitado: %v", err)
	}
	for _, email := range []string{"", "sem-arroba", "a@", "Nome <a@b.com>"} {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("esperava erro para %q", email)
		}
	}
}
