package utils

import (
	"net/mail"
	"strconv"
	"strings"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

// --- Validador de CNPJ ---

// IsValidCNPJ verifica se uma string de CNPJ (apenas dígitos) é válida.
func IsValidCNPJ(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}
	// Sequências com todos os dígitos iguais passam no cálculo, mas são
	// inválidas (ex: "00000000000000").
	if allDigitsEqual(cnpj) {
		return false
	}

	// Cálculo do primeiro dígito verificador
	sum := 0
	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for i := 0; i < 12; i++ {
		digit, _ := strconv.Atoi(string(cnpj[i]))
		sum += digit * weights1[i]
	}
	remainder := sum % 11
	digit1 := 0
	if remainder >= 2 {
		digit1 = 11 - remainder
	}
	if strconv.Itoa(digit1) != string(cnpj[12]) {
		return false
	}

	// Cálculo do segundo dígito verificador
	sum = 0
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for i := 0; i < 13; i++ {
		digit, _ := strconv.Atoi(string(cnpj[i]))
		sum += digit * weights2[i]
	}
	remainder = sum % 11
	digit2 := 0
	if remainder >= 2 {
		digit2 = 11 - remainder
	}
	return strconv.Itoa(digit2) == string(cnpj[13])
}

// --- Validador de CPF ---

// IsValidCPF verifica se uma string de CPF (apenas dígitos) é válida.
func IsValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	if allDigitsEqual(cpf) {
		return false
	}

	// Primeiro dígito verificador
	sum := 0
	for i := 0; i < 9; i++ {
		digit, _ := strconv.Atoi(string(cpf[i]))
		sum += digit * (10 - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 {
		remainder = 0
	}
	if strconv.Itoa(remainder) != string(cpf[9]) {
		return false
	}

	// Segundo dígito verificador
	sum = 0
	for i := 0; i < 10; i++ {
		digit, _ := strconv.Atoi(string(cpf[i]))
		sum += digit * (11 - i)
	}
	remainder = (sum * 10) % 11
	if remainder == 10 {
		remainder = 0
	}
	return strconv.Itoa(remainder) == string(cpf[10])
}

// IsValidDocumento valida um CNPJ ou CPF (apenas dígitos) pelo
// tamanho.
func IsValidDocumento(doc string) bool {
	switch len(doc) {
	case 14:
		return IsValidCNPJ(doc)
	case 11:
		return IsValidCPF(doc)
	}
	return false
}

// allDigitsEqual verifica se todos os caracteres em uma string são iguais.
func allDigitsEqual(s string) bool {
	if len(s) < 2 {
		return true
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// --- Validador de E-mail ---

// ValidateEmail verifica se um e-mail é válido.
// Retorna nil se válido, ou um erro do tipo appErrors.ValidationError.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return appErrors.NewValidationError("E-mail é obrigatório.", map[string]string{"email": "obrigatório"})
	}
	if len(email) > 254 {
		return appErrors.NewValidationError("E-mail excede 254 caracteres.", map[string]string{"email": "muito longo"})
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return appErrors.NewValidationError("Formato de e-mail inválido.", map[string]string{"email": "formato inválido"})
	}
	return nil
}
