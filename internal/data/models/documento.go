package models

import (
	"strings"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

// NewValidationError é um atalho para o tipo de erro de validação do
// core, para que os modelos não precisem do import aliased em cada uso.
func NewValidationError(message string, fields map[string]string) *appErrors.ValidationError {
	return appErrors.NewValidationError(message, fields)
}

// CleanDocumento remove caracteres não numéricos de um CNPJ ou CPF.
// Usado antes de salvar no banco ou comparar.
func CleanDocumento(doc string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1 // Descarta o caractere
	}, doc)
}

// FormatCNPJ formata um CNPJ de 14 dígitos para exibição
// ("12.345.678/0001-90"). Entradas de outro tamanho voltam como estão.
func FormatCNPJ(cnpj string) string {
	if len(cnpj) == 14 {
		return cnpj[0:2] + "." + cnpj[2:5] + "." + cnpj[5:8] + "/" + cnpj[8:12] + "-" + cnpj[12:14]
	}
	return cnpj
}

// FormatCPF formata um CPF de 11 dígitos para exibição
// ("123.456.789-09"). Entradas de outro tamanho voltam como estão.
func FormatCPF(cpf string) string {
	if len(cpf) == 11 {
		return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:11]
	}
	return cpf
}

// FormatDocumento escolhe a formatação pelo tamanho do documento.
func FormatDocumento(doc string) string {
	switch len(doc) {
	case 14:
		return FormatCNPJ(doc)
	case 11:
		return FormatCPF(doc)
	}
	return doc
}
