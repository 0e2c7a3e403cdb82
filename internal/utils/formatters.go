package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formata um valor em reais no padrão brasileiro:
// "R$ 1.234,56". Valores negativos recebem o sinal antes do símbolo.
func FormatMoney(valor decimal.Decimal) string {
	negativo := valor.IsNegative()
	abs := valor.Abs().StringFixedBank(2)

	partes := strings.SplitN(abs, ".", 2)
	inteiro, centavos := partes[0], "00"
	if len(partes) == 2 {
		centavos = partes[1]
	}

	var sb strings.Builder
	if negativo {
		sb.WriteString("-")
	}
	sb.WriteString("R$ ")
	for i, d := range inteiro {
		resto := len(inteiro) - i
		if i > 0 && resto%3 == 0 {
			sb.WriteString(".")
		}
		sb.WriteRune(d)
	}
	sb.WriteString(",")
	sb.WriteString(centavos)
	return sb.String()
}

// FormatDate formata uma data no padrão brasileiro "02/01/2006".
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDatePtr formata uma data opcional; nil vira traço.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return FormatDate(*t)
}

// FormatDateTime formata data e hora "02/01/2006 15:04".
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
