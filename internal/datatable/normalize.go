package datatable

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonDigitRegex = regexp.MustCompile(`[^0-9]`)

// OnlyDigits remove tudo que não for dígito. É a normalização usada
// pelos modos CompareNumeric e CompareDocument, para que pontuação de
// formatação ("12.345.678/0001-90", "1000.234-5") não afete a busca.
func OnlyDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// foldTransformer decompõe (NFD), descarta as marcas de acentuação e
// recompõe (NFC). Transformadores não são seguros para uso concorrente,
// então Fold monta a cadeia a cada chamada — o custo é irrelevante para
// strings de célula de tabela.
func foldTransformer() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold normaliza texto livre para comparação: minúsculas e sem
// acentos, para que "José" case com "jose".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer(), s)
	if err != nil {
		// Entrada degenerada: compara só em minúsculas.
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// DayOf reduz um instante ao seu dia de calendário (meia-noite UTC),
// construído a partir dos componentes ano/mês/dia — nunca por coerção
// de string parcial, para não haver deriva de fuso horário.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay retorna o último instante do dia de calendário de t. Usado
// para normalizar o limite final de um intervalo, de modo que um
// intervalo de um único dia seja inclusivo.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
