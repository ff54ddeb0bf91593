// Package validation contiene reglas de formato para los payloads del API.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Email rules:
// - local@domain, sin espacios.
// - domain con al menos un punto y TLD de 2+ letras.
// No pretende cubrir RFC 5322; sólo rechaza lo claramente inválido.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidEmail retorna true si el email tiene un formato aceptable.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// LengthBetween verifica la longitud en runas (no bytes).
func LengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// Blank indica si s está vacío o sólo tiene espacios.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// onlyDigits quita puntuación (".", "-", "/") y retorna los dígitos.
// Si aparece cualquier otro carácter retorna "".
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '/' || r == ' ':
		default:
			return ""
		}
	}
	return b.String()
}

// allSame detecta secuencias como 00000000000, que pasan el dígito verificador.
func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit calcula un dígito verificador módulo 11 con los pesos dados.
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// ValidCPF valida un CPF (11 dígitos, con o sin máscara).
func ValidCPF(s string) bool {
	d := onlyDigits(s)
	if len(d) != 11 || allSame(d) {
		return false
	}
	return d[9] == checkDigit(d, []int{10, 9, 8, 7, 6, 5, 4, 3, 2}) &&
		d[10] == checkDigit(d, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
}

// ValidCNPJ valida un CNPJ (14 dígitos, con o sin máscara).
func ValidCNPJ(s string) bool {
	d := onlyDigits(s)
	if len(d) != 14 || allSame(d) {
		return false
	}
	return d[12] == checkDigit(d, []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) &&
		d[13] == checkDigit(d, []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
}

// NormalizeTaxID retorna sólo los dígitos del documento.
func NormalizeTaxID(s string) string {
	return onlyDigits(s)
}
