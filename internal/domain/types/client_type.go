// Package types define tipos de dominio compartidos entre paquetes.
package types

import (
	"fmt"
)

// ClientType clasifica la cuenta según la persona titular.
// El código numérico es el que viaja en los payloads y se persiste.
type ClientType int

const (
	// ClientTypeIndividual persona física (CPF).
	ClientTypeIndividual ClientType = 1
	// ClientTypeCompany persona jurídica (CNPJ).
	ClientTypeCompany ClientType = 2
)

// Code retorna el código numérico del tipo.
func (t ClientType) Code() int { return int(t) }

// Label retorna la descripción legible del tipo.
func (t ClientType) Label() string {
	switch t {
	case ClientTypeIndividual:
		return "Pessoa Física"
	case ClientTypeCompany:
		return "Pessoa Jurídica"
	}
	return ""
}

// IsValid retorna true si el tipo es uno de los conocidos.
func (t ClientType) IsValid() bool {
	return t.Label() != ""
}

// ClientTypeFromCode mapea un código a ClientType.
// Retorna error si el código no corresponde a ningún tipo conocido.
func ClientTypeFromCode(code int) (ClientType, error) {
	t := ClientType(code)
	if !t.IsValid() {
		return 0, fmt.Errorf("invalid client type code: %d", code)
	}
	return t, nil
}
