package clients

import (
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/validation"
)

const (
	msgRequired = "Preenchimento obrigatório"
	msgLength   = "O tamanho deve ser entre 5 e 120 caracteres"
	msgEmail    = "Email inválido"
)

func validateNew(in dto.ClientNewDTO) error {
	verr := &common.ValidationError{}

	checkNameEmail(verr, in.Name, in.Email)

	switch types.ClientType(in.Type) {
	case types.ClientTypeIndividual:
		if !validation.ValidCPF(in.TaxID) {
			verr.Add("cpfOuCnpj", "CPF inválido")
		}
	case types.ClientTypeCompany:
		if !validation.ValidCNPJ(in.TaxID) {
			verr.Add("cpfOuCnpj", "CNPJ inválido")
		}
	default:
		verr.Add("tipo", "Tipo de cliente inválido")
	}

	required := []struct{ field, value string }{
		{"senha", in.Password},
		{"logradouro", in.Street},
		{"numero", in.Number},
		{"cep", in.PostalCode},
		{"telefone1", in.Phone1},
	}
	for _, r := range required {
		if validation.Blank(r.value) {
			verr.Add(r.field, msgRequired)
		}
	}
	if in.CityID <= 0 {
		verr.Add("cidadeId", msgRequired)
	}

	return verr.OrNil()
}

func validateUpdate(in dto.ClientDTO) error {
	verr := &common.ValidationError{}
	checkNameEmail(verr, in.Name, in.Email)
	return verr.OrNil()
}

func checkNameEmail(verr *common.ValidationError, name, email string) {
	switch {
	case validation.Blank(name):
		verr.Add("nome", msgRequired)
	case !validation.LengthBetween(name, 5, 120):
		verr.Add("nome", msgLength)
	}
	switch {
	case validation.Blank(email):
		verr.Add("email", msgRequired)
	case !validation.ValidEmail(email):
		verr.Add("email", msgEmail)
	}
}
