package clients

import (
	"errors"
	"fmt"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	"github.com/dropDatabas3/cursomvc/internal/validation"
)

// Builder convierte los payloads del API en el agregado Client.
type Builder struct {
	Hasher password.Hasher
}

// BuildNew arma un cliente listo para un único Create en cascada:
//   - ID en cero (lo asigna el store)
//   - credencial hasheada
//   - una dirección con back-reference al cliente y ciudad sólo por ID
//   - teléfonos en orden de entrada, omitiendo los vacíos
//
// Falla con ValidationError si el código de tipo no es conocido.
func (b Builder) BuildNew(in dto.ClientNewDTO) (*repository.Client, error) {
	ct, err := types.ClientTypeFromCode(in.Type)
	if err != nil {
		return nil, common.Invalid("tipo", "Tipo de cliente inválido")
	}

	hash, err := b.Hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrEmptyPassword) {
			return nil, common.Invalid("senha", "Preenchimento obrigatório")
		}
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	c := &repository.Client{
		Name:         in.Name,
		Email:        in.Email,
		TaxID:        validation.NormalizeTaxID(in.TaxID),
		Type:         ct,
		PasswordHash: hash,
		Roles:        []types.Role{types.RoleClient},
	}

	c.AddAddress(&repository.Address{
		Street:     in.Street,
		Number:     in.Number,
		Complement: in.Complement,
		District:   in.District,
		PostalCode: in.PostalCode,
		City:       repository.CityRef{ID: in.CityID},
	})

	c.AddPhone(in.Phone1)
	c.AddPhone(in.Phone2)
	c.AddPhone(in.Phone3)
	if len(c.Phones) == 0 {
		return nil, common.Invalid("telefone1", "Preenchimento obrigatório")
	}

	return c, nil
}

// BuildUpdate arma el cliente parcial que sólo aporta los campos editables.
func (Builder) BuildUpdate(in dto.ClientDTO) *repository.Client {
	return &repository.Client{ID: in.ID, Name: in.Name, Email: in.Email}
}
