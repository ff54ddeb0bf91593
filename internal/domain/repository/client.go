package repository

import (
	"context"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
)

// Client representa la cuenta de un cliente. Es dueño de sus direcciones.
type Client struct {
	ID           int64
	Name         string
	Email        string
	TaxID        string // CPF o CNPJ
	Type         types.ClientType
	PasswordHash string
	Phones       []string // ordenados, sin duplicados
	Addresses    []*Address
	Roles        []types.Role
}

// HasRole indica si el cliente tiene el rol dado.
func (c *Client) HasRole(r types.Role) bool {
	for _, cr := range c.Roles {
		if cr == r {
			return true
		}
	}
	return false
}

// AddPhone agrega un teléfono si no está vacío ni repetido.
// Retorna false si fue descartado.
func (c *Client) AddPhone(phone string) bool {
	if phone == "" {
		return false
	}
	for _, p := range c.Phones {
		if p == phone {
			return false
		}
	}
	c.Phones = append(c.Phones, phone)
	return true
}

// AddAddress agrega la dirección y fija su back-reference al cliente.
func (c *Client) AddAddress(a *Address) {
	a.Client = c
	c.Addresses = append(c.Addresses, a)
}

// Address es una dirección de un cliente.
type Address struct {
	ID         int64
	Street     string
	Number     string
	Complement string
	District   string
	PostalCode string
	Client     *Client // back-reference, no ownership
	City       CityRef
}

// ClientSortFields mapea atributos expuestos (orderBy) a columnas.
var ClientSortFields = map[string]string{
	"id":        "id",
	"nome":      "name",
	"email":     "email",
	"cpfOuCnpj": "tax_id",
	"tipo":      "type",
}

// ClientRepository define operaciones sobre clientes.
type ClientRepository interface {
	// FindByID carga el agregado completo (teléfonos, direcciones con ciudad, roles).
	// Retorna FailureNotFound si no existe.
	FindByID(ctx context.Context, id int64) (*Client, error)

	// FindByEmail retorna FailureNotFound si no existe.
	FindByEmail(ctx context.Context, email string) (*Client, error)

	FindAll(ctx context.Context) ([]Client, error)

	// FindPage retorna FailureInvalidSort si req.OrderBy no está en ClientSortFields.
	FindPage(ctx context.Context, req PageRequest) (Page[Client], error)

	// Create persiste el cliente y, en la misma transacción, sus direcciones,
	// teléfonos y roles. Asigna IDs al cliente y a cada dirección.
	// Retorna FailureConflict si el email ya existe y FailureInvalidReference
	// si alguna dirección apunta a una ciudad inexistente.
	Create(ctx context.Context, c *Client) error

	// Update reescribe nombre y email. Retorna FailureNotFound si no existe.
	Update(ctx context.Context, c *Client) error

	// UpdatePasswordHash reemplaza el hash de la credencial.
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	// Delete borra el cliente y sus direcciones en cascada.
	// Retorna FailureNotFound si no existe y FailureIntegrity si hay pedidos que lo referencian.
	Delete(ctx context.Context, id int64) error
}
