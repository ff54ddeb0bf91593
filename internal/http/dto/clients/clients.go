// Package clients contiene DTOs del recurso /clientes.
package clients

// ClientDTO es la vista resumida de un cliente y el body de PUT.
type ClientDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// ClientNewDTO es el body plano de POST /clientes: cliente, una dirección
// y hasta tres teléfonos.
type ClientNewDTO struct {
	Name       string `json:"nome"`
	Email      string `json:"email"`
	TaxID      string `json:"cpfOuCnpj"`
	Type       int    `json:"tipo"`
	Password   string `json:"senha"`
	Street     string `json:"logradouro"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	PostalCode string `json:"cep"`
	Phone1     string `json:"telefone1"`
	Phone2     string `json:"telefone2"`
	Phone3     string `json:"telefone3"`
	CityID     int64  `json:"cidadeId"`
}

// StateDTO is nested inside CityDTO.
type StateDTO struct {
	Name string `json:"nome"`
}

type CityDTO struct {
	ID    int64    `json:"id"`
	Name  string   `json:"nome"`
	State StateDTO `json:"estado"`
}

// AddressDTO no incluye el cliente dueño para evitar ciclos en el JSON.
type AddressDTO struct {
	ID         int64   `json:"id"`
	Street     string  `json:"logradouro"`
	Number     string  `json:"numero"`
	Complement string  `json:"complemento"`
	District   string  `json:"bairro"`
	PostalCode string  `json:"cep"`
	City       CityDTO `json:"cidade"`
}

// ClientDetailDTO es el agregado completo de GET /clientes/{id}.
// Nunca incluye el hash de la credencial.
type ClientDetailDTO struct {
	ID        int64        `json:"id"`
	Name      string       `json:"nome"`
	Email     string       `json:"email"`
	TaxID     string       `json:"cpfOuCnpj"`
	Type      string       `json:"tipo"`
	Phones    []string     `json:"telefones"`
	Addresses []AddressDTO `json:"enderecos"`
	Roles     []string     `json:"perfis"`
}
