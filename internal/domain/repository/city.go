package repository

import "context"

// State es una unidad federativa.
type State struct {
	ID   int64
	Name string
}

// City es una ciudad de un estado.
type City struct {
	ID    int64
	Name  string
	State State
}

// CityRef es una referencia débil a City: sólo el ID viaja con la dirección.
// Name y StateName se completan al leer desde el store; al crear se ignoran.
type CityRef struct {
	ID        int64
	Name      string
	StateName string
}

// CityRepository define operaciones sobre ciudades y estados.
type CityRepository interface {
	CreateState(ctx context.Context, s *State) error
	CreateCity(ctx context.Context, c *City) error

	// FindByID retorna FailureNotFound si no existe.
	FindByID(ctx context.Context, id int64) (*City, error)
}
