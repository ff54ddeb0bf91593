package repository

import (
	"context"
	"time"
)

// Order es un pedido. En este servicio sólo existe como referencia viva
// hacia un cliente y una dirección de entrega.
type Order struct {
	ID                int64
	Instant           time.Time
	ClientID          int64
	DeliveryAddressID int64
}

// OrderRepository define operaciones sobre pedidos.
type OrderRepository interface {
	// Create retorna FailureInvalidReference si el cliente o la dirección no existen.
	Create(ctx context.Context, o *Order) error

	// FindByID retorna FailureNotFound si no existe.
	FindByID(ctx context.Context, id int64) (*Order, error)
}
