// Package seed carga datos de demostración: estados, ciudades, catálogo,
// un ADMIN, un cliente y un pedido que lo referencia.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	store "github.com/dropDatabas3/cursomvc/internal/store"
)

// Options configura las credenciales sembradas.
type Options struct {
	AdminEmail     string
	AdminPassword  string
	ClientEmail    string
	ClientPassword string
}

// Defaults son las credenciales de desarrollo.
var Defaults = Options{
	AdminEmail:     "admin@cursomvc.com",
	AdminPassword:  "admin123",
	ClientEmail:    "maria@gmail.com",
	ClientPassword: "123",
}

// Result resume lo creado.
type Result struct {
	AdminID    int64
	ClientID   int64
	OrderID    int64
	Categories int
	Products   int
}

var catalog = []struct {
	category string
	products []repository.Product
}{
	{"Informática", []repository.Product{{Name: "Computador", Price: 2000}, {Name: "Impressora", Price: 800}, {Name: "Mouse", Price: 80}}},
	{"Escritório", []repository.Product{{Name: "Mesa de escritório", Price: 300}}},
	{"Cama mesa e banho", []repository.Product{{Name: "Toalha", Price: 50}, {Name: "Colcha", Price: 200}}},
	{"Eletrônicos", []repository.Product{{Name: "TV true color", Price: 1200}}},
	{"Jardinagem", []repository.Product{{Name: "Roçadeira", Price: 800}}},
	{"Decoração", []repository.Product{{Name: "Abajour", Price: 100}, {Name: "Pendente", Price: 180}}},
	{"Perfumaria", []repository.Product{{Name: "Shampoo", Price: 90}}},
}

// Run siembra el store. No es idempotente: correrlo dos veces falla por
// email duplicado.
func Run(ctx context.Context, dal store.DataAccessLayer, hasher password.Hasher, opts Options) (*Result, error) {
	log := logger.FromWithFields(ctx, logger.Component("seed"))
	res := &Result{}

	// ─── Estados y ciudades ───
	mg := &repository.State{Name: "Minas Gerais"}
	sp := &repository.State{Name: "São Paulo"}
	for _, s := range []*repository.State{mg, sp} {
		if err := dal.Cities().CreateState(ctx, s); err != nil {
			return nil, fmt.Errorf("seed state %s: %w", s.Name, err)
		}
	}
	uberlandia := &repository.City{Name: "Uberlândia", State: repository.State{ID: mg.ID}}
	saoPaulo := &repository.City{Name: "São Paulo", State: repository.State{ID: sp.ID}}
	campinas := &repository.City{Name: "Campinas", State: repository.State{ID: sp.ID}}
	for _, c := range []*repository.City{uberlandia, saoPaulo, campinas} {
		if err := dal.Cities().CreateCity(ctx, c); err != nil {
			return nil, fmt.Errorf("seed city %s: %w", c.Name, err)
		}
	}

	// ─── Catálogo ───
	// la impresora también es de escritório
	var printer *repository.Product
	var officeID int64
	for _, entry := range catalog {
		cat := &repository.Category{Name: entry.category}
		if err := dal.Categories().Create(ctx, cat); err != nil {
			return nil, fmt.Errorf("seed category %s: %w", cat.Name, err)
		}
		res.Categories++
		if cat.Name == "Escritório" {
			officeID = cat.ID
		}
		for i := range entry.products {
			p := entry.products[i]
			p.CategoryIDs = []int64{cat.ID}
			if p.Name == "Impressora" {
				printer = &p
				continue
			}
			if err := dal.Products().Create(ctx, &p); err != nil {
				return nil, fmt.Errorf("seed product %s: %w", p.Name, err)
			}
			res.Products++
		}
	}
	if printer != nil {
		printer.CategoryIDs = append(printer.CategoryIDs, officeID)
		if err := dal.Products().Create(ctx, printer); err != nil {
			return nil, fmt.Errorf("seed product %s: %w", printer.Name, err)
		}
		res.Products++
	}

	// ─── Cuentas ───
	admin, err := newClient(hasher, "Ana Costa", opts.AdminEmail, "52998224725", opts.AdminPassword,
		[]types.Role{types.RoleClient, types.RoleAdmin})
	if err != nil {
		return nil, err
	}
	admin.AddPhone("93883321")
	admin.AddPhone("34252625")
	admin.AddAddress(&repository.Address{Street: "Avenida Floriano", Number: "2106", District: "Centro", PostalCode: "281777012", City: repository.CityRef{ID: saoPaulo.ID}})
	if err := dal.Clients().Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	res.AdminID = admin.ID

	maria, err := newClient(hasher, "Maria Silva", opts.ClientEmail, "11144477735", opts.ClientPassword,
		[]types.Role{types.RoleClient})
	if err != nil {
		return nil, err
	}
	maria.AddPhone("27363323")
	maria.AddPhone("93838393")
	maria.AddAddress(&repository.Address{Street: "Rua Flores", Number: "300", Complement: "Apto 303", District: "Jardim", PostalCode: "38220834", City: repository.CityRef{ID: uberlandia.ID}})
	maria.AddAddress(&repository.Address{Street: "Avenida Matos", Number: "105", Complement: "Sala 800", District: "Centro", PostalCode: "38777012", City: repository.CityRef{ID: campinas.ID}})
	if err := dal.Clients().Create(ctx, maria); err != nil {
		return nil, fmt.Errorf("seed client: %w", err)
	}
	res.ClientID = maria.ID

	// ─── Pedido ───
	order := &repository.Order{
		Instant:           time.Date(2017, 9, 30, 10, 32, 0, 0, time.UTC),
		ClientID:          maria.ID,
		DeliveryAddressID: maria.Addresses[0].ID,
	}
	if err := dal.Orders().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("seed order: %w", err)
	}
	res.OrderID = order.ID

	log.Info("seed done",
		logger.Int("categories", res.Categories),
		logger.Int("products", res.Products),
		logger.EntityID(res.ClientID),
	)
	return res, nil
}

func newClient(hasher password.Hasher, name, email, taxID, plain string, roles []types.Role) (*repository.Client, error) {
	hash, err := hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("seed hash %s: %w", email, err)
	}
	return &repository.Client{
		Name:         name,
		Email:        email,
		TaxID:        taxID,
		Type:         types.ClientTypeIndividual,
		PasswordHash: hash,
		Roles:        roles,
	}, nil
}
