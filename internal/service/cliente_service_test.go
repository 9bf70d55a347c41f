package service

import (
	"context"
	"testing"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClienteService() (ClienteService, *stubClienteRepo) {
	repo := newStubClienteRepo()
	cfg := &config.Config{PageSizeDefault: 15, PageSizeClientes: 15}
	return NewClienteService(repo, cfg), repo
}

func TestCrearCliente(t *testing.T) {
	svc, _ := newClienteService()

	resp, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:                      "Acme SA",
		Encargado:                   "Laura Pérez",
		Presupuesto:                 decimal.RequireFromString("5000.00"),
		EmailContacto:               "compras@acme.example",
		FechaVencimientoPresupuesto: "2026-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", resp.FechaVencimientoPresupuesto)
	assert.False(t, resp.PresupuestoVencido)
}

func TestCrearClienteFechaInvalida(t *testing.T) {
	svc, _ := newClienteService()

	_, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:                      "Acme SA",
		Encargado:                   "Laura",
		EmailContacto:               "a@b.example",
		FechaVencimientoPresupuesto: "31/12/2026",
	})
	require.Error(t, err)
	var ve *apierror.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestObtenerDetalleTotales(t *testing.T) {
	svc, repo := newClienteService()
	ctx := context.Background()

	creado, err := svc.Crear(ctx, dto.CrearClienteRequest{
		Nombre:                      "Acme SA",
		Encargado:                   "Laura",
		Presupuesto:                 decimal.RequireFromString("1000.00"),
		EmailContacto:               "a@b.example",
		FechaVencimientoPresupuesto: "2026-12-31",
	})
	require.NoError(t, err)

	id := mustUUID(t, creado.ID)
	cliente := repo.clientes[id]
	cliente.Pedidos = []model.Pedido{
		{
			ClienteID: id,
			Estado:    model.EstadoCompletado,
			ItemsProductos: []model.ItemProductoPedido{
				{Cantidad: 2, PrecioUnitario: decimal.RequireFromString("150.00")},
			},
		},
		{
			ClienteID: id,
			Estado:    model.EstadoPendiente,
			ItemsServicios: []model.ItemServicioPedido{
				{Cantidad: 1, PrecioUnitario: decimal.RequireFromString("99.50")},
			},
		},
	}

	detalle, err := svc.ObtenerDetalle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, detalle.TotalPedidos)
	assert.True(t, detalle.TotalGastado.Equal(decimal.RequireFromString("399.50")),
		"gastado = %s", detalle.TotalGastado)
	assert.True(t, detalle.PresupuestoRestante.Equal(decimal.RequireFromString("600.50")),
		"restante = %s", detalle.PresupuestoRestante)
}
