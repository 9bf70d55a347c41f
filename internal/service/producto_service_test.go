package service

import (
	"context"
	"testing"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func newProductoService() (ProductoService, *stubProductoRepo) {
	repo := newStubProductoRepo()
	cfg := &config.Config{PageSizeDefault: 15, PageSizeProductos: 12}
	return NewProductoService(repo, nil, cfg), repo
}

func TestCrearProductoNormaliza(t *testing.T) {
	svc, _ := newProductoService()

	// A catalog type silently drops any custom type text.
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:            "ThinkPad X1",
		Tipo:              "laptop",
		TipoPersonalizado: "Ultrabook",
		Precio:            decimal.RequireFromString("1200.00"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.TipoPersonalizado)
	assert.Equal(t, "Laptop", resp.TipoSeleccion)
}

func TestCrearProductoOtrosSinTexto(t *testing.T) {
	svc, _ := newProductoService()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Adaptador",
		Tipo:   "otros",
		Precio: decimal.RequireFromString("9.99"),
	})
	require.Error(t, err)
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "tipo_personalizado")
}

func TestCrearProductoOtrosConTexto(t *testing.T) {
	svc, _ := newProductoService()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:            "Nodo mesh",
		Tipo:              "otros",
		TipoPersonalizado: "Router Mesh",
		Precio:            decimal.RequireFromString("85.00"),
		Caracteristicas: []dto.CaracteristicaRequest{
			{Attr: "banda", Valor: "tri-band"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Router Mesh", resp.TipoSeleccion)
	require.Len(t, resp.Caracteristicas, 1)
	assert.Equal(t, "tri-band", resp.Caracteristicas[0].Valor)
}

func TestActualizarProductoCambioDeTipo(t *testing.T) {
	svc, _ := newProductoService()
	ctx := context.Background()

	creado, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre:            "Nodo mesh",
		Tipo:              "otros",
		TipoPersonalizado: "Router Mesh",
		Precio:            decimal.RequireFromString("85.00"),
	})
	require.NoError(t, err)

	// Switching to a catalog type clears the stored custom text.
	id := mustUUID(t, creado.ID)
	tipo := "switch"
	resp, err := svc.Actualizar(ctx, id, dto.ActualizarProductoRequest{Tipo: &tipo})
	require.NoError(t, err)
	assert.Empty(t, resp.TipoPersonalizado)
	assert.Equal(t, "Switch", resp.TipoSeleccion)
}

func TestListarProductosTipoInvalido(t *testing.T) {
	svc, _ := newProductoService()

	_, err := svc.Listar(context.Background(), dto.ProductoFilter{Tipo: "gadget", Page: 1})
	require.Error(t, err)
	var ve *apierror.ValidationError
	assert.ErrorAs(t, err, &ve)
}
