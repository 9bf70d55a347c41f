package service

import (
	"context"
	"testing"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecioProductoSoloActivos(t *testing.T) {
	ctx := context.Background()
	productoRepo := newStubProductoRepo()

	activo := &model.ProductoHardware{
		Nombre: "RAM 16GB", Tipo: model.TipoRAM,
		Precio: decimal.RequireFromString("89.90"), Activo: true,
	}
	inactivo := &model.ProductoHardware{
		Nombre: "RAM 8GB descatalogada", Tipo: model.TipoRAM,
		Precio: decimal.NewFromInt(150), Activo: false,
	}
	require.NoError(t, productoRepo.Create(ctx, activo))
	require.NoError(t, productoRepo.Create(ctx, inactivo))

	svc := NewConsultaService(nil, productoRepo, newStubServicioRepo(), nil)

	resp, err := svc.PrecioProducto(ctx, activo.ID)
	require.NoError(t, err)
	assert.True(t, resp.Precio.Equal(decimal.RequireFromString("89.90")))

	// An inactive product must not prefill a snapshot.
	_, err = svc.PrecioProducto(ctx, inactivo.ID)
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPrecioServicioSoloActivos(t *testing.T) {
	ctx := context.Background()
	servicioRepo := newStubServicioRepo()

	inactivo := &model.ServicioInformatico{
		Nombre: "Soporte legado", Duracion: 1, UnidadDuracion: model.DuracionMeses,
		Descripcion: "Contrato retirado", Precio: decimal.NewFromInt(200),
		Activo: false,
	}
	require.NoError(t, servicioRepo.Create(ctx, inactivo))

	svc := NewConsultaService(nil, newStubProductoRepo(), servicioRepo, nil)

	_, err := svc.PrecioServicio(ctx, inactivo.ID)
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
}
