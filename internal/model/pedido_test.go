package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotalExacto(t *testing.T) {
	item := ItemProductoPedido{
		Cantidad:       3,
		PrecioUnitario: decimal.RequireFromString("19.99"),
	}
	// 3 × 19.99 must be exactly 59.97, with no float drift.
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")),
		"subtotal = %s", item.Subtotal())
}

func TestPedidoTotal(t *testing.T) {
	t.Run("sin items es cero", func(t *testing.T) {
		p := Pedido{}
		assert.True(t, p.Total().IsZero())
	})

	t.Run("suma productos y servicios", func(t *testing.T) {
		p := Pedido{
			ItemsProductos: []ItemProductoPedido{
				{Cantidad: 2, PrecioUnitario: decimal.RequireFromString("100.50")},
				{Cantidad: 1, PrecioUnitario: decimal.RequireFromString("0.01")},
			},
			ItemsServicios: []ItemServicioPedido{
				{Cantidad: 4, PrecioUnitario: decimal.RequireFromString("25.00")},
			},
		}
		// 201.00 + 0.01 + 100.00
		assert.True(t, p.Total().Equal(decimal.RequireFromString("301.01")),
			"total = %s", p.Total())
	})
}

func TestEstadoPedido(t *testing.T) {
	assert.True(t, EstadoEnProceso.Valido())
	assert.False(t, EstadoPedido("enviado").Valido())
	assert.Equal(t, "En Proceso", EstadoEnProceso.Etiqueta())
}

func TestItemValidar(t *testing.T) {
	item := ItemProductoPedido{Cantidad: 0, PrecioUnitario: decimal.NewFromInt(-1)}
	err := item.Validar()
	assert.Error(t, err)
}
