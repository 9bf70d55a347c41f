package model

import (
	"testing"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipoSeleccion(t *testing.T) {
	t.Run("tipo de catalogo usa la etiqueta", func(t *testing.T) {
		p := ProductoHardware{Tipo: TipoDiscoDuro}
		assert.Equal(t, "Disco Duro", p.TipoSeleccion())
	})

	t.Run("otros con texto usa el texto", func(t *testing.T) {
		p := ProductoHardware{Tipo: TipoOtros, TipoPersonalizado: "Router Mesh"}
		assert.Equal(t, "Router Mesh", p.TipoSeleccion())
	})

	t.Run("otros sin texto cae en la etiqueta", func(t *testing.T) {
		p := ProductoHardware{Tipo: TipoOtros}
		assert.Equal(t, "Otros", p.TipoSeleccion())
	})
}

func TestNormalizar(t *testing.T) {
	t.Run("tipo conocido limpia el texto personalizado", func(t *testing.T) {
		p := ProductoHardware{Tipo: TipoLaptop, TipoPersonalizado: "Ultrabook"}
		p.Normalizar()
		assert.Empty(t, p.TipoPersonalizado)
	})

	t.Run("otros conserva el texto", func(t *testing.T) {
		p := ProductoHardware{Tipo: TipoOtros, TipoPersonalizado: "Router Mesh"}
		p.Normalizar()
		assert.Equal(t, "Router Mesh", p.TipoPersonalizado)
	})
}

func TestProductoValidar(t *testing.T) {
	t.Run("otros exige texto personalizado", func(t *testing.T) {
		p := ProductoHardware{
			Nombre: "Misterioso",
			Tipo:   TipoOtros,
			Precio: decimal.NewFromInt(10),
		}
		err := p.Validar()
		require.Error(t, err)
		ve := err.(*apierror.ValidationError)
		assert.Contains(t, ve.Fields, "tipo_personalizado")
	})

	t.Run("precio negativo rechazado, cero permitido", func(t *testing.T) {
		p := ProductoHardware{Nombre: "Mouse", Tipo: TipoMouse, Precio: decimal.NewFromInt(-5)}
		require.Error(t, p.Validar())

		p.Precio = decimal.Zero
		assert.NoError(t, p.Validar())
	})

	t.Run("tipo desconocido", func(t *testing.T) {
		p := ProductoHardware{Nombre: "X", Tipo: TipoProducto("gadget"), Precio: decimal.NewFromInt(1)}
		err := p.Validar()
		require.Error(t, err)
		ve := err.(*apierror.ValidationError)
		assert.Contains(t, ve.Fields, "tipo")
	})
}
