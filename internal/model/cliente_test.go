package model

import (
	"testing"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresupuestoVencido(t *testing.T) {
	venc := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	c := Cliente{FechaVencimientoPresupuesto: venc}

	t.Run("dia anterior", func(t *testing.T) {
		hoy := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
		assert.False(t, c.PresupuestoVencido(hoy))
	})

	t.Run("mismo dia sigue vigente", func(t *testing.T) {
		// Even at the end of the expiry day the budget is still valid.
		hoy := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
		assert.False(t, c.PresupuestoVencido(hoy))
	})

	t.Run("dia siguiente", func(t *testing.T) {
		hoy := time.Date(2026, 3, 16, 0, 0, 1, 0, time.UTC)
		assert.True(t, c.PresupuestoVencido(hoy))
	})
}

func TestClienteValidar(t *testing.T) {
	t.Run("valido", func(t *testing.T) {
		c := Cliente{
			Nombre:                      "Acme SA",
			Encargado:                   "Laura Pérez",
			Presupuesto:                 decimal.NewFromInt(5000),
			EmailContacto:               "compras@acme.example",
			FechaVencimientoPresupuesto: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		}
		assert.NoError(t, c.Validar())
	})

	t.Run("acumula todos los errores", func(t *testing.T) {
		c := Cliente{Presupuesto: decimal.NewFromInt(-1)}
		err := c.Validar()
		require.Error(t, err)

		ve, ok := err.(*apierror.ValidationError)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "nombre")
		assert.Contains(t, ve.Fields, "encargado")
		assert.Contains(t, ve.Fields, "presupuesto")
		assert.Contains(t, ve.Fields, "email_contacto")
		assert.Contains(t, ve.Fields, "fecha_vencimiento_presupuesto")
	})
}
