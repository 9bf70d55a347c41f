package model

import (
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cliente represents a customer with an assigned spending budget and its
// expiry date.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre        string    `gorm:"index;not null"`
	Encargado     string    `gorm:"not null"`
	Presupuesto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EmailContacto string          `gorm:"not null"`
	// FechaVencimientoPresupuesto is stored as a plain date; the time part
	// is always midnight UTC.
	FechaVencimientoPresupuesto time.Time `gorm:"type:date;not null"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time

	Pedidos []Pedido `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PresupuestoVencido reports whether the budget expired before hoy.
// Only the date parts are compared: on the expiry day itself the budget
// is still valid.
func (c *Cliente) PresupuestoVencido(hoy time.Time) bool {
	return soloFecha(hoy).After(soloFecha(c.FechaVencimientoPresupuesto))
}

// Validar checks the stored-field invariants and collects every failure.
func (c *Cliente) Validar() error {
	ve := apierror.NewValidation(nil)
	if c.Nombre == "" {
		ve.Add("nombre", "El nombre del cliente es obligatorio")
	}
	if c.Encargado == "" {
		ve.Add("encargado", "La persona encargada es obligatoria")
	}
	if c.Presupuesto.IsNegative() {
		ve.Add("presupuesto", "El presupuesto no puede ser negativo")
	}
	if c.EmailContacto == "" {
		ve.Add("email_contacto", "El email de contacto es obligatorio")
	}
	if c.FechaVencimientoPresupuesto.IsZero() {
		ve.Add("fecha_vencimiento_presupuesto", "La fecha de vencimiento es obligatoria")
	}
	return ve.OrNil()
}

// soloFecha truncates a timestamp to its date in UTC.
func soloFecha(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
