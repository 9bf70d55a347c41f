package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=200"`
	Encargado     string          `json:"encargado"      validate:"required,min=2,max=200"`
	Presupuesto   decimal.Decimal `json:"presupuesto"    validate:"min=0"`
	EmailContacto string          `json:"email_contacto" validate:"required,email"`
	// FechaVencimientoPresupuesto in YYYY-MM-DD
	FechaVencimientoPresupuesto string `json:"fecha_vencimiento_presupuesto" validate:"required,datetime=2006-01-02"`
}

type ActualizarClienteRequest struct {
	Nombre                      *string          `json:"nombre"         validate:"omitempty,min=2,max=200"`
	Encargado                   *string          `json:"encargado"      validate:"omitempty,min=2,max=200"`
	Presupuesto                 *decimal.Decimal `json:"presupuesto"`
	EmailContacto               *string          `json:"email_contacto" validate:"omitempty,email"`
	FechaVencimientoPresupuesto *string          `json:"fecha_vencimiento_presupuesto" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ClienteFilter matches by case-insensitive substring over nombre, encargado
// and email_contacto.
type ClienteFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit"          validate:"omitempty,min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                          string          `json:"id"`
	Nombre                      string          `json:"nombre"`
	Encargado                   string          `json:"encargado"`
	Presupuesto                 decimal.Decimal `json:"presupuesto"`
	EmailContacto               string          `json:"email_contacto"`
	FechaVencimientoPresupuesto string          `json:"fecha_vencimiento_presupuesto"`
	PresupuestoVencido          bool            `json:"presupuesto_vencido"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ClienteDetalleResponse enriches a cliente with its order history totals.
type ClienteDetalleResponse struct {
	ClienteResponse
	TotalPedidos        int              `json:"total_pedidos"`
	TotalGastado        decimal.Decimal  `json:"total_gastado"`
	PresupuestoRestante decimal.Decimal  `json:"presupuesto_restante"`
	Pedidos             []PedidoResponse `json:"pedidos"`
}
