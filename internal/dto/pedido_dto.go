package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemProductoRequest adds one product line. PrecioUnitario is optional: when
// absent the product's current price is snapshotted at save time.
type ItemProductoRequest struct {
	ProductoID     string           `json:"producto_id" validate:"required,uuid"`
	Cantidad       int              `json:"cantidad"    validate:"required,min=1"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type ItemServicioRequest struct {
	ServicioID     string           `json:"servicio_id" validate:"required,uuid"`
	Cantidad       int              `json:"cantidad"    validate:"required,min=1"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type CrearPedidoRequest struct {
	ClienteID      string                `json:"cliente_id" validate:"required,uuid"`
	Estado         string                `json:"estado"`
	Observaciones  string                `json:"observaciones"`
	ItemsProductos []ItemProductoRequest `json:"items_productos" validate:"omitempty,dive"`
	ItemsServicios []ItemServicioRequest `json:"items_servicios" validate:"omitempty,dive"`
}

type ActualizarPedidoRequest struct {
	Estado        *string `json:"estado"`
	Observaciones *string `json:"observaciones"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// PedidoFilter: exact estado and cliente, inclusive date range on
// fecha_pedido (dates in YYYY-MM-DD).
type PedidoFilter struct {
	Estado     string `form:"estado"`
	ClienteID  string `form:"cliente"     validate:"omitempty,uuid"`
	FechaDesde string `form:"fecha_desde" validate:"omitempty,datetime=2006-01-02"`
	FechaHasta string `form:"fecha_hasta" validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit"          validate:"omitempty,min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemProductoResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ItemServicioResponse struct {
	ID             string          `json:"id"`
	ServicioID     string          `json:"servicio_id"`
	Servicio       string          `json:"servicio"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID             string                 `json:"id"`
	ClienteID      string                 `json:"cliente_id"`
	Cliente        string                 `json:"cliente"`
	FechaPedido    string                 `json:"fecha_pedido"`
	Estado         string                 `json:"estado"`
	EstadoEtiqueta string                 `json:"estado_etiqueta"`
	Observaciones  string                 `json:"observaciones"`
	ItemsProductos []ItemProductoResponse `json:"items_productos"`
	ItemsServicios []ItemServicioResponse `json:"items_servicios"`
	Total          decimal.Decimal        `json:"total"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
