package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the front-page statistics.
type DashboardResponse struct {
	TotalClientes              int64 `json:"total_clientes"`
	TotalPedidos               int64 `json:"total_pedidos"`
	TotalProductos             int64 `json:"total_productos"`
	TotalServicios             int64 `json:"total_servicios"`
	PedidosPendientes          int64 `json:"pedidos_pendientes"`
	PedidosEnProceso           int64 `json:"pedidos_en_proceso"`
	PedidosCompletados         int64 `json:"pedidos_completados"`
	ClientesPresupuestoVencido int64 `json:"clientes_presupuesto_vencido"`

	PedidosRecientes []PedidoResponse `json:"pedidos_recientes"`
}

// ReporteFilter bounds the pedidos report; both dates are inclusive.
type ReporteFilter struct {
	FechaDesde string `form:"fecha_desde" validate:"omitempty,datetime=2006-01-02"`
	FechaHasta string `form:"fecha_hasta" validate:"omitempty,datetime=2006-01-02"`
	// Formato: "json" (default) | "pdf"
	Formato string `form:"formato" validate:"omitempty,oneof=json pdf"`
}

type ReportePedidosResponse struct {
	FechaDesde       string           `json:"fecha_desde"`
	FechaHasta       string           `json:"fecha_hasta"`
	TotalPedidos     int64            `json:"total_pedidos"`
	TotalIngresos    decimal.Decimal  `json:"total_ingresos"`
	PedidosPorEstado map[string]int   `json:"pedidos_por_estado"`
	Pedidos          []PedidoResponse `json:"pedidos"`
}
