package dto

import "github.com/shopspring/decimal"

// ProductoEmpresaResponse is one row of the "active products of a supplier"
// lookup used to populate dependent selection lists.
type ProductoEmpresaResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	TipoFinal string          `json:"tipo_final"`
}

// ServicioEmpresaResponse is the service counterpart, with the duration
// summary instead of the type.
type ServicioEmpresaResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	DuracionCompleta string          `json:"duracion_completa"`
}

// PrecioResponse is returned by the price-lookup endpoints that prefill a
// line item's snapshot before it is persisted.
type PrecioResponse struct {
	Precio decimal.Decimal `json:"precio"`
}
