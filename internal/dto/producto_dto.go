package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CaracteristicaRequest struct {
	Attr  string `json:"attr"  validate:"required,max=100"`
	Valor string `json:"valor" validate:"required,max=200"`
}

// CrearProductoRequest carries the input-tier rules: price strictly positive
// at the form level even though the stored column only requires ≥ 0.
type CrearProductoRequest struct {
	Nombre              string                  `json:"nombre"             validate:"required,min=2,max=200"`
	Tipo                string                  `json:"tipo"               validate:"required"`
	TipoPersonalizado   string                  `json:"tipo_personalizado" validate:"max=100"`
	Precio              decimal.Decimal         `json:"precio"             validate:"gt=0"`
	EmpresaProveedoraID *string                 `json:"empresa_proveedora_id" validate:"omitempty,uuid"`
	CategoriaID         *string                 `json:"categoria_id"          validate:"omitempty,uuid"`
	Activo              *bool                   `json:"activo"`
	Caracteristicas     []CaracteristicaRequest `json:"caracteristicas" validate:"omitempty,dive"`
}

type ActualizarProductoRequest struct {
	Nombre              *string          `json:"nombre"             validate:"omitempty,min=2,max=200"`
	Tipo                *string          `json:"tipo"`
	TipoPersonalizado   *string          `json:"tipo_personalizado" validate:"omitempty,max=100"`
	Precio              *decimal.Decimal `json:"precio"             validate:"omitempty,gt=0"`
	EmpresaProveedoraID *string          `json:"empresa_proveedora_id" validate:"omitempty,uuid"`
	CategoriaID         *string          `json:"categoria_id"          validate:"omitempty,uuid"`
	Activo              *bool            `json:"activo"`
	// Caracteristicas, when present, replaces the full set.
	Caracteristicas *[]CaracteristicaRequest `json:"caracteristicas" validate:"omitempty,dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter combines exact matches (tipo, categoria, empresa) with a
// case-insensitive substring search over nombre, tipo_personalizado and the
// caracteristicas attr/valor columns (joined, de-duplicated).
type ProductoFilter struct {
	Tipo        string `form:"tipo"`
	CategoriaID string `form:"categoria"  validate:"omitempty,uuid"`
	EmpresaID   string `form:"empresa"    validate:"omitempty,uuid"`
	Search      string `form:"search"`
	// Activo: "false" = inactivos, "all" = todos, anything else = activos
	Activo string `form:"activo"`
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit"          validate:"omitempty,min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaracteristicaResponse struct {
	Attr  string `json:"attr"`
	Valor string `json:"valor"`
}

type ProductoResponse struct {
	ID                  string                   `json:"id"`
	Nombre              string                   `json:"nombre"`
	Tipo                string                   `json:"tipo"`
	TipoPersonalizado   string                   `json:"tipo_personalizado"`
	TipoSeleccion       string                   `json:"tipo_seleccion"`
	Precio              decimal.Decimal          `json:"precio"`
	EmpresaProveedoraID *string                  `json:"empresa_proveedora_id"`
	CategoriaID         *string                  `json:"categoria_id"`
	Activo              bool                     `json:"activo"`
	Caracteristicas     []CaracteristicaResponse `json:"caracteristicas"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
