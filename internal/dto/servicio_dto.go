package dto

import "github.com/shopspring/decimal"

type CrearServicioRequest struct {
	Nombre              string          `json:"nombre"          validate:"required,min=2,max=200"`
	Duracion            int             `json:"duracion"        validate:"required,gt=0"`
	UnidadDuracion      string          `json:"unidad_duracion" validate:"required,oneof=horas dias meses"`
	Descripcion         string          `json:"descripcion"     validate:"required"`
	Precio              decimal.Decimal `json:"precio"          validate:"gt=0"`
	Observaciones       string          `json:"observaciones"`
	EmpresaProveedoraID string          `json:"empresa_proveedora_id" validate:"required,uuid"`
	Activo              *bool           `json:"activo"`
	Tipos               []string        `json:"tipos" validate:"omitempty,dive,required,max=100"`
}

type ActualizarServicioRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=2,max=200"`
	Duracion       *int             `json:"duracion"        validate:"omitempty,gt=0"`
	UnidadDuracion *string          `json:"unidad_duracion" validate:"omitempty,oneof=horas dias meses"`
	Descripcion    *string          `json:"descripcion"`
	Precio         *decimal.Decimal `json:"precio"          validate:"omitempty,gt=0"`
	Observaciones  *string          `json:"observaciones"`
	Activo         *bool            `json:"activo"`
	// Tipos, when present, replaces the full label set.
	Tipos *[]string `json:"tipos" validate:"omitempty,dive,required,max=100"`
}

// ServicioFilter matches by case-insensitive substring over nombre and
// descripcion.
type ServicioFilter struct {
	Search string `form:"search"`
	// Activo: "false" = inactivos, "all" = todos, anything else = activos
	Activo string `form:"activo"`
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit"          validate:"omitempty,min=1,max=100"`
}

type ServicioResponse struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	Duracion            int             `json:"duracion"`
	UnidadDuracion      string          `json:"unidad_duracion"`
	DuracionCompleta    string          `json:"duracion_completa"`
	Descripcion         string          `json:"descripcion"`
	Precio              decimal.Decimal `json:"precio"`
	Observaciones       string          `json:"observaciones"`
	EmpresaProveedoraID string          `json:"empresa_proveedora_id"`
	Activo              bool            `json:"activo"`
	Tipos               []string        `json:"tipos"`
}

type ServicioListResponse struct {
	Data  []ServicioResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
