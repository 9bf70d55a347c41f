package dto

type CrearEmpresaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=200"`
	Encargado string `json:"encargado" validate:"required,min=2,max=200"`
}

type ActualizarEmpresaRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=200"`
	Encargado *string `json:"encargado" validate:"omitempty,min=2,max=200"`
}

type EmpresaFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1" validate:"min=1"`
	Limit  int    `form:"limit"          validate:"omitempty,min=1,max=100"`
}

type EmpresaResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Encargado string `json:"encargado"`
}

type EmpresaListResponse struct {
	Data  []EmpresaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// EmpresaDetalleResponse includes the supplier's active catalog.
type EmpresaDetalleResponse struct {
	EmpresaResponse
	Productos      []ProductoResponse `json:"productos"`
	Servicios      []ServicioResponse `json:"servicios"`
	TotalProductos int                `json:"total_productos"`
	TotalServicios int                `json:"total_servicios"`
}
