package handler

import (
	"net/http"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear producto hardware
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoRequest true "Datos del producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar productos
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Tipo de producto"
// @Param categoria query string false "UUID de la categoría"
// @Param empresa query string false "UUID de la empresa proveedora"
// @Param search query string false "Subcadena sobre nombre o características"
// @Param activo query string false "false | all (default: solo activos)"
// @Success 200 {object} dto.ProductoListResponse
// @Router /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Tipos returns the product type catalog with display labels.
func (h *ProductosHandler) Tipos(c *gin.Context) {
	tipos := make([]gin.H, len(model.TiposProducto))
	for i, t := range model.TiposProducto {
		tipos[i] = gin.H{"valor": string(t), "etiqueta": t.Etiqueta()}
	}
	c.JSON(http.StatusOK, tipos)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
