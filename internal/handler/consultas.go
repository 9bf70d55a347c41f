package handler

import (
	"net/http"

	"github.com/FroiVa/Sipp/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultasHandler serves the lookup endpoints behind the dependent
// selection lists (catalog per supplier, current prices).
type ConsultasHandler struct{ svc service.ConsultaService }

func NewConsultasHandler(svc service.ConsultaService) *ConsultasHandler {
	return &ConsultasHandler{svc: svc}
}

// ProductosDeEmpresa godoc
// @Summary Productos activos de una empresa
// @Tags consultas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la empresa"
// @Success 200 {array} dto.ProductoEmpresaResponse
// @Router /v1/empresas/{id}/productos [get]
func (h *ConsultasHandler) ProductosDeEmpresa(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ProductosDeEmpresa(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsultasHandler) ServiciosDeEmpresa(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ServiciosDeEmpresa(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsultasHandler) PrecioProducto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PrecioProducto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsultasHandler) PrecioServicio(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PrecioServicio(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
