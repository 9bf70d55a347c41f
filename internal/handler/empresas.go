package handler

import (
	"net/http"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/service"

	"github.com/gin-gonic/gin"
)

type EmpresasHandler struct{ svc service.EmpresaService }

func NewEmpresasHandler(svc service.EmpresaService) *EmpresasHandler {
	return &EmpresasHandler{svc: svc}
}

func (h *EmpresasHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpresaRequest
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

func (h *EmpresasHandler) Listar(c *gin.Context) {
	var filter dto.EmpresaFilter
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

// ObtenerDetalle returns the supplier with its active catalog.
func (h *EmpresasHandler) ObtenerDetalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerDetalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpresasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEmpresaRequest
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

func (h *EmpresasHandler) Eliminar(c *gin.Context) {
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
