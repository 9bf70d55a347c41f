package handler

import (
	"net/http"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear pedido
// @Description Crea un pedido con sus líneas de productos y servicios; los
// precios omitidos se copian del catálogo al momento de guardar.
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPedidoRequest true "Detalle del pedido"
// @Success 201 {object} dto.PedidoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
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
// @Summary Listar pedidos
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Estado del pedido"
// @Param cliente query string false "UUID del cliente"
// @Param fecha_desde query string false "YYYY-MM-DD inclusive"
// @Param fecha_hasta query string false "YYYY-MM-DD inclusive"
// @Success 200 {object} dto.PedidoListResponse
// @Router /v1/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
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

// Estados returns the order status catalog with display labels.
func (h *PedidosHandler) Estados(c *gin.Context) {
	estados := make([]gin.H, len(model.EstadosPedido))
	for i, e := range model.EstadosPedido {
		estados[i] = gin.H{"valor": string(e), "etiqueta": e.Etiqueta()}
	}
	c.JSON(http.StatusOK, estados)
}

func (h *PedidosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPedidoRequest
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

func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) AgregarItemProducto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ItemProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItemProducto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) AgregarItemServicio(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ItemServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItemServicio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) EliminarItemProducto(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.EliminarItemProducto(c.Request.Context(), pedidoID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PedidosHandler) EliminarItemServicio(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.EliminarItemServicio(c.Request.Context(), pedidoID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PedidosHandler) Eliminar(c *gin.Context) {
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
