package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dashboard godoc
// @Summary Estadísticas del panel principal
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportePedidos godoc
// @Summary Reporte de pedidos por rango de fechas
// @Tags reportes
// @Produce json
// @Produce application/pdf
// @Security BearerAuth
// @Param fecha_desde query string false "YYYY-MM-DD inclusive"
// @Param fecha_hasta query string false "YYYY-MM-DD inclusive"
// @Param formato query string false "json (default) | pdf"
// @Success 200 {object} dto.ReportePedidosResponse
// @Router /v1/reportes/pedidos [get]
func (h *ReportesHandler) ReportePedidos(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQuery(c, &filter) {
		return
	}

	if filter.Formato == "pdf" {
		var buf bytes.Buffer
		if err := h.svc.ReportePedidosPDF(c.Request.Context(), filter, &buf); err != nil {
			respondError(c, err)
			return
		}
		nombre := fmt.Sprintf("reporte_pedidos_%s.pdf", time.Now().Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	resp, err := h.svc.ReportePedidos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
