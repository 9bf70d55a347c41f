package infra

// pdf.go — order report generation using go-pdf/fpdf.
// Produces an A4 report with the date range, one row per pedido (client,
// date, status, total) and a bold grand total with the per-status breakdown.

import (
	"io"
	"strconv"

	"github.com/FroiVa/Sipp/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReportePedidosPDF renders the pedidos report for [desde, hasta] into w.
// pedidos must come preloaded with Cliente and both item collections so that
// Total() is exact.
func ReportePedidosPDF(w io.Writer, desde, hasta string, pedidos []model.Pedido, totalIngresos decimal.Decimal, porEstado map[model.EstadoPedido]int) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Pedidos", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, desde+"  -  "+hasta, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.38 // cliente
	col2 := contentW * 0.22 // fecha
	col3 := contentW * 0.20 // estado
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Cliente", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Fecha", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Estado", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range pedidos {
		cliente := ""
		if p.Cliente != nil {
			cliente = p.Cliente.Nombre
		}
		pdf.CellFormat(col1, 6, cliente, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, p.FechaPedido.Format("02/01/2006"), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, p.Estado.Etiqueta(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$ "+p.Total().StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "Total de ingresos", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "$ "+totalIngresos.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, estado := range model.EstadosPedido {
		n, ok := porEstado[estado]
		if !ok {
			continue
		}
		pdf.CellFormat(contentW, 5, estado.Etiqueta()+": "+strconv.Itoa(n), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
