package service

import (
	"context"
	"io"
	"time"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/infra"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService aggregates the dashboard counters and the pedidos report.
type ReporteService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ReportePedidos(ctx context.Context, filter dto.ReporteFilter) (*dto.ReportePedidosResponse, error)
	// ReportePedidosPDF renders the same report as a PDF document.
	ReportePedidosPDF(ctx context.Context, filter dto.ReporteFilter, w io.Writer) error
}

type reporteService struct {
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	servicioRepo repository.ServicioRepository
	pedidoRepo   repository.PedidoRepository
}

func NewReporteService(
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	servicioRepo repository.ServicioRepository,
	pedidoRepo repository.PedidoRepository,
) ReporteService {
	return &reporteService{
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		servicioRepo: servicioRepo,
		pedidoRepo:   pedidoRepo,
	}
}

func (s *reporteService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalClientes, err := s.clienteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPedidos, err := s.pedidoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProductos, err := s.productoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalServicios, err := s.servicioRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	porEstado, err := s.pedidoRepo.CountPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	vencidos, err := s.clienteRepo.CountPresupuestoVencido(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	recientes, err := s.pedidoRepo.Recientes(ctx, 5)
	if err != nil {
		return nil, err
	}

	pedidosRecientes := make([]dto.PedidoResponse, len(recientes))
	for i := range recientes {
		pedidosRecientes[i] = pedidoToResponse(&recientes[i])
	}

	return &dto.DashboardResponse{
		TotalClientes:              totalClientes,
		TotalPedidos:               totalPedidos,
		TotalProductos:             totalProductos,
		TotalServicios:             totalServicios,
		PedidosPendientes:          porEstado[model.EstadoPendiente],
		PedidosEnProceso:           porEstado[model.EstadoEnProceso],
		PedidosCompletados:         porEstado[model.EstadoCompletado],
		ClientesPresupuestoVencido: vencidos,
		PedidosRecientes:           pedidosRecientes,
	}, nil
}

func (s *reporteService) ReportePedidos(ctx context.Context, filter dto.ReporteFilter) (*dto.ReportePedidosResponse, error) {
	pedidos, totalIngresos, porEstado, err := s.datosReporte(ctx, filter)
	if err != nil {
		return nil, err
	}

	porEstadoStr := make(map[string]int, len(porEstado))
	for estado, n := range porEstado {
		porEstadoStr[string(estado)] = n
	}
	data := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		data[i] = pedidoToResponse(&pedidos[i])
	}

	return &dto.ReportePedidosResponse{
		FechaDesde:       filter.FechaDesde,
		FechaHasta:       filter.FechaHasta,
		TotalPedidos:     int64(len(pedidos)),
		TotalIngresos:    totalIngresos,
		PedidosPorEstado: porEstadoStr,
		Pedidos:          data,
	}, nil
}

func (s *reporteService) ReportePedidosPDF(ctx context.Context, filter dto.ReporteFilter, w io.Writer) error {
	pedidos, totalIngresos, porEstado, err := s.datosReporte(ctx, filter)
	if err != nil {
		return err
	}
	return infra.ReportePedidosPDF(w, filter.FechaDesde, filter.FechaHasta, pedidos, totalIngresos, porEstado)
}

func (s *reporteService) datosReporte(ctx context.Context, filter dto.ReporteFilter) ([]model.Pedido, decimal.Decimal, map[model.EstadoPedido]int, error) {
	pedidos, err := s.pedidoRepo.FindByRange(ctx, filter.FechaDesde, filter.FechaHasta)
	if err != nil {
		return nil, decimal.Zero, nil, err
	}

	totalIngresos := decimal.Zero
	porEstado := make(map[model.EstadoPedido]int)
	for i := range pedidos {
		totalIngresos = totalIngresos.Add(pedidos[i].Total())
		porEstado[pedidos[i].Estado]++
	}
	return pedidos, totalIngresos, porEstado, nil
}
