package service

import (
	"context"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClienteService defines the business logic contract for clients.
type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	// ObtenerDetalle returns the client with its order history and derived
	// spending totals.
	ObtenerDetalle(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalleResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
	cfg  *config.Config
}

func NewClienteService(repo repository.ClienteRepository, cfg *config.Config) ClienteService {
	return &clienteService{repo: repo, cfg: cfg}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.FechaVencimientoPresupuesto)
	if err != nil {
		return nil, apierror.NewValidation(map[string]string{
			"fecha_vencimiento_presupuesto": "Formato de fecha inválido, use YYYY-MM-DD",
		})
	}

	cliente := &model.Cliente{
		Nombre:                      req.Nombre,
		Encargado:                   req.Encargado,
		Presupuesto:                 req.Presupuesto,
		EmailContacto:               req.EmailContacto,
		FechaVencimientoPresupuesto: fecha,
	}
	if err := cliente.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerDetalle(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalleResponse, error) {
	cliente, err := s.repo.FindByIDConPedidos(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}

	totalGastado := decimal.Zero
	pedidos := make([]dto.PedidoResponse, len(cliente.Pedidos))
	for i := range cliente.Pedidos {
		p := &cliente.Pedidos[i]
		p.Cliente = cliente
		totalGastado = totalGastado.Add(p.Total())
		pedidos[i] = pedidoToResponse(p)
	}

	return &dto.ClienteDetalleResponse{
		ClienteResponse:     clienteToResponse(cliente),
		TotalPedidos:        len(cliente.Pedidos),
		TotalGastado:        totalGastado,
		PresupuestoRestante: cliente.Presupuesto.Sub(totalGastado),
		Pedidos:             pedidos,
	}, nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.TamanoPagina("clientes")
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		data[i] = clienteToResponse(&clientes[i])
	}
	return &dto.ClienteListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}
	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.Encargado != nil {
		cliente.Encargado = *req.Encargado
	}
	if req.Presupuesto != nil {
		cliente.Presupuesto = *req.Presupuesto
	}
	if req.EmailContacto != nil {
		cliente.EmailContacto = *req.EmailContacto
	}
	if req.FechaVencimientoPresupuesto != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaVencimientoPresupuesto)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{
				"fecha_vencimiento_presupuesto": "Formato de fecha inválido, use YYYY-MM-DD",
			})
		}
		cliente.FechaVencimientoPresupuesto = fecha
	}
	if err := cliente.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.FromGorm(err, "Cliente")
	}
	return s.repo.Delete(ctx, id)
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                          c.ID.String(),
		Nombre:                      c.Nombre,
		Encargado:                   c.Encargado,
		Presupuesto:                 c.Presupuesto,
		EmailContacto:               c.EmailContacto,
		FechaVencimientoPresupuesto: c.FechaVencimientoPresupuesto.Format("2006-01-02"),
		PresupuestoVencido:          c.PresupuestoVencido(time.Now()),
	}
}
