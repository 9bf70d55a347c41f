package service

import (
	"context"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/google/uuid"
)

// PedidoService defines the business logic contract for orders.
type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	AgregarItemProducto(ctx context.Context, pedidoID uuid.UUID, req dto.ItemProductoRequest) (*dto.PedidoResponse, error)
	AgregarItemServicio(ctx context.Context, pedidoID uuid.UUID, req dto.ItemServicioRequest) (*dto.PedidoResponse, error)
	EliminarItemProducto(ctx context.Context, pedidoID, itemID uuid.UUID) error
	EliminarItemServicio(ctx context.Context, pedidoID, itemID uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	repo         repository.PedidoRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	servicioRepo repository.ServicioRepository
	cfg          *config.Config
}

func NewPedidoService(
	repo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	servicioRepo repository.ServicioRepository,
	cfg *config.Config,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		servicioRepo: servicioRepo,
		cfg:          cfg,
	}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewValidation(map[string]string{"cliente_id": "UUID inválido"})
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.FromGorm(err, "Cliente")
	}

	estado := model.EstadoPendiente
	if req.Estado != "" {
		estado = model.EstadoPedido(req.Estado)
		if !estado.Valido() {
			return nil, apierror.NewValidation(map[string]string{"estado": "Estado de pedido desconocido"})
		}
	}

	pedido := &model.Pedido{
		ClienteID:     clienteID,
		Estado:        estado,
		Observaciones: req.Observaciones,
	}

	for _, item := range req.ItemsProductos {
		resolved, err := s.resolverItemProducto(ctx, item)
		if err != nil {
			return nil, err
		}
		pedido.ItemsProductos = append(pedido.ItemsProductos, *resolved)
	}
	for _, item := range req.ItemsServicios {
		resolved, err := s.resolverItemServicio(ctx, item)
		if err != nil {
			return nil, err
		}
		pedido.ItemsServicios = append(pedido.ItemsServicios, *resolved)
	}

	if err := pedido.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, pedido); err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	return s.ObtenerPorID(ctx, pedido.ID)
}

// resolverItemProducto checks the referenced product and snapshots its
// current price when the request omits one. The snapshot never changes
// afterwards, even if the catalog price does.
func (s *pedidoService) resolverItemProducto(ctx context.Context, req dto.ItemProductoRequest) (*model.ItemProductoPedido, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.NewValidation(map[string]string{"producto_id": "UUID inválido"})
	}
	producto, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}
	if !producto.Activo {
		return nil, apierror.NewValidation(map[string]string{
			"producto_id": "El producto " + producto.Nombre + " está inactivo",
		})
	}
	item := &model.ItemProductoPedido{
		ProductoID:     pid,
		Cantidad:       req.Cantidad,
		PrecioUnitario: producto.Precio,
	}
	if req.PrecioUnitario != nil {
		item.PrecioUnitario = *req.PrecioUnitario
	}
	if err := item.Validar(); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *pedidoService) resolverItemServicio(ctx context.Context, req dto.ItemServicioRequest) (*model.ItemServicioPedido, error) {
	sid, err := uuid.Parse(req.ServicioID)
	if err != nil {
		return nil, apierror.NewValidation(map[string]string{"servicio_id": "UUID inválido"})
	}
	servicio, err := s.servicioRepo.FindByID(ctx, sid)
	if err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}
	if !servicio.Activo {
		return nil, apierror.NewValidation(map[string]string{
			"servicio_id": "El servicio " + servicio.Nombre + " está inactivo",
		})
	}
	item := &model.ItemServicioPedido{
		ServicioID:     sid,
		Cantidad:       req.Cantidad,
		PrecioUnitario: servicio.Precio,
	}
	if req.PrecioUnitario != nil {
		item.PrecioUnitario = *req.PrecioUnitario
	}
	if err := item.Validar(); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.TamanoPagina("pedidos")
	}
	if filter.Estado != "" && !model.EstadoPedido(filter.Estado).Valido() {
		return nil, apierror.NewValidation(map[string]string{"estado": "Estado de pedido desconocido"})
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, len(pedidos))
	for i := range pedidos {
		data[i] = pedidoToResponse(&pedidos[i])
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	if req.Estado != nil {
		estado := model.EstadoPedido(*req.Estado)
		if !estado.Valido() {
			return nil, apierror.NewValidation(map[string]string{"estado": "Estado de pedido desconocido"})
		}
		pedido.Estado = estado
	}
	if req.Observaciones != nil {
		pedido.Observaciones = *req.Observaciones
	}
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	e := model.EstadoPedido(estado)
	if !e.Valido() {
		return nil, apierror.NewValidation(map[string]string{"estado": "Estado de pedido desconocido"})
	}
	if err := s.repo.UpdateEstado(ctx, id, e); err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *pedidoService) AgregarItemProducto(ctx context.Context, pedidoID uuid.UUID, req dto.ItemProductoRequest) (*dto.PedidoResponse, error) {
	if _, err := s.repo.FindByID(ctx, pedidoID); err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	item, err := s.resolverItemProducto(ctx, req)
	if err != nil {
		return nil, err
	}
	item.PedidoID = pedidoID
	if err := s.repo.AddItemProducto(ctx, item); err != nil {
		return nil, apierror.FromGorm(err, "Item de producto")
	}
	return s.ObtenerPorID(ctx, pedidoID)
}

func (s *pedidoService) AgregarItemServicio(ctx context.Context, pedidoID uuid.UUID, req dto.ItemServicioRequest) (*dto.PedidoResponse, error) {
	if _, err := s.repo.FindByID(ctx, pedidoID); err != nil {
		return nil, apierror.FromGorm(err, "Pedido")
	}
	item, err := s.resolverItemServicio(ctx, req)
	if err != nil {
		return nil, err
	}
	item.PedidoID = pedidoID
	if err := s.repo.AddItemServicio(ctx, item); err != nil {
		return nil, apierror.FromGorm(err, "Item de servicio")
	}
	return s.ObtenerPorID(ctx, pedidoID)
}

func (s *pedidoService) EliminarItemProducto(ctx context.Context, pedidoID, itemID uuid.UUID) error {
	n, err := s.repo.RemoveItemProducto(ctx, pedidoID, itemID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Item de producto")
	}
	return nil
}

func (s *pedidoService) EliminarItemServicio(ctx context.Context, pedidoID, itemID uuid.UUID) error {
	n, err := s.repo.RemoveItemServicio(ctx, pedidoID, itemID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Item de servicio")
	}
	return nil
}

func (s *pedidoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.FromGorm(err, "Pedido")
	}
	return s.repo.Delete(ctx, id)
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	itemsProductos := make([]dto.ItemProductoResponse, len(p.ItemsProductos))
	for i, item := range p.ItemsProductos {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		itemsProductos[i] = dto.ItemProductoResponse{
			ID:             item.ID.String(),
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal(),
		}
	}
	itemsServicios := make([]dto.ItemServicioResponse, len(p.ItemsServicios))
	for i, item := range p.ItemsServicios {
		nombre := ""
		if item.Servicio != nil {
			nombre = item.Servicio.Nombre
		}
		itemsServicios[i] = dto.ItemServicioResponse{
			ID:             item.ID.String(),
			ServicioID:     item.ServicioID.String(),
			Servicio:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal(),
		}
	}
	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.Nombre
	}
	return dto.PedidoResponse{
		ID:             p.ID.String(),
		ClienteID:      p.ClienteID.String(),
		Cliente:        clienteNombre,
		FechaPedido:    p.FechaPedido.Format("2006-01-02T15:04:05Z07:00"),
		Estado:         string(p.Estado),
		EstadoEtiqueta: p.Estado.Etiqueta(),
		Observaciones:  p.Observaciones,
		ItemsProductos: itemsProductos,
		ItemsServicios: itemsServicios,
		Total:          p.Total(),
	}
}
