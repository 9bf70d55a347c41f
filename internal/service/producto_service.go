package service

import (
	"context"
	"fmt"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProductoService defines the business logic contract for hardware products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client, cfg *config.Config) ProductoService {
	return &productoService{repo: repo, rdb: rdb, cfg: cfg}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.ProductoHardware{
		Nombre:            req.Nombre,
		Tipo:              model.TipoProducto(req.Tipo),
		TipoPersonalizado: req.TipoPersonalizado,
		Precio:            req.Precio,
		Activo:            true,
	}
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}
	if req.EmpresaProveedoraID != nil {
		eid, err := uuid.Parse(*req.EmpresaProveedoraID)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{"empresa_proveedora_id": "UUID inválido"})
		}
		producto.EmpresaProveedoraID = &eid
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{"categoria_id": "UUID inválido"})
		}
		producto.CategoriaID = &cid
	}
	for _, c := range req.Caracteristicas {
		producto.Caracteristicas = append(producto.Caracteristicas, model.CaracteristicaProductoHardware{
			Attr:  c.Attr,
			Valor: c.Valor,
		})
	}

	producto.Normalizar()
	if err := producto.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}
	s.invalidarCache(ctx, producto)
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.TamanoPagina("productos")
	}
	if filter.Tipo != "" && !model.TipoProducto(filter.Tipo).Valido() {
		return nil, apierror.NewValidation(map[string]string{"tipo": "Tipo de producto desconocido"})
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		data[i] = productoToResponse(&productos[i])
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Tipo != nil {
		producto.Tipo = model.TipoProducto(*req.Tipo)
	}
	if req.TipoPersonalizado != nil {
		producto.TipoPersonalizado = *req.TipoPersonalizado
	}
	if req.Precio != nil {
		producto.Precio = *req.Precio
	}
	if req.EmpresaProveedoraID != nil {
		eid, err := uuid.Parse(*req.EmpresaProveedoraID)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{"empresa_proveedora_id": "UUID inválido"})
		}
		producto.EmpresaProveedoraID = &eid
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{"categoria_id": "UUID inválido"})
		}
		producto.CategoriaID = &cid
	}
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}

	producto.Normalizar()
	if err := producto.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}

	if req.Caracteristicas != nil {
		nuevas := make([]model.CaracteristicaProductoHardware, 0, len(*req.Caracteristicas))
		for _, c := range *req.Caracteristicas {
			nuevas = append(nuevas, model.CaracteristicaProductoHardware{Attr: c.Attr, Valor: c.Valor})
		}
		if err := s.repo.ReplaceCaracteristicas(ctx, id, nuevas); err != nil {
			return nil, err
		}
		producto.Caracteristicas = nuevas
	}

	s.invalidarCache(ctx, producto)
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.FromGorm(err, "Producto")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx, producto)
	return nil
}

// invalidarCache drops the cached price and supplier-catalog entries after a
// mutation. Best effort: a cache miss is always safe.
func (s *productoService) invalidarCache(ctx context.Context, p *model.ProductoHardware) {
	if s.rdb == nil {
		return
	}
	keys := []string{fmt.Sprintf("precio:producto:%s", p.ID)}
	if p.EmpresaProveedoraID != nil {
		keys = append(keys, fmt.Sprintf("empresa:%s:productos", p.EmpresaProveedoraID))
	}
	_ = s.rdb.Del(ctx, keys...).Err()
}

func productoToResponse(p *model.ProductoHardware) dto.ProductoResponse {
	caracteristicas := make([]dto.CaracteristicaResponse, len(p.Caracteristicas))
	for i, c := range p.Caracteristicas {
		caracteristicas[i] = dto.CaracteristicaResponse{Attr: c.Attr, Valor: c.Valor}
	}
	var empresaID, categoriaID *string
	if p.EmpresaProveedoraID != nil {
		s := p.EmpresaProveedoraID.String()
		empresaID = &s
	}
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		categoriaID = &s
	}
	return dto.ProductoResponse{
		ID:                  p.ID.String(),
		Nombre:              p.Nombre,
		Tipo:                string(p.Tipo),
		TipoPersonalizado:   p.TipoPersonalizado,
		TipoSeleccion:       p.TipoSeleccion(),
		Precio:              p.Precio,
		EmpresaProveedoraID: empresaID,
		CategoriaID:         categoriaID,
		Activo:              p.Activo,
		Caracteristicas:     caracteristicas,
	}
}
