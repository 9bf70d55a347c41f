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

// ServicioService defines the business logic contract for IT services.
type ServicioService interface {
	Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error)
	Listar(ctx context.Context, filter dto.ServicioFilter) (*dto.ServicioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type servicioService struct {
	repo repository.ServicioRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewServicioService(repo repository.ServicioRepository, rdb *redis.Client, cfg *config.Config) ServicioService {
	return &servicioService{repo: repo, rdb: rdb, cfg: cfg}
}

func (s *servicioService) Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error) {
	empresaID, err := uuid.Parse(req.EmpresaProveedoraID)
	if err != nil {
		return nil, apierror.NewValidation(map[string]string{"empresa_proveedora_id": "UUID inválido"})
	}

	servicio := &model.ServicioInformatico{
		Nombre:              req.Nombre,
		Duracion:            req.Duracion,
		UnidadDuracion:      model.UnidadDuracion(req.UnidadDuracion),
		Descripcion:         req.Descripcion,
		Precio:              req.Precio,
		Observaciones:       req.Observaciones,
		EmpresaProveedoraID: empresaID,
		Activo:              true,
	}
	if req.Activo != nil {
		servicio.Activo = *req.Activo
	}
	for _, t := range req.Tipos {
		servicio.Tipos = append(servicio.Tipos, model.TipoServicio{Tipo: t})
	}

	if err := servicio.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, servicio); err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}
	s.invalidarCache(ctx, servicio)
	resp := servicioToResponse(servicio)
	return &resp, nil
}

func (s *servicioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error) {
	servicio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}
	resp := servicioToResponse(servicio)
	return &resp, nil
}

func (s *servicioService) Listar(ctx context.Context, filter dto.ServicioFilter) (*dto.ServicioListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.TamanoPagina("")
	}
	servicios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ServicioResponse, len(servicios))
	for i := range servicios {
		data[i] = servicioToResponse(&servicios[i])
	}
	return &dto.ServicioListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *servicioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error) {
	servicio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}
	if req.Nombre != nil {
		servicio.Nombre = *req.Nombre
	}
	if req.Duracion != nil {
		servicio.Duracion = *req.Duracion
	}
	if req.UnidadDuracion != nil {
		servicio.UnidadDuracion = model.UnidadDuracion(*req.UnidadDuracion)
	}
	if req.Descripcion != nil {
		servicio.Descripcion = *req.Descripcion
	}
	if req.Precio != nil {
		servicio.Precio = *req.Precio
	}
	if req.Observaciones != nil {
		servicio.Observaciones = *req.Observaciones
	}
	if req.Activo != nil {
		servicio.Activo = *req.Activo
	}

	if err := servicio.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, servicio); err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}

	if req.Tipos != nil {
		nuevos := make([]model.TipoServicio, 0, len(*req.Tipos))
		for _, t := range *req.Tipos {
			nuevos = append(nuevos, model.TipoServicio{Tipo: t})
		}
		if err := s.repo.ReplaceTipos(ctx, id, nuevos); err != nil {
			return nil, err
		}
		servicio.Tipos = nuevos
	}

	s.invalidarCache(ctx, servicio)
	resp := servicioToResponse(servicio)
	return &resp, nil
}

func (s *servicioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	servicio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.FromGorm(err, "Servicio")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx, servicio)
	return nil
}

func (s *servicioService) invalidarCache(ctx context.Context, sv *model.ServicioInformatico) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx,
		fmt.Sprintf("precio:servicio:%s", sv.ID),
		fmt.Sprintf("empresa:%s:servicios", sv.EmpresaProveedoraID),
	).Err()
}

func servicioToResponse(s *model.ServicioInformatico) dto.ServicioResponse {
	tipos := make([]string, len(s.Tipos))
	for i, t := range s.Tipos {
		tipos[i] = t.Tipo
	}
	return dto.ServicioResponse{
		ID:                  s.ID.String(),
		Nombre:              s.Nombre,
		Duracion:            s.Duracion,
		UnidadDuracion:      string(s.UnidadDuracion),
		DuracionCompleta:    s.DuracionCompleta(),
		Descripcion:         s.Descripcion,
		Precio:              s.Precio,
		Observaciones:       s.Observaciones,
		EmpresaProveedoraID: s.EmpresaProveedoraID.String(),
		Activo:              s.Activo,
		Tipos:               tipos,
	}
}
