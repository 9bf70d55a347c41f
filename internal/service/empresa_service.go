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

// EmpresaService defines the business logic contract for supplier companies.
type EmpresaService interface {
	Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error)
	// ObtenerDetalle includes the supplier's active catalog.
	ObtenerDetalle(ctx context.Context, id uuid.UUID) (*dto.EmpresaDetalleResponse, error)
	Listar(ctx context.Context, filter dto.EmpresaFilter) (*dto.EmpresaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error)
	// Eliminar removes the supplier and its whole catalog.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type empresaService struct {
	repo         repository.EmpresaRepository
	productoRepo repository.ProductoRepository
	servicioRepo repository.ServicioRepository
	cfg          *config.Config
}

func NewEmpresaService(
	repo repository.EmpresaRepository,
	productoRepo repository.ProductoRepository,
	servicioRepo repository.ServicioRepository,
	cfg *config.Config,
) EmpresaService {
	return &empresaService{
		repo:         repo,
		productoRepo: productoRepo,
		servicioRepo: servicioRepo,
		cfg:          cfg,
	}
}

func (s *empresaService) Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa := &model.EmpresaProveedora{
		Nombre:    req.Nombre,
		Encargado: req.Encargado,
	}
	if err := empresa.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, empresa); err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	resp := empresaToResponse(empresa)
	return &resp, nil
}

func (s *empresaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	resp := empresaToResponse(empresa)
	return &resp, nil
}

func (s *empresaService) ObtenerDetalle(ctx context.Context, id uuid.UUID) (*dto.EmpresaDetalleResponse, error) {
	empresa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	productos, err := s.productoRepo.FindByEmpresaID(ctx, id)
	if err != nil {
		return nil, err
	}
	servicios, err := s.servicioRepo.FindByEmpresaID(ctx, id)
	if err != nil {
		return nil, err
	}

	prodResp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		prodResp[i] = productoToResponse(&productos[i])
	}
	servResp := make([]dto.ServicioResponse, len(servicios))
	for i := range servicios {
		servResp[i] = servicioToResponse(&servicios[i])
	}

	return &dto.EmpresaDetalleResponse{
		EmpresaResponse: empresaToResponse(empresa),
		Productos:       prodResp,
		Servicios:       servResp,
		TotalProductos:  len(prodResp),
		TotalServicios:  len(servResp),
	}, nil
}

func (s *empresaService) Listar(ctx context.Context, filter dto.EmpresaFilter) (*dto.EmpresaListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.TamanoPagina("")
	}
	empresas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.EmpresaResponse, len(empresas))
	for i := range empresas {
		data[i] = empresaToResponse(&empresas[i])
	}
	return &dto.EmpresaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *empresaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	if req.Nombre != nil {
		empresa.Nombre = *req.Nombre
	}
	if req.Encargado != nil {
		empresa.Encargado = *req.Encargado
	}
	if err := empresa.Validar(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, empresa); err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	resp := empresaToResponse(empresa)
	return &resp, nil
}

func (s *empresaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.FromGorm(err, "Empresa proveedora")
	}
	return s.repo.Delete(ctx, id)
}

func empresaToResponse(e *model.EmpresaProveedora) dto.EmpresaResponse {
	return dto.EmpresaResponse{
		ID:        e.ID.String(),
		Nombre:    e.Nombre,
		Encargado: e.Encargado,
	}
}
