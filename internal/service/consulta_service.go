package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cacheTTL bounds staleness of the lookup cache; mutations also delete the
// affected keys eagerly.
const cacheTTL = 5 * time.Minute

// ConsultaService serves the lightweight lookups behind the dependent
// selection lists: active catalog per supplier and current prices.
type ConsultaService interface {
	ProductosDeEmpresa(ctx context.Context, empresaID uuid.UUID) ([]dto.ProductoEmpresaResponse, error)
	ServiciosDeEmpresa(ctx context.Context, empresaID uuid.UUID) ([]dto.ServicioEmpresaResponse, error)
	PrecioProducto(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error)
	PrecioServicio(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error)
}

type consultaService struct {
	empresaRepo  repository.EmpresaRepository
	productoRepo repository.ProductoRepository
	servicioRepo repository.ServicioRepository
	rdb          *redis.Client
}

func NewConsultaService(
	empresaRepo repository.EmpresaRepository,
	productoRepo repository.ProductoRepository,
	servicioRepo repository.ServicioRepository,
	rdb *redis.Client,
) ConsultaService {
	return &consultaService{
		empresaRepo:  empresaRepo,
		productoRepo: productoRepo,
		servicioRepo: servicioRepo,
		rdb:          rdb,
	}
}

func (s *consultaService) ProductosDeEmpresa(ctx context.Context, empresaID uuid.UUID) ([]dto.ProductoEmpresaResponse, error) {
	key := fmt.Sprintf("empresa:%s:productos", empresaID)
	var cached []dto.ProductoEmpresaResponse
	if s.leerCache(ctx, key, &cached) {
		return cached, nil
	}

	if _, err := s.empresaRepo.FindByID(ctx, empresaID); err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	productos, err := s.productoRepo.FindByEmpresaID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoEmpresaResponse, len(productos))
	for i := range productos {
		p := &productos[i]
		resp[i] = dto.ProductoEmpresaResponse{
			ID:        p.ID.String(),
			Nombre:    p.Nombre,
			Precio:    p.Precio,
			TipoFinal: p.TipoSeleccion(),
		}
	}
	s.escribirCache(ctx, key, resp)
	return resp, nil
}

func (s *consultaService) ServiciosDeEmpresa(ctx context.Context, empresaID uuid.UUID) ([]dto.ServicioEmpresaResponse, error) {
	key := fmt.Sprintf("empresa:%s:servicios", empresaID)
	var cached []dto.ServicioEmpresaResponse
	if s.leerCache(ctx, key, &cached) {
		return cached, nil
	}

	if _, err := s.empresaRepo.FindByID(ctx, empresaID); err != nil {
		return nil, apierror.FromGorm(err, "Empresa proveedora")
	}
	servicios, err := s.servicioRepo.FindByEmpresaID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ServicioEmpresaResponse, len(servicios))
	for i := range servicios {
		sv := &servicios[i]
		resp[i] = dto.ServicioEmpresaResponse{
			ID:               sv.ID.String(),
			Nombre:           sv.Nombre,
			Precio:           sv.Precio,
			DuracionCompleta: sv.DuracionCompleta(),
		}
	}
	s.escribirCache(ctx, key, resp)
	return resp, nil
}

func (s *consultaService) PrecioProducto(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error) {
	key := fmt.Sprintf("precio:producto:%s", id)
	var cached dto.PrecioResponse
	if s.leerCache(ctx, key, &cached) {
		return &cached, nil
	}

	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Producto")
	}
	// Only active records prefill a snapshot.
	if !producto.Activo {
		return nil, apierror.NotFound("Producto")
	}
	resp := dto.PrecioResponse{Precio: producto.Precio}
	s.escribirCache(ctx, key, resp)
	return &resp, nil
}

func (s *consultaService) PrecioServicio(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error) {
	key := fmt.Sprintf("precio:servicio:%s", id)
	var cached dto.PrecioResponse
	if s.leerCache(ctx, key, &cached) {
		return &cached, nil
	}

	servicio, err := s.servicioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Servicio")
	}
	if !servicio.Activo {
		return nil, apierror.NotFound("Servicio")
	}
	resp := dto.PrecioResponse{Precio: servicio.Precio}
	s.escribirCache(ctx, key, resp)
	return &resp, nil
}

// leerCache is best effort: any Redis error counts as a miss.
func (s *consultaService) leerCache(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (s *consultaService) escribirCache(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, raw, cacheTTL).Err()
}
