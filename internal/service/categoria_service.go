package service

import (
	"context"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"
	"github.com/FroiVa/Sipp/internal/repository"

	"github.com/google/uuid"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	// Eliminar removes the category and the products classified under it.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria := &model.CategoriaProducto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, apierror.FromGorm(err, "Categoría")
	}
	resp := categoriaToResponse(categoria)
	return &resp, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Categoría")
	}
	resp := categoriaToResponse(categoria)
	return &resp, nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(categorias))
	for i := range categorias {
		resp[i] = categoriaToResponse(&categorias[i])
	}
	return resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromGorm(err, "Categoría")
	}
	if req.Nombre != nil {
		categoria.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		categoria.Descripcion = *req.Descripcion
	}
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, apierror.FromGorm(err, "Categoría")
	}
	resp := categoriaToResponse(categoria)
	return &resp, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.FromGorm(err, "Categoría")
	}
	return s.repo.Delete(ctx, id)
}

func categoriaToResponse(c *model.CategoriaProducto) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}
