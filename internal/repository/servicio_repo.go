package repository

import (
	"context"
	"strings"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicioRepository defines the data access contract for IT services.
type ServicioRepository interface {
	Create(ctx context.Context, s *model.ServicioInformatico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServicioInformatico, error)
	List(ctx context.Context, filter dto.ServicioFilter) ([]model.ServicioInformatico, int64, error)
	// FindByEmpresaID returns the active services of a supplier, ordered by
	// name, for lookup endpoints.
	FindByEmpresaID(ctx context.Context, empresaID uuid.UUID) ([]model.ServicioInformatico, error)
	Update(ctx context.Context, s *model.ServicioInformatico) error
	// ReplaceTipos swaps the full sub-type set of a service in one
	// transaction.
	ReplaceTipos(ctx context.Context, servicioID uuid.UUID, tipos []model.TipoServicio) error
	// Delete removes the service, its sub-types and any order line items
	// that reference it.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type servicioRepo struct{ db *gorm.DB }

func NewServicioRepository(db *gorm.DB) ServicioRepository { return &servicioRepo{db: db} }

func (r *servicioRepo) Create(ctx context.Context, s *model.ServicioInformatico) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *servicioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ServicioInformatico, error) {
	var s model.ServicioInformatico
	err := r.db.WithContext(ctx).
		Preload("Tipos").
		Preload("EmpresaProveedora").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicioRepo) List(ctx context.Context, filter dto.ServicioFilter) ([]model.ServicioInformatico, int64, error) {
	var servicios []model.ServicioInformatico
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ServicioInformatico{})

	switch filter.Activo {
	case "all":
	case "false":
		q = q.Where("activo = ?", false)
	default:
		q = q.Where("activo = ?", true)
	}
	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(nombre) LIKE ? OR LOWER(descripcion) LIKE ?", pat, pat)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Tipos").Preload("EmpresaProveedora").
		Order("nombre ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&servicios).Error
	return servicios, total, err
}

func (r *servicioRepo) FindByEmpresaID(ctx context.Context, empresaID uuid.UUID) ([]model.ServicioInformatico, error) {
	var servicios []model.ServicioInformatico
	err := r.db.WithContext(ctx).
		Where("empresa_proveedora_id = ? AND activo = ?", empresaID, true).
		Order("nombre ASC").
		Find(&servicios).Error
	return servicios, err
}

func (r *servicioRepo) Update(ctx context.Context, s *model.ServicioInformatico) error {
	return r.db.WithContext(ctx).Omit("Tipos").Save(s).Error
}

func (r *servicioRepo) ReplaceTipos(ctx context.Context, servicioID uuid.UUID, tipos []model.TipoServicio) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("servicio_id = ?", servicioID).
			Delete(&model.TipoServicio{}).Error; err != nil {
			return err
		}
		if len(tipos) == 0 {
			return nil
		}
		for i := range tipos {
			tipos[i].ServicioID = servicioID
		}
		return tx.Create(&tipos).Error
	})
}

func (r *servicioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("servicio_id = ?", id).Delete(&model.TipoServicio{}).Error; err != nil {
			return err
		}
		if err := tx.Where("servicio_id = ?", id).Delete(&model.ItemServicioPedido{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ServicioInformatico{}, "id = ?", id).Error
	})
}

func (r *servicioRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ServicioInformatico{}).Count(&n).Error
	return n, err
}
