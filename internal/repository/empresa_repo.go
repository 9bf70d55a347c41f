package repository

import (
	"context"
	"strings"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpresaRepository interface {
	Create(ctx context.Context, e *model.EmpresaProveedora) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmpresaProveedora, error)
	List(ctx context.Context, filter dto.EmpresaFilter) ([]model.EmpresaProveedora, int64, error)
	Update(ctx context.Context, e *model.EmpresaProveedora) error
	// Delete removes the empresa and every producto and servicio it supplies,
	// including their characteristics, sub-type labels, and any order line
	// items that reference them — the source cascades supplier deletion.
	Delete(ctx context.Context, id uuid.UUID) error
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Create(ctx context.Context, e *model.EmpresaProveedora) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empresaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EmpresaProveedora, error) {
	var e model.EmpresaProveedora
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empresaRepo) List(ctx context.Context, filter dto.EmpresaFilter) ([]model.EmpresaProveedora, int64, error) {
	var empresas []model.EmpresaProveedora
	var total int64

	q := r.db.WithContext(ctx).Model(&model.EmpresaProveedora{})

	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(nombre) LIKE ? OR LOWER(encargado) LIKE ?", pat, pat)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&empresas).Error
	return empresas, total, err
}

func (r *empresaRepo) Update(ctx context.Context, e *model.EmpresaProveedora) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empresaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productoIDs := tx.Model(&model.ProductoHardware{}).Select("id").Where("empresa_proveedora_id = ?", id)
		if err := tx.Where("producto_hardware_id IN (?)", productoIDs).
			Delete(&model.CaracteristicaProductoHardware{}).Error; err != nil {
			return err
		}
		productoIDs = tx.Model(&model.ProductoHardware{}).Select("id").Where("empresa_proveedora_id = ?", id)
		if err := tx.Where("producto_id IN (?)", productoIDs).Delete(&model.ItemProductoPedido{}).Error; err != nil {
			return err
		}
		if err := tx.Where("empresa_proveedora_id = ?", id).Delete(&model.ProductoHardware{}).Error; err != nil {
			return err
		}

		servicioIDs := tx.Model(&model.ServicioInformatico{}).Select("id").Where("empresa_proveedora_id = ?", id)
		if err := tx.Where("servicio_id IN (?)", servicioIDs).Delete(&model.TipoServicio{}).Error; err != nil {
			return err
		}
		servicioIDs = tx.Model(&model.ServicioInformatico{}).Select("id").Where("empresa_proveedora_id = ?", id)
		if err := tx.Where("servicio_id IN (?)", servicioIDs).Delete(&model.ItemServicioPedido{}).Error; err != nil {
			return err
		}
		if err := tx.Where("empresa_proveedora_id = ?", id).Delete(&model.ServicioInformatico{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.EmpresaProveedora{}, "id = ?", id).Error
	})
}
