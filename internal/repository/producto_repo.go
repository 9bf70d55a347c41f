package repository

import (
	"context"
	"strings"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for hardware products.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.ProductoHardware) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoHardware, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.ProductoHardware, int64, error)
	// FindByEmpresaID returns the active products of a supplier, ordered by
	// name, for lookup endpoints.
	FindByEmpresaID(ctx context.Context, empresaID uuid.UUID) ([]model.ProductoHardware, error)
	Update(ctx context.Context, p *model.ProductoHardware) error
	// ReplaceCaracteristicas swaps the full characteristic set of a product
	// in one transaction.
	ReplaceCaracteristicas(ctx context.Context, productoID uuid.UUID, caracteristicas []model.CaracteristicaProductoHardware) error
	// Delete removes the product, its characteristics and any order line
	// items that reference it.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.ProductoHardware) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoHardware, error) {
	var p model.ProductoHardware
	err := r.db.WithContext(ctx).
		Preload("Caracteristicas").
		Preload("Categoria").
		Preload("EmpresaProveedora").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.ProductoHardware, int64, error) {
	var productos []model.ProductoHardware
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ProductoHardware{})

	switch filter.Activo {
	case "all":
	case "false":
		q = q.Where("productos_hardware.activo = ?", false)
	default:
		q = q.Where("productos_hardware.activo = ?", true)
	}
	if filter.Tipo != "" {
		q = q.Where("productos_hardware.tipo = ?", filter.Tipo)
	}
	if filter.CategoriaID != "" {
		q = q.Where("productos_hardware.categoria_id = ?", filter.CategoriaID)
	}
	if filter.EmpresaID != "" {
		q = q.Where("productos_hardware.empresa_proveedora_id = ?", filter.EmpresaID)
	}
	if filter.Search != "" {
		// Searching also matches characteristic values, so the join can
		// yield one row per matching characteristic. DISTINCT dedupes.
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Joins("LEFT JOIN caracteristicas_producto_hardware cp ON cp.producto_hardware_id = productos_hardware.id").
			Where(
				"LOWER(productos_hardware.nombre) LIKE ? OR LOWER(productos_hardware.tipo_personalizado) LIKE ? OR LOWER(cp.attr) LIKE ? OR LOWER(cp.valor) LIKE ?",
				pat, pat, pat, pat,
			).
			Distinct("productos_hardware.*")
	}

	if err := q.Session(&gorm.Session{}).Distinct("productos_hardware.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Caracteristicas").Preload("Categoria").Preload("EmpresaProveedora").
		Order("productos_hardware.tipo ASC, productos_hardware.nombre ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) FindByEmpresaID(ctx context.Context, empresaID uuid.UUID) ([]model.ProductoHardware, error) {
	var productos []model.ProductoHardware
	err := r.db.WithContext(ctx).
		Where("empresa_proveedora_id = ? AND activo = ?", empresaID, true).
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.ProductoHardware) error {
	return r.db.WithContext(ctx).Omit("Caracteristicas").Save(p).Error
}

func (r *productoRepo) ReplaceCaracteristicas(ctx context.Context, productoID uuid.UUID, caracteristicas []model.CaracteristicaProductoHardware) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_hardware_id = ?", productoID).
			Delete(&model.CaracteristicaProductoHardware{}).Error; err != nil {
			return err
		}
		if len(caracteristicas) == 0 {
			return nil
		}
		for i := range caracteristicas {
			caracteristicas[i].ProductoHardwareID = productoID
		}
		return tx.Create(&caracteristicas).Error
	})
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_hardware_id = ?", id).
			Delete(&model.CaracteristicaProductoHardware{}).Error; err != nil {
			return err
		}
		if err := tx.Where("producto_id = ?", id).Delete(&model.ItemProductoPedido{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProductoHardware{}, "id = ?", id).Error
	})
}

func (r *productoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductoHardware{}).Count(&n).Error
	return n, err
}
