package repository

import (
	"context"

	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for product categories.
type CategoriaRepository interface {
	Create(ctx context.Context, c *model.CategoriaProducto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error)
	List(ctx context.Context) ([]model.CategoriaProducto, error)
	Update(ctx context.Context, c *model.CategoriaProducto) error
	// Delete removes the category together with the products classified
	// under it and their dependent rows.
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) Create(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error) {
	var c model.CategoriaProducto
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) List(ctx context.Context) ([]model.CategoriaProducto, error) {
	var list []model.CategoriaProducto
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productoIDs := tx.Model(&model.ProductoHardware{}).Select("id").Where("categoria_id = ?", id)
		if err := tx.Where("producto_hardware_id IN (?)", productoIDs).
			Delete(&model.CaracteristicaProductoHardware{}).Error; err != nil {
			return err
		}
		productoIDs = tx.Model(&model.ProductoHardware{}).Select("id").Where("categoria_id = ?", id)
		if err := tx.Where("producto_id IN (?)", productoIDs).Delete(&model.ItemProductoPedido{}).Error; err != nil {
			return err
		}
		if err := tx.Where("categoria_id = ?", id).Delete(&model.ProductoHardware{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CategoriaProducto{}, "id = ?", id).Error
	})
}
