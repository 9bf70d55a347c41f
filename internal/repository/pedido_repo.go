package repository

import (
	"context"
	"time"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository defines the data access contract for orders and their
// line items.
type PedidoRepository interface {
	// Create persists the order together with any line items attached to
	// it, all in one transaction.
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	// FindByRange returns every order placed inside [desde, hasta], items
	// preloaded, newest first. Empty bounds are open.
	FindByRange(ctx context.Context, desde, hasta string) ([]model.Pedido, error)
	// Update persists header fields only; fecha_pedido is immutable and the
	// line items have their own paths.
	Update(ctx context.Context, p *model.Pedido) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoPedido) error
	AddItemProducto(ctx context.Context, item *model.ItemProductoPedido) error
	AddItemServicio(ctx context.Context, item *model.ItemServicioPedido) error
	RemoveItemProducto(ctx context.Context, pedidoID, itemID uuid.UUID) (int64, error)
	RemoveItemServicio(ctx context.Context, pedidoID, itemID uuid.UUID) (int64, error)
	// Delete removes the order and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountPorEstado(ctx context.Context) (map[model.EstadoPedido]int64, error)
	Recientes(ctx context.Context, limit int) ([]model.Pedido, error)
}

// diaSiguiente turns an inclusive "YYYY-MM-DD" upper bound into the
// exclusive start of the next day. Callers validate the format first.
func diaSiguiente(fecha string) string {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return fecha
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("ItemsProductos.Producto").
		Preload("ItemsServicios.Servicio").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.FechaDesde != "" {
		q = q.Where("fecha_pedido >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("fecha_pedido < ?", diaSiguiente(filter.FechaHasta))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").
		Preload("ItemsProductos.Producto").
		Preload("ItemsServicios.Servicio").
		Order("fecha_pedido DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) FindByRange(ctx context.Context, desde, hasta string) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if desde != "" {
		q = q.Where("fecha_pedido >= ?", desde)
	}
	if hasta != "" {
		q = q.Where("fecha_pedido < ?", diaSiguiente(hasta))
	}
	err := q.Preload("Cliente").
		Preload("ItemsProductos").
		Preload("ItemsServicios").
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).
		Omit("ItemsProductos", "ItemsServicios", "Cliente", "fecha_pedido", "created_at").
		Save(p).Error
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoPedido) error {
	res := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ?", id).
		Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pedidoRepo) AddItemProducto(ctx context.Context, item *model.ItemProductoPedido) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pedidoRepo) AddItemServicio(ctx context.Context, item *model.ItemServicioPedido) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pedidoRepo) RemoveItemProducto(ctx context.Context, pedidoID, itemID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND pedido_id = ?", itemID, pedidoID).
		Delete(&model.ItemProductoPedido{})
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) RemoveItemServicio(ctx context.Context, pedidoID, itemID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND pedido_id = ?", itemID, pedidoID).
		Delete(&model.ItemServicioPedido{})
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&model.ItemProductoPedido{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pedido_id = ?", id).Delete(&model.ItemServicioPedido{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Pedido{}, "id = ?", id).Error
	})
}

func (r *pedidoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).Count(&n).Error
	return n, err
}

func (r *pedidoRepo) CountPorEstado(ctx context.Context) (map[model.EstadoPedido]int64, error) {
	type fila struct {
		Estado model.EstadoPedido
		N      int64
	}
	var filas []fila
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("estado, COUNT(*) as n").
		Group("estado").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.EstadoPedido]int64, len(filas))
	for _, f := range filas {
		out[f.Estado] = f.N
	}
	return out, nil
}

func (r *pedidoRepo) Recientes(ctx context.Context, limit int) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("ItemsProductos").
		Preload("ItemsServicios").
		Order("fecha_pedido DESC").
		Limit(limit).
		Find(&pedidos).Error
	return pedidos, err
}
