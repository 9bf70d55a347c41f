package repository

import (
	"context"
	"strings"
	"time"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for clients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	// FindByIDConPedidos preloads the client's orders with their line items
	// so that totals can be derived without further queries.
	FindByIDConPedidos(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	// Delete removes the client and, in the same transaction, every owned
	// pedido together with its line items.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountPresupuestoVencido(ctx context.Context, hoy time.Time) (int64, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByIDConPedidos(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Pedidos", func(db *gorm.DB) *gorm.DB { return db.Order("fecha_pedido DESC") }).
		Preload("Pedidos.ItemsProductos.Producto").
		Preload("Pedidos.ItemsServicios.Servicio").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	if filter.Search != "" {
		pat := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(nombre) LIKE ? OR LOWER(encargado) LIKE ? OR LOWER(email_contacto) LIKE ?",
			pat, pat, pat,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pedidoIDs := tx.Model(&model.Pedido{}).Select("id").Where("cliente_id = ?", id)
		if err := tx.Where("pedido_id IN (?)", pedidoIDs).Delete(&model.ItemProductoPedido{}).Error; err != nil {
			return err
		}
		pedidoIDs = tx.Model(&model.Pedido{}).Select("id").Where("cliente_id = ?", id)
		if err := tx.Where("pedido_id IN (?)", pedidoIDs).Delete(&model.ItemServicioPedido{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cliente_id = ?", id).Delete(&model.Pedido{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cliente{}, "id = ?", id).Error
	})
}

func (r *clienteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Count(&n).Error
	return n, err
}

func (r *clienteRepo) CountPresupuestoVencido(ctx context.Context, hoy time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("fecha_vencimiento_presupuesto < ?", hoy.UTC().Format("2006-01-02")).
		Count(&n).Error
	return n, err
}
