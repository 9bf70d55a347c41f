package model

import (
	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemProductoPedido links a product to an order with a quantity and a unit
// price snapshot. The snapshot is resolved once, at creation: when the caller
// leaves the price unset it is copied from the product's current price and
// never recomputed, so later price changes do not rewrite history.
type ItemProductoPedido struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PedidoID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_pedido_producto"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_pedido_producto"`
	Cantidad       int       `gorm:"not null;default:1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *ProductoHardware `gorm:"foreignKey:ProductoID"`
}

func (ItemProductoPedido) TableName() string { return "items_producto_pedido" }

func (i *ItemProductoPedido) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Subtotal is cantidad × precio unitario with exact decimal arithmetic.
func (i *ItemProductoPedido) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

func (i *ItemProductoPedido) Validar() error {
	ve := apierror.NewValidation(nil)
	if i.ProductoID == uuid.Nil {
		ve.Add("producto", "El producto es obligatorio")
	}
	if i.Cantidad < 1 {
		ve.Add("cantidad", "La cantidad debe ser al menos 1")
	}
	if i.PrecioUnitario.IsNegative() {
		ve.Add("precio_unitario", "El precio unitario no puede ser negativo")
	}
	return ve.OrNil()
}

// ItemServicioPedido is the service counterpart of ItemProductoPedido, with
// the same snapshot rule.
type ItemServicioPedido struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PedidoID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_pedido_servicio"`
	ServicioID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_pedido_servicio"`
	Cantidad       int       `gorm:"not null;default:1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Servicio *ServicioInformatico `gorm:"foreignKey:ServicioID"`
}

func (ItemServicioPedido) TableName() string { return "items_servicio_pedido" }

func (i *ItemServicioPedido) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *ItemServicioPedido) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

func (i *ItemServicioPedido) Validar() error {
	ve := apierror.NewValidation(nil)
	if i.ServicioID == uuid.Nil {
		ve.Add("servicio", "El servicio es obligatorio")
	}
	if i.Cantidad < 1 {
		ve.Add("cantidad", "La cantidad debe ser al menos 1")
	}
	if i.PrecioUnitario.IsNegative() {
		ve.Add("precio_unitario", "El precio unitario no puede ser negativo")
	}
	return ve.OrNil()
}
