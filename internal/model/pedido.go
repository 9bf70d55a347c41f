package model

import (
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadoPedido is the order lifecycle status.
type EstadoPedido string

const (
	EstadoPendiente  EstadoPedido = "pendiente"
	EstadoConfirmado EstadoPedido = "confirmado"
	EstadoEnProceso  EstadoPedido = "en_proceso"
	EstadoCompletado EstadoPedido = "completado"
	EstadoCancelado  EstadoPedido = "cancelado"
	EstadoOtros      EstadoPedido = "otros"
)

// EstadosPedido lists every valid status in display order.
var EstadosPedido = []EstadoPedido{
	EstadoPendiente, EstadoConfirmado, EstadoEnProceso,
	EstadoCompletado, EstadoCancelado, EstadoOtros,
}

var etiquetasEstadoPedido = map[EstadoPedido]string{
	EstadoPendiente:  "Pendiente",
	EstadoConfirmado: "Confirmado",
	EstadoEnProceso:  "En Proceso",
	EstadoCompletado: "Completado",
	EstadoCancelado:  "Cancelado",
	EstadoOtros:      "Otros",
}

func (e EstadoPedido) Valido() bool {
	_, ok := etiquetasEstadoPedido[e]
	return ok
}

func (e EstadoPedido) Etiqueta() string {
	if lbl, ok := etiquetasEstadoPedido[e]; ok {
		return lbl
	}
	return string(e)
}

// Pedido aggregates product and service line items for one client.
// FechaPedido is set once at creation and never updated afterwards; the
// repository update path omits the column.
type Pedido struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ClienteID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	FechaPedido   time.Time    `gorm:"not null;autoCreateTime;index"`
	Estado        EstadoPedido `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Observaciones string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente        *Cliente             `gorm:"foreignKey:ClienteID"`
	ItemsProductos []ItemProductoPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	ItemsServicios []ItemServicioPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Pedido) TableName() string { return "pedidos" }

func (p *Pedido) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Total sums the subtotals of every line item; an order without items
// totals zero. Pure read, exact decimal arithmetic.
func (p *Pedido) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.ItemsProductos {
		total = total.Add(item.Subtotal())
	}
	for _, item := range p.ItemsServicios {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (p *Pedido) Validar() error {
	ve := apierror.NewValidation(nil)
	if p.ClienteID == uuid.Nil {
		ve.Add("cliente", "El cliente es obligatorio")
	}
	if !p.Estado.Valido() {
		ve.Add("estado", "Estado de pedido desconocido")
	}
	return ve.OrNil()
}
