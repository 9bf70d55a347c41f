package model

import (
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TipoProducto is the closed catalog of hardware types. The special value
// TipoOtros turns the product into the "custom type" variant, where the
// effective type is free text in TipoPersonalizado.
type TipoProducto string

const (
	TipoSwitch    TipoProducto = "switch"
	TipoDiscoDuro TipoProducto = "disco_duro"
	TipoRAM       TipoProducto = "ram"
	TipoImpresora TipoProducto = "impresora"
	TipoTeclado   TipoProducto = "teclado"
	TipoMouse     TipoProducto = "mouse"
	TipoOrdenador TipoProducto = "ordenador"
	TipoLaptop    TipoProducto = "laptop"
	TipoOtros     TipoProducto = "otros"
)

// TiposProducto lists every valid type in catalog order.
var TiposProducto = []TipoProducto{
	TipoSwitch, TipoDiscoDuro, TipoRAM, TipoImpresora,
	TipoTeclado, TipoMouse, TipoOrdenador, TipoLaptop, TipoOtros,
}

var etiquetasTipoProducto = map[TipoProducto]string{
	TipoSwitch:    "Switch",
	TipoDiscoDuro: "Disco Duro",
	TipoRAM:       "RAM",
	TipoImpresora: "Impresora",
	TipoTeclado:   "Teclado",
	TipoMouse:     "Mouse",
	TipoOrdenador: "Ordenador",
	TipoLaptop:    "Laptop",
	TipoOtros:     "Otros",
}

// Valido reports whether t is one of the catalog values.
func (t TipoProducto) Valido() bool {
	_, ok := etiquetasTipoProducto[t]
	return ok
}

// Etiqueta returns the display label for the type; unknown values fall back
// to the raw string.
func (t TipoProducto) Etiqueta() string {
	if lbl, ok := etiquetasTipoProducto[t]; ok {
		return lbl
	}
	return string(t)
}

// ProductoHardware is a purchasable hardware product, optionally linked to a
// supplier and a category, with free-form characteristics.
type ProductoHardware struct {
	ID     uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Nombre string       `gorm:"not null;uniqueIndex:idx_producto_nombre_empresa"`
	Tipo   TipoProducto `gorm:"type:varchar(100);not null;default:'otros'"`
	// TipoPersonalizado is only meaningful when Tipo == TipoOtros; the
	// Normalizar step keeps it empty for every other type.
	TipoPersonalizado   string          `gorm:"type:varchar(100)"`
	Precio              decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EmpresaProveedoraID *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_producto_nombre_empresa"`
	CategoriaID *uuid.UUID `gorm:"type:uuid;index"`
	// No column default: a default tag makes the ORM skip the zero value on
	// insert, so Activo=false could never be stored at creation. The service
	// layer fills in true when the request leaves it unset.
	Activo    bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EmpresaProveedora *EmpresaProveedora               `gorm:"foreignKey:EmpresaProveedoraID"`
	Categoria         *CategoriaProducto               `gorm:"foreignKey:CategoriaID"`
	Caracteristicas   []CaracteristicaProductoHardware `gorm:"foreignKey:ProductoHardwareID;constraint:OnDelete:CASCADE"`
}

func (ProductoHardware) TableName() string { return "productos_hardware" }

func (p *ProductoHardware) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TipoSeleccion returns the effective type: the custom text when the product
// is the "otros" variant and the text is present, the catalog label otherwise.
func (p *ProductoHardware) TipoSeleccion() string {
	if p.Tipo == TipoOtros && p.TipoPersonalizado != "" {
		return p.TipoPersonalizado
	}
	return p.Tipo.Etiqueta()
}

// Normalizar enforces the variant invariant: any known type silently drops
// the custom text. Not an error — callers run it before Validar.
func (p *ProductoHardware) Normalizar() {
	if p.Tipo != TipoOtros {
		p.TipoPersonalizado = ""
	}
}

// Validar checks stored-field invariants, collecting every failure.
func (p *ProductoHardware) Validar() error {
	ve := apierror.NewValidation(nil)
	if p.Nombre == "" {
		ve.Add("nombre", "El nombre del producto es obligatorio")
	}
	if !p.Tipo.Valido() {
		ve.Add("tipo", "Tipo de producto desconocido")
	}
	if p.Tipo == TipoOtros && p.TipoPersonalizado == "" {
		ve.Add("tipo_personalizado", `Debe especificar un tipo personalizado cuando selecciona "Otros"`)
	}
	if p.Precio.IsNegative() {
		ve.Add("precio", "El precio no puede ser negativo")
	}
	return ve.OrNil()
}

// CaracteristicaProductoHardware is one attribute/value pair owned by a
// single product; it disappears with its owner.
type CaracteristicaProductoHardware struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Attr               string    `gorm:"type:varchar(100);not null"`
	Valor              string    `gorm:"type:varchar(200);not null"`
	ProductoHardwareID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (CaracteristicaProductoHardware) TableName() string { return "caracteristicas_producto_hardware" }

func (c *CaracteristicaProductoHardware) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
