package model

import (
	"fmt"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnidadDuracion is the unit a service duration is expressed in.
type UnidadDuracion string

const (
	DuracionHoras UnidadDuracion = "horas"
	DuracionDias  UnidadDuracion = "dias"
	DuracionMeses UnidadDuracion = "meses"
)

var etiquetasUnidadDuracion = map[UnidadDuracion]string{
	DuracionHoras: "Horas",
	DuracionDias:  "Días",
	DuracionMeses: "Meses",
}

func (u UnidadDuracion) Valida() bool {
	_, ok := etiquetasUnidadDuracion[u]
	return ok
}

func (u UnidadDuracion) Etiqueta() string {
	if lbl, ok := etiquetasUnidadDuracion[u]; ok {
		return lbl
	}
	return string(u)
}

// ServicioInformatico is a contractable IT service with a duration and one or
// more sub-type labels.
type ServicioInformatico struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Nombre              string         `gorm:"not null;uniqueIndex:idx_servicio_nombre_empresa"`
	Duracion            int            `gorm:"not null"`
	UnidadDuracion      UnidadDuracion `gorm:"type:varchar(10);not null"`
	Descripcion         string         `gorm:"not null"`
	Precio              decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Observaciones       string
	EmpresaProveedoraID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_servicio_nombre_empresa"`
	// No column default so Activo=false survives the insert; the service
	// layer defaults it to true.
	Activo bool `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	EmpresaProveedora *EmpresaProveedora `gorm:"foreignKey:EmpresaProveedoraID"`
	Tipos             []TipoServicio     `gorm:"foreignKey:ServicioID;constraint:OnDelete:CASCADE"`
}

func (ServicioInformatico) TableName() string { return "servicios_informaticos" }

func (s *ServicioInformatico) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DuracionCompleta renders the duration with its unit label, e.g. "3 Meses".
func (s *ServicioInformatico) DuracionCompleta() string {
	return fmt.Sprintf("%d %s", s.Duracion, s.UnidadDuracion.Etiqueta())
}

func (s *ServicioInformatico) Validar() error {
	ve := apierror.NewValidation(nil)
	if s.Nombre == "" {
		ve.Add("nombre", "El nombre del servicio es obligatorio")
	}
	if s.Duracion <= 0 {
		ve.Add("duracion", "La duración debe ser mayor que cero")
	}
	if !s.UnidadDuracion.Valida() {
		ve.Add("unidad_duracion", "Unidad de duración desconocida")
	}
	if s.Descripcion == "" {
		ve.Add("descripcion", "La descripción del servicio es obligatoria")
	}
	if s.Precio.IsNegative() {
		ve.Add("precio", "El precio no puede ser negativo")
	}
	if s.EmpresaProveedoraID == uuid.Nil {
		ve.Add("empresa_proveedora", "La empresa proveedora es obligatoria")
	}
	return ve.OrNil()
}

// TipoServicio is one sub-type label owned by a single service.
type TipoServicio struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tipo       string    `gorm:"type:varchar(100);not null"`
	ServicioID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (TipoServicio) TableName() string { return "tipos_servicio" }

func (t *TipoServicio) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
