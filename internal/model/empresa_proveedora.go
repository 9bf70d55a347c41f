package model

import (
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmpresaProveedora is a supplier company. It does not own its catalog in the
// aggregate sense, but deleting an empresa removes its productos and
// servicios as well.
type EmpresaProveedora struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"index;not null"`
	Encargado string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Productos []ProductoHardware   `gorm:"foreignKey:EmpresaProveedoraID;constraint:OnDelete:CASCADE"`
	Servicios []ServicioInformatico `gorm:"foreignKey:EmpresaProveedoraID;constraint:OnDelete:CASCADE"`
}

func (EmpresaProveedora) TableName() string { return "empresas_proveedoras" }

func (e *EmpresaProveedora) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *EmpresaProveedora) Validar() error {
	ve := apierror.NewValidation(nil)
	if e.Nombre == "" {
		ve.Add("nombre", "El nombre de la empresa es obligatorio")
	}
	if e.Encargado == "" {
		ve.Add("encargado", "La persona encargada es obligatoria")
	}
	return ve.OrNil()
}
