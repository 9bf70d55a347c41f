package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaProducto classifies hardware products.
type CategoriaProducto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"not null"`
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's singular → plural logic for Spanish names.
func (CategoriaProducto) TableName() string { return "categorias_producto" }

func (c *CategoriaProducto) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
