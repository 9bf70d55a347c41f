package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Usuario stores system users with role-based access.
// Rol: "administrador" | "operador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// No column default so an inactive user can be inserted as such.
	Activo bool `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
