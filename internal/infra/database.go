package infra

import (
	"fmt"

	"github.com/FroiVa/Sipp/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for every entity. TranslateError is on so that duplicate-key
// and foreign-key violations surface as gorm.ErrDuplicatedKey /
// gorm.ErrForeignKeyViolated and can be mapped into the apierror taxonomy.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table. Shared with the test helpers so
// integration tests run against the exact production schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.EmpresaProveedora{},
		&model.CategoriaProducto{},
		&model.ProductoHardware{},
		&model.CaracteristicaProductoHardware{},
		&model.ServicioInformatico{},
		&model.TipoServicio{},
		&model.Pedido{},
		&model.ItemProductoPedido{},
		&model.ItemServicioPedido{},
	)
}
