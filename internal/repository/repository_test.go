package repository

import (
	"context"
	"testing"
	"time"

	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/infra"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a fresh in-memory SQLite database with the production
// schema. TranslateError keeps duplicate-key detection uniform with the
// Postgres path.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

func crearCliente(t *testing.T, db *gorm.DB, nombre string) *model.Cliente {
	t.Helper()
	c := &model.Cliente{
		Nombre:                      nombre,
		Encargado:                   "Encargado",
		Presupuesto:                 decimal.NewFromInt(1000),
		EmailContacto:               "contacto@test.example",
		FechaVencimientoPresupuesto: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewClienteRepository(db).Create(context.Background(), c))
	return c
}

func crearEmpresa(t *testing.T, db *gorm.DB, nombre string) *model.EmpresaProveedora {
	t.Helper()
	e := &model.EmpresaProveedora{Nombre: nombre, Encargado: "Encargado"}
	require.NoError(t, NewEmpresaRepository(db).Create(context.Background(), e))
	return e
}

// ── Cliente ──────────────────────────────────────────────────────────────────

func TestClienteListOrdenYBusqueda(t *testing.T) {
	db := setupDB(t)
	repo := NewClienteRepository(db)
	ctx := context.Background()

	crearCliente(t, db, "Zeta Corp")
	crearCliente(t, db, "Acme SA")
	crearCliente(t, db, "Midas SL")

	lista, total, err := repo.List(ctx, dto.ClienteFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, lista, 3)
	assert.Equal(t, "Acme SA", lista[0].Nombre)
	assert.Equal(t, "Midas SL", lista[1].Nombre)
	assert.Equal(t, "Zeta Corp", lista[2].Nombre)

	// Case-insensitive substring match.
	lista, total, err = repo.List(ctx, dto.ClienteFilter{Search: "ACME", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Acme SA", lista[0].Nombre)
}

func TestClienteDeleteCascadaPedidos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	clienteRepo := NewClienteRepository(db)
	pedidoRepo := NewPedidoRepository(db)

	cliente := crearCliente(t, db, "Acme SA")
	producto := &model.ProductoHardware{Nombre: "SSD", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(100), Activo: true}
	require.NoError(t, NewProductoRepository(db).Create(ctx, producto))

	pedido := &model.Pedido{
		ClienteID: cliente.ID,
		Estado:    model.EstadoPendiente,
		ItemsProductos: []model.ItemProductoPedido{
			{ProductoID: producto.ID, Cantidad: 1, PrecioUnitario: decimal.NewFromInt(100)},
		},
	}
	require.NoError(t, pedidoRepo.Create(ctx, pedido))

	require.NoError(t, clienteRepo.Delete(ctx, cliente.ID))

	var nPedidos, nItems int64
	db.Model(&model.Pedido{}).Count(&nPedidos)
	db.Model(&model.ItemProductoPedido{}).Count(&nItems)
	assert.Zero(t, nPedidos)
	assert.Zero(t, nItems)
}

func TestCountPresupuestoVencido(t *testing.T) {
	db := setupDB(t)
	repo := NewClienteRepository(db)
	ctx := context.Background()

	vencido := crearCliente(t, db, "Vencido SA")
	vencido.FechaVencimientoPresupuesto = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Update(ctx, vencido))
	crearCliente(t, db, "Vigente SA")

	hoy := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	n, err := repo.CountPresupuestoVencido(ctx, hoy)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// On the expiry day itself the budget still counts as valid.
	mismoDia := time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)
	n, err = repo.CountPresupuestoVencido(ctx, mismoDia)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ── Producto ─────────────────────────────────────────────────────────────────

func TestProductoNombreDuplicadoPorEmpresa(t *testing.T) {
	db := setupDB(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	empresa := crearEmpresa(t, db, "HW Parts")

	p1 := &model.ProductoHardware{
		Nombre: "SSD 1TB", Tipo: model.TipoDiscoDuro,
		Precio: decimal.NewFromInt(100), EmpresaProveedoraID: &empresa.ID, Activo: true,
	}
	require.NoError(t, repo.Create(ctx, p1))

	p2 := &model.ProductoHardware{
		Nombre: "SSD 1TB", Tipo: model.TipoDiscoDuro,
		Precio: decimal.NewFromInt(110), EmpresaProveedoraID: &empresa.ID, Activo: true,
	}
	err := repo.Create(ctx, p2)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same name under another supplier is fine.
	otra := crearEmpresa(t, db, "Otra SA")
	p3 := &model.ProductoHardware{
		Nombre: "SSD 1TB", Tipo: model.TipoDiscoDuro,
		Precio: decimal.NewFromInt(95), EmpresaProveedoraID: &otra.ID, Activo: true,
	}
	assert.NoError(t, repo.Create(ctx, p3))
}

func TestProductoListBusquedaPorCaracteristica(t *testing.T) {
	db := setupDB(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	conCarac := &model.ProductoHardware{
		Nombre: "Workstation", Tipo: model.TipoOrdenador,
		Precio: decimal.NewFromInt(2000), Activo: true,
		Caracteristicas: []model.CaracteristicaProductoHardware{
			{Attr: "ram", Valor: "32GB DDR5"},
			{Attr: "gpu", Valor: "RTX DDR5 compatible"},
		},
	}
	require.NoError(t, repo.Create(ctx, conCarac))

	otro := &model.ProductoHardware{
		Nombre: "Teclado básico", Tipo: model.TipoTeclado,
		Precio: decimal.NewFromInt(20), Activo: true,
	}
	require.NoError(t, repo.Create(ctx, otro))

	// Two characteristics match "ddr5" but the product must appear once.
	lista, total, err := repo.List(ctx, dto.ProductoFilter{Search: "ddr5", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, lista, 1)
	assert.Equal(t, "Workstation", lista[0].Nombre)
}

func TestProductoListOrdenTipoNombre(t *testing.T) {
	db := setupDB(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	for _, p := range []*model.ProductoHardware{
		{Nombre: "Teclado Z", Tipo: model.TipoTeclado, Precio: decimal.NewFromInt(10), Activo: true},
		{Nombre: "Disco B", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(50), Activo: true},
		{Nombre: "Disco A", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(60), Activo: true},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	lista, _, err := repo.List(ctx, dto.ProductoFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "Disco A", lista[0].Nombre)
	assert.Equal(t, "Disco B", lista[1].Nombre)
	assert.Equal(t, "Teclado Z", lista[2].Nombre)
}

func TestProductoFiltroActivo(t *testing.T) {
	db := setupDB(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	activo := &model.ProductoHardware{Nombre: "Activo", Tipo: model.TipoMouse, Precio: decimal.NewFromInt(5), Activo: true}
	inactivo := &model.ProductoHardware{Nombre: "Inactivo", Tipo: model.TipoMouse, Precio: decimal.NewFromInt(5), Activo: false}
	require.NoError(t, repo.Create(ctx, activo))
	require.NoError(t, repo.Create(ctx, inactivo))

	// Activo=false must survive the insert as stored, not flip to true.
	guardado, err := repo.FindByID(ctx, inactivo.ID)
	require.NoError(t, err)
	assert.False(t, guardado.Activo)

	lista, _, err := repo.List(ctx, dto.ProductoFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Activo", lista[0].Nombre)

	lista, _, err = repo.List(ctx, dto.ProductoFilter{Activo: "false", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Inactivo", lista[0].Nombre)

	_, total, err := repo.List(ctx, dto.ProductoFilter{Activo: "all", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

// ── Empresa ──────────────────────────────────────────────────────────────────

func TestEmpresaDeleteCascadaCatalogo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	empresaRepo := NewEmpresaRepository(db)

	empresa := crearEmpresa(t, db, "HW Parts")

	producto := &model.ProductoHardware{
		Nombre: "SSD", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(100),
		EmpresaProveedoraID: &empresa.ID, Activo: true,
		Caracteristicas: []model.CaracteristicaProductoHardware{{Attr: "cap", Valor: "1TB"}},
	}
	require.NoError(t, NewProductoRepository(db).Create(ctx, producto))

	servicio := &model.ServicioInformatico{
		Nombre: "Soporte", Duracion: 1, UnidadDuracion: model.DuracionMeses,
		Descripcion: "Soporte mensual", Precio: decimal.NewFromInt(50),
		EmpresaProveedoraID: empresa.ID, Activo: true,
		Tipos: []model.TipoServicio{{Tipo: "remoto"}},
	}
	require.NoError(t, NewServicioRepository(db).Create(ctx, servicio))

	require.NoError(t, empresaRepo.Delete(ctx, empresa.ID))

	var nProd, nCarac, nServ, nTipos int64
	db.Model(&model.ProductoHardware{}).Count(&nProd)
	db.Model(&model.CaracteristicaProductoHardware{}).Count(&nCarac)
	db.Model(&model.ServicioInformatico{}).Count(&nServ)
	db.Model(&model.TipoServicio{}).Count(&nTipos)
	assert.Zero(t, nProd)
	assert.Zero(t, nCarac)
	assert.Zero(t, nServ)
	assert.Zero(t, nTipos)
}

// ── Pedido ───────────────────────────────────────────────────────────────────

func TestPedidoListFiltroFechas(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	cliente := crearCliente(t, db, "Acme SA")

	fechas := []time.Time{
		time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	for _, f := range fechas {
		p := &model.Pedido{ClienteID: cliente.ID, Estado: model.EstadoPendiente}
		require.NoError(t, repo.Create(ctx, p))
		// autoCreateTime stamps "now"; pin each fecha explicitly.
		require.NoError(t, db.Model(p).UpdateColumn("fecha_pedido", f).Error)
	}

	lista, total, err := repo.List(ctx, dto.PedidoFilter{
		FechaDesde: "2026-01-10",
		FechaHasta: "2026-01-31",
		Page:       1,
		Limit:      10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, lista, 1)
	assert.Equal(t, 15, lista[0].FechaPedido.Day())

	// Upper bound is inclusive: a pedido on the boundary day matches.
	_, total, err = repo.List(ctx, dto.PedidoFilter{
		FechaDesde: "2026-01-15", FechaHasta: "2026-02-01", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestPedidoListOrdenFechaDesc(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	cliente := crearCliente(t, db, "Acme SA")
	for i, f := range []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	} {
		p := &model.Pedido{ClienteID: cliente.ID, Estado: model.EstadoPendiente, Observaciones: string(rune('a' + i))}
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, db.Model(p).UpdateColumn("fecha_pedido", f).Error)
	}

	lista, _, err := repo.List(ctx, dto.PedidoFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, 20, lista[0].FechaPedido.Day())
	assert.Equal(t, 10, lista[1].FechaPedido.Day())
	assert.Equal(t, 1, lista[2].FechaPedido.Day())
}

func TestPedidoItemProductoDuplicado(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	cliente := crearCliente(t, db, "Acme SA")
	producto := &model.ProductoHardware{Nombre: "SSD", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(100), Activo: true}
	require.NoError(t, NewProductoRepository(db).Create(ctx, producto))

	pedido := &model.Pedido{ClienteID: cliente.ID, Estado: model.EstadoPendiente}
	require.NoError(t, repo.Create(ctx, pedido))

	item := &model.ItemProductoPedido{
		PedidoID: pedido.ID, ProductoID: producto.ID,
		Cantidad: 1, PrecioUnitario: decimal.NewFromInt(100),
	}
	require.NoError(t, repo.AddItemProducto(ctx, item))

	// The same product cannot appear twice in one pedido.
	dup := &model.ItemProductoPedido{
		PedidoID: pedido.ID, ProductoID: producto.ID,
		Cantidad: 2, PrecioUnitario: decimal.NewFromInt(100),
	}
	err := repo.AddItemProducto(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPedidoUpdateNoTocaFecha(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	cliente := crearCliente(t, db, "Acme SA")
	pedido := &model.Pedido{ClienteID: cliente.ID, Estado: model.EstadoPendiente}
	require.NoError(t, repo.Create(ctx, pedido))

	original := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(pedido).UpdateColumn("fecha_pedido", original).Error)

	pedido.Estado = model.EstadoCompletado
	pedido.Observaciones = "cerrado"
	pedido.FechaPedido = time.Now() // would drift if the column were writable
	require.NoError(t, repo.Update(ctx, pedido))

	releido, err := repo.FindByID(ctx, pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCompletado, releido.Estado)
	assert.True(t, releido.FechaPedido.Equal(original), "fecha = %s", releido.FechaPedido)
}

func TestCountPorEstado(t *testing.T) {
	db := setupDB(t)
	repo := NewPedidoRepository(db)
	ctx := context.Background()

	cliente := crearCliente(t, db, "Acme SA")
	for _, e := range []model.EstadoPedido{
		model.EstadoPendiente, model.EstadoPendiente, model.EstadoCompletado,
	} {
		require.NoError(t, repo.Create(ctx, &model.Pedido{ClienteID: cliente.ID, Estado: e}))
	}

	conteo, err := repo.CountPorEstado(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, conteo[model.EstadoPendiente])
	assert.EqualValues(t, 1, conteo[model.EstadoCompletado])
	assert.Zero(t, conteo[model.EstadoCancelado])
}

// ── Categoria ────────────────────────────────────────────────────────────────

func TestCategoriaDeleteCascadaProductos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	categoriaRepo := NewCategoriaRepository(db)

	categoria := &model.CategoriaProducto{Nombre: "Almacenamiento"}
	require.NoError(t, categoriaRepo.Create(ctx, categoria))

	producto := &model.ProductoHardware{
		Nombre: "SSD", Tipo: model.TipoDiscoDuro, Precio: decimal.NewFromInt(100),
		CategoriaID: &categoria.ID, Activo: true,
	}
	require.NoError(t, NewProductoRepository(db).Create(ctx, producto))

	require.NoError(t, categoriaRepo.Delete(ctx, categoria.ID))

	var n int64
	db.Model(&model.ProductoHardware{}).Count(&n)
	assert.Zero(t, n)

	_, err := categoriaRepo.FindByID(ctx, categoria.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ── Usuario ──────────────────────────────────────────────────────────────────

func TestUsuarioSoftDelete(t *testing.T) {
	db := setupDB(t)
	repo := NewUsuarioRepository(db)
	ctx := context.Background()

	u := &model.Usuario{Username: "operador1", Nombre: "Op", PasswordHash: "x", Rol: "operador", Activo: true}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SoftDelete(ctx, u.ID))

	_, err := repo.FindByUsername(ctx, "operador1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	activos, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	require.NoError(t, repo.Reactivar(ctx, u.ID))
	_, err = repo.FindByUsername(ctx, "operador1")
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.SoftDelete(ctx, uuid.New()), gorm.ErrRecordNotFound)
}
