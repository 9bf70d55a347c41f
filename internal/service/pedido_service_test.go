package service

import (
	"context"
	"testing"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"
	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/dto"
	"github.com/FroiVa/Sipp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByIDConPedidos(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(ctx, id)
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clientes)), nil
}

func (r *stubClienteRepo) CountPresupuestoVencido(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.ProductoHardware
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.ProductoHardware)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.ProductoHardware) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoHardware, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.ProductoHardware, int64, error) {
	return nil, 0, nil
}

func (r *stubProductoRepo) FindByEmpresaID(_ context.Context, _ uuid.UUID) ([]model.ProductoHardware, error) {
	return nil, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.ProductoHardware) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) ReplaceCaracteristicas(_ context.Context, _ uuid.UUID, _ []model.CaracteristicaProductoHardware) error {
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.productos)), nil
}

// ── In-memory ServicioRepository stub ────────────────────────────────────────

type stubServicioRepo struct {
	servicios map[uuid.UUID]*model.ServicioInformatico
}

func newStubServicioRepo() *stubServicioRepo {
	return &stubServicioRepo{servicios: make(map[uuid.UUID]*model.ServicioInformatico)}
}

func (r *stubServicioRepo) Create(_ context.Context, s *model.ServicioInformatico) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ServicioInformatico, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubServicioRepo) List(_ context.Context, _ dto.ServicioFilter) ([]model.ServicioInformatico, int64, error) {
	return nil, 0, nil
}

func (r *stubServicioRepo) FindByEmpresaID(_ context.Context, _ uuid.UUID) ([]model.ServicioInformatico, error) {
	return nil, nil
}

func (r *stubServicioRepo) Update(_ context.Context, s *model.ServicioInformatico) error {
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) ReplaceTipos(_ context.Context, _ uuid.UUID, _ []model.TipoServicio) error {
	return nil
}

func (r *stubServicioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.servicios, id)
	return nil
}

func (r *stubServicioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.servicios)), nil
}

// ── In-memory PedidoRepository stub ──────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.ItemsProductos {
		if p.ItemsProductos[i].ID == uuid.Nil {
			p.ItemsProductos[i].ID = uuid.New()
		}
		p.ItemsProductos[i].PedidoID = p.ID
	}
	for i := range p.ItemsServicios {
		if p.ItemsServicios[i].ID == uuid.Nil {
			p.ItemsServicios[i].ID = uuid.New()
		}
		p.ItemsServicios[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	return nil, 0, nil
}

func (r *stubPedidoRepo) FindByRange(_ context.Context, _, _ string) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado model.EstadoPedido) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPedidoRepo) AddItemProducto(_ context.Context, item *model.ItemProductoPedido) error {
	p, ok := r.pedidos[item.PedidoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	p.ItemsProductos = append(p.ItemsProductos, *item)
	return nil
}

func (r *stubPedidoRepo) AddItemServicio(_ context.Context, item *model.ItemServicioPedido) error {
	p, ok := r.pedidos[item.PedidoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	p.ItemsServicios = append(p.ItemsServicios, *item)
	return nil
}

func (r *stubPedidoRepo) RemoveItemProducto(_ context.Context, pedidoID, itemID uuid.UUID) (int64, error) {
	p, ok := r.pedidos[pedidoID]
	if !ok {
		return 0, nil
	}
	for i, item := range p.ItemsProductos {
		if item.ID == itemID {
			p.ItemsProductos = append(p.ItemsProductos[:i], p.ItemsProductos[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubPedidoRepo) RemoveItemServicio(_ context.Context, pedidoID, itemID uuid.UUID) (int64, error) {
	p, ok := r.pedidos[pedidoID]
	if !ok {
		return 0, nil
	}
	for i, item := range p.ItemsServicios {
		if item.ID == itemID {
			p.ItemsServicios = append(p.ItemsServicios[:i], p.ItemsServicios[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubPedidoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pedidos, id)
	return nil
}

func (r *stubPedidoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.pedidos)), nil
}

func (r *stubPedidoRepo) CountPorEstado(_ context.Context) (map[model.EstadoPedido]int64, error) {
	out := make(map[model.EstadoPedido]int64)
	for _, p := range r.pedidos {
		out[p.Estado]++
	}
	return out, nil
}

func (r *stubPedidoRepo) Recientes(_ context.Context, limit int) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0, limit)
	for _, p := range r.pedidos {
		if len(out) == limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type pedidoFixture struct {
	svc      PedidoService
	clientes *stubClienteRepo
	prods    *stubProductoRepo
	servs    *stubServicioRepo
	pedidos  *stubPedidoRepo

	cliente  *model.Cliente
	producto *model.ProductoHardware
	servicio *model.ServicioInformatico
}

func newPedidoFixture(t *testing.T) *pedidoFixture {
	t.Helper()
	f := &pedidoFixture{
		clientes: newStubClienteRepo(),
		prods:    newStubProductoRepo(),
		servs:    newStubServicioRepo(),
		pedidos:  newStubPedidoRepo(),
	}
	cfg := &config.Config{PageSizeDefault: 15, PageSizePedidos: 10}
	f.svc = NewPedidoService(f.pedidos, f.clientes, f.prods, f.servs, cfg)

	f.cliente = &model.Cliente{Nombre: "Acme SA", Encargado: "Laura"}
	require.NoError(t, f.clientes.Create(context.Background(), f.cliente))

	f.producto = &model.ProductoHardware{
		Nombre: "Disco SSD 1TB",
		Tipo:   model.TipoDiscoDuro,
		Precio: decimal.RequireFromString("150.00"),
		Activo: true,
	}
	require.NoError(t, f.prods.Create(context.Background(), f.producto))

	f.servicio = &model.ServicioInformatico{
		Nombre:              "Instalación de red",
		Duracion:            3,
		UnidadDuracion:      model.DuracionDias,
		Descripcion:         "Cableado y configuración",
		Precio:              decimal.RequireFromString("480.00"),
		EmpresaProveedoraID: uuid.New(),
		Activo:              true,
	}
	require.NoError(t, f.servs.Create(context.Background(), f.servicio))

	return f
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearPedidoSnapshotPrecio(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{
		ClienteID: f.cliente.ID.String(),
		ItemsProductos: []dto.ItemProductoRequest{
			{ProductoID: f.producto.ID.String(), Cantidad: 2},
		},
		ItemsServicios: []dto.ItemServicioRequest{
			{ServicioID: f.servicio.ID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.ItemsProductos, 1)
	require.Len(t, resp.ItemsServicios, 1)

	// Omitted unit prices were copied from the current catalog price.
	assert.True(t, resp.ItemsProductos[0].PrecioUnitario.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, resp.ItemsServicios[0].PrecioUnitario.Equal(decimal.RequireFromString("480.00")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("780.00")), "total = %s", resp.Total)

	// A later catalog price change must not rewrite the stored snapshot.
	f.producto.Precio = decimal.RequireFromString("999.99")
	require.NoError(t, f.prods.Update(ctx, f.producto))

	pedidoID, _ := uuid.Parse(resp.ID)
	releido, err := f.svc.ObtenerPorID(ctx, pedidoID)
	require.NoError(t, err)
	assert.True(t, releido.ItemsProductos[0].PrecioUnitario.Equal(decimal.RequireFromString("150.00")))
}

func TestCrearPedidoPrecioExplicito(t *testing.T) {
	f := newPedidoFixture(t)

	precio := decimal.RequireFromString("120.00")
	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: f.cliente.ID.String(),
		ItemsProductos: []dto.ItemProductoRequest{
			{ProductoID: f.producto.ID.String(), Cantidad: 3, PrecioUnitario: &precio},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.ItemsProductos[0].PrecioUnitario.Equal(precio))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("360.00")))
}

func TestCrearPedidoProductoInactivo(t *testing.T) {
	f := newPedidoFixture(t)
	f.producto.Activo = false
	require.NoError(t, f.prods.Update(context.Background(), f.producto))

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: f.cliente.ID.String(),
		ItemsProductos: []dto.ItemProductoRequest{
			{ProductoID: f.producto.ID.String(), Cantidad: 1},
		},
	})
	require.Error(t, err)
	var ve *apierror.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCrearPedidoClienteInexistente(t *testing.T) {
	f := newPedidoFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: uuid.NewString(),
	})
	require.Error(t, err)
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCambiarEstado(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{ClienteID: f.cliente.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)

	pedidoID, _ := uuid.Parse(resp.ID)

	actualizado, err := f.svc.CambiarEstado(ctx, pedidoID, "confirmado")
	require.NoError(t, err)
	assert.Equal(t, "confirmado", actualizado.Estado)
	assert.Equal(t, "Confirmado", actualizado.EstadoEtiqueta)

	_, err = f.svc.CambiarEstado(ctx, pedidoID, "enviado")
	require.Error(t, err)
	var ve *apierror.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAgregarYEliminarItems(t *testing.T) {
	f := newPedidoFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{ClienteID: f.cliente.ID.String()})
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())

	pedidoID, _ := uuid.Parse(resp.ID)

	conItem, err := f.svc.AgregarItemProducto(ctx, pedidoID, dto.ItemProductoRequest{
		ProductoID: f.producto.ID.String(),
		Cantidad:   2,
	})
	require.NoError(t, err)
	require.Len(t, conItem.ItemsProductos, 1)
	assert.True(t, conItem.Total.Equal(decimal.RequireFromString("300.00")))

	itemID, _ := uuid.Parse(conItem.ItemsProductos[0].ID)
	require.NoError(t, f.svc.EliminarItemProducto(ctx, pedidoID, itemID))

	vacio, err := f.svc.ObtenerPorID(ctx, pedidoID)
	require.NoError(t, err)
	assert.Empty(t, vacio.ItemsProductos)

	err = f.svc.EliminarItemProducto(ctx, pedidoID, uuid.New())
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
