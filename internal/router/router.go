package router

import (
	"time"

	"github.com/FroiVa/Sipp/internal/config"
	"github.com/FroiVa/Sipp/internal/handler"
	"github.com/FroiVa/Sipp/internal/middleware"
	"github.com/FroiVa/Sipp/internal/repository"
	"github.com/FroiVa/Sipp/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, cfg)
	empresaSvc := service.NewEmpresaService(empresaRepo, productoRepo, servicioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, rdb, cfg)
	servicioSvc := service.NewServicioService(servicioRepo, rdb, cfg)
	pedidoSvc := service.NewPedidoService(pedidoRepo, clienteRepo, productoRepo, servicioRepo, cfg)
	consultaSvc := service.NewConsultaService(empresaRepo, productoRepo, servicioRepo, rdb)
	reporteSvc := service.NewReporteService(clienteRepo, productoRepo, servicioRepo, pedidoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	empresasH := handler.NewEmpresasHandler(empresaSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	consultasH := handler.NewConsultasHandler(consultaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — operador and administrador share the day-to-day
	// surface; destructive operations and user management are admin-only.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	lectura := middleware.RequireRole("operador", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes", lectura)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.GET("/:id/detalle", clientesH.ObtenerDetalle)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", admin, clientesH.Eliminar)

		empresas := v1.Group("/empresas", lectura)
		{
			empresas.POST("", empresasH.Crear)
			empresas.GET("", empresasH.Listar)
			empresas.GET("/:id", empresasH.ObtenerDetalle)
			empresas.PUT("/:id", empresasH.Actualizar)
			// Dependent-dropdown lookups
			empresas.GET("/:id/productos", consultasH.ProductosDeEmpresa)
			empresas.GET("/:id/servicios", consultasH.ServiciosDeEmpresa)
		}
		v1.DELETE("/empresas/:id", admin, empresasH.Eliminar)

		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.ObtenerPorID)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		productos := v1.Group("/productos", lectura)
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/tipos", productosH.Tipos)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
		}
		v1.DELETE("/productos/:id", admin, productosH.Eliminar)

		servicios := v1.Group("/servicios", lectura)
		{
			servicios.POST("", serviciosH.Crear)
			servicios.GET("", serviciosH.Listar)
			servicios.GET("/:id", serviciosH.ObtenerPorID)
			servicios.PUT("/:id", serviciosH.Actualizar)
		}
		v1.DELETE("/servicios/:id", admin, serviciosH.Eliminar)

		pedidos := v1.Group("/pedidos", lectura)
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/estados", pedidosH.Estados)
			pedidos.GET("/:id", pedidosH.ObtenerPorID)
			pedidos.PUT("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.POST("/:id/items/productos", pedidosH.AgregarItemProducto)
			pedidos.POST("/:id/items/servicios", pedidosH.AgregarItemServicio)
			pedidos.DELETE("/:id/items/productos/:itemId", pedidosH.EliminarItemProducto)
			pedidos.DELETE("/:id/items/servicios/:itemId", pedidosH.EliminarItemServicio)
		}
		v1.DELETE("/pedidos/:id", admin, pedidosH.Eliminar)

		// Price lookups that prefill a line item before it is saved
		v1.GET("/precios/productos/:id", lectura, consultasH.PrecioProducto)
		v1.GET("/precios/servicios/:id", lectura, consultasH.PrecioServicio)

		v1.GET("/dashboard", lectura, reportesH.Dashboard)
		v1.GET("/reportes/pedidos", lectura, reportesH.ReportePedidos)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
