package router

import (
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/cache"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/config"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/handler"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/middleware"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/permission"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/service"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/session"

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

	// ── Infrastructure ───────────────────────────────────────────────────────
	sessions := session.NewRedisStore(rdb)
	views := cache.NewQueryCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewCashMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, sessions)
	productSvc := service.NewProductService(productRepo, saleRepo, views)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, views)
	cartSvc := service.NewCartService(productRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, movementRepo, cartSvc, views)
	cashSvc := service.NewCashService(movementRepo, views)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, saleRepo, movementRepo)
	dashboardSvc := service.NewDashboardService(saleRepo, productRepo, customerRepo, views)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc, cartSvc)
	cashH := handler.NewCashHandler(cashSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	authMW := middleware.SessionAuth(sessions)
	v1 := r.Group("/v1", authMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		// Catalog: reads for everyone, writes for admin/moderator
		v1.GET("/produtos", productsH.Listar)
		v1.GET("/produtos/:id", productsH.ObterPorID)
		prods := v1.Group("/produtos", middleware.RequireCapability(permission.CanManageProducts))
		{
			prods.POST("", productsH.Criar)
			prods.PUT("/:id", productsH.Atualizar)
			prods.DELETE("/:id", productsH.Excluir)
		}

		// Customers: open to every authenticated account
		clientes := v1.Group("/clientes")
		{
			clientes.GET("", customersH.Listar)
			clientes.GET("/:id", customersH.ObterPorID)
			clientes.POST("", customersH.Criar)
			clientes.PUT("/:id", customersH.Atualizar)
			clientes.DELETE("/:id", customersH.Excluir)
		}

		// Cart and sales: admin/moderator
		salesMW := middleware.RequireCapability(permission.CanManageSales)
		carrinho := v1.Group("/carrinho", salesMW)
		{
			carrinho.GET("", salesH.VerCarrinho)
			carrinho.DELETE("", salesH.LimparCarrinho)
			carrinho.POST("/itens", salesH.AdicionarItem)
			carrinho.PUT("/itens/:product_id", salesH.AtualizarItem)
			carrinho.DELETE("/itens/:product_id", salesH.RemoverItem)
		}
		vendas := v1.Group("/vendas", salesMW)
		{
			vendas.POST("", salesH.FecharVenda)
			vendas.GET("", salesH.Listar)
			vendas.GET("/:id", salesH.ObterPorID)
			vendas.DELETE("/:id", salesH.Excluir)
		}

		// Cash ledger: admin/moderator
		caixa := v1.Group("/caixa", salesMW)
		{
			caixa.GET("/movimentos", cashH.ListarMovimentos)
			caixa.POST("/despesas", cashH.RegistrarDespesa)
			caixa.PUT("/despesas/:id", cashH.AtualizarDespesa)
			caixa.DELETE("/despesas/:id", cashH.ExcluirDespesa)
			caixa.GET("/resumo", cashH.ResumoDiario)
		}

		// User administration: admin only
		usuarios := v1.Group("/usuarios", middleware.RequireCapability(permission.CanManageUsers))
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Criar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Excluir)
		}

		// Dashboard: open to every authenticated account
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardH.Stats)
			dashboard.GET("/atividade", dashboardH.AtividadeRecente)
		}
	}

	return r
}
