package provider

import (
	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/queue"
	"github.com/libas-next/internal/repository"
	"github.com/libas-next/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	OrderRepo    repository.OrderRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	OrderService    *service.OrderService
	ReviewService   *service.ReviewService
}

// NewContainer builds the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CartRepo, c.WishlistRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.Config, c.OrderRepo, c.CartRepo, c.ProductRepo, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
}
