package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/cart"
	"github.com/Theo-jobs/family-ordering-system/checkout"
	"github.com/Theo-jobs/family-ordering-system/config"
	"github.com/Theo-jobs/family-ordering-system/handlers"
	"github.com/Theo-jobs/family-ordering-system/notify"
	"github.com/Theo-jobs/family-ordering-system/rabbitmq"
	"github.com/Theo-jobs/family-ordering-system/repository"
	"github.com/Theo-jobs/family-ordering-system/service"
)

func main() {
	cfg := config.LoadConfig()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Infof("Starting Family Ordering Service on port %s", cfg.Port)

	// Set Gin mode
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Postgres is the system of record; refuse to start without it.
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Postgres")
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.WithError(err).Fatal("failed to ensure database schema")
	}

	// Redis only holds cart snapshots; degrade to in-memory carts when
	// it is unreachable.
	var cartStore cart.Store
	var themeStore handlers.ThemeStore
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.WithError(err).Warn("Redis unreachable, carts will not survive restarts")
		mem := repository.NewMemoryCartStore(log)
		cartStore, themeStore = mem, mem
	} else {
		cancel()
		redisStore := repository.NewRedisCartStore(rdb, log)
		cartStore, themeStore = redisStore, redisStore
	}

	center := notify.NewCenter()
	carts := cart.NewManager(cartStore, center)

	dishRepo := repository.NewDishRepo(pool)
	orderRepo := repository.NewOrderRepo(pool)
	reviewRepo := repository.NewReviewRepo(pool)
	categoryRepo := repository.NewCategoryRepo(pool)

	orderService := &service.OrderService{
		Dishes: dishRepo,
		Orders: orderRepo,
		Log:    log,
	}

	// Kitchen queue is optional; checkout still works without it.
	var announcer checkout.OrderAnnouncer
	channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, log)
	if err != nil {
		log.WithError(err).Warn("RabbitMQ unavailable, orders will not reach the kitchen queue")
	} else {
		defer channelPool.Close()
		announcer = rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue, log)
	}

	coordinator := &checkout.Coordinator{
		Carts:     carts,
		Orders:    orderService,
		Announcer: announcer,
		Notify:    center,
		Log:       log,
	}

	cartHandler := handlers.NewCartHandler(carts, log)
	checkoutHandler := handlers.NewCheckoutHandler(coordinator, log)
	dishHandler := handlers.NewDishHandler(dishRepo, reviewRepo, log)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, log)
	orderHandler := handlers.NewOrderHandler(orderRepo, orderService, log)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, orderRepo, log)
	notificationHandler := handlers.NewNotificationHandler(center)
	preferenceHandler := handlers.NewPreferenceHandler(themeStore, log)

	// Setup router
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})

		api.GET("/categories", categoryHandler.ListCategories)

		api.GET("/dishes", dishHandler.ListDishes)
		api.GET("/dishes/:id", dishHandler.GetDish)
		api.POST("/dishes", dishHandler.CreateDish)
		api.PUT("/dishes/:id", dishHandler.UpdateDish)
		api.DELETE("/dishes/:id", dishHandler.DeleteDish)

		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.POST("/orders", orderHandler.CreateOrder)
		api.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		api.DELETE("/orders/:id", orderHandler.DeleteOrder)

		api.GET("/reviews", reviewHandler.ListReviews)
		api.GET("/reviews/dish/:id", reviewHandler.ListByDish)
		api.GET("/reviews/order/:id", reviewHandler.ListByOrder)
		api.POST("/reviews", reviewHandler.CreateReview)
		api.PUT("/reviews/:id", reviewHandler.UpdateReview)
		api.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PUT("/items/:dishId", cartHandler.UpdateItem)
			cartGroup.DELETE("/items/:dishId", cartHandler.RemoveItem)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/checkout", checkoutHandler.Checkout)
		}

		api.GET("/notifications", notificationHandler.GetNotifications)
		api.GET("/preferences/theme", preferenceHandler.GetTheme)
		api.PUT("/preferences/theme", preferenceHandler.PutTheme)
	}

	log.Fatal(router.Run(":" + cfg.Port))
}
