package main

import (
	"log"
	"os"
	"rewear/internal/db"
	"rewear/internal/handlers"
	"rewear/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("rewear_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	itemHandler := handlers.NewItemHandler()
	swapHandler := handlers.NewSwapHandler()
	userHandler := handlers.NewUserHandler()
	adminHandler := handlers.NewAdminHandler()

	// 公共路由 (Public Routes)
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/items", itemHandler.List)          // 可交换物品列表
		api.GET("/items/:pid", itemHandler.Detail)   // 物品详情
		api.GET("/users/:id", userHandler.Profile)   // 用户公开主页
	}

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)

		authorized.POST("/items", itemHandler.Create)        // 上架物品
		authorized.GET("/items/mine", itemHandler.Mine)      // 我的物品
		authorized.POST("/items/:pid/like", itemHandler.Like)

		authorized.POST("/swaps", swapHandler.Create)             // 发起交换/兑换
		authorized.GET("/swaps", swapHandler.List)                // 我的交换请求
		authorized.GET("/swaps/:sid", swapHandler.Detail)         // 交换详情
		authorized.POST("/swaps/:sid/accept", swapHandler.Accept) // 接受
		authorized.POST("/swaps/:sid/decline", swapHandler.Decline)
		authorized.POST("/swaps/:sid/cancel", swapHandler.Cancel)

		authorized.GET("/dashboard", userHandler.Dashboard)
		authorized.GET("/dashboard/activities", userHandler.Activities) // 流水
	}

	// 管理路由 (Admin Routes)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/items/pending", adminHandler.PendingItems)
		admin.POST("/items/:pid/approve", adminHandler.ApproveItem)
		admin.POST("/items/:pid/reject", adminHandler.RejectItem)
		admin.POST("/items/:pid/remove", adminHandler.RemoveItem)
		admin.POST("/users/:id/points", adminHandler.AdjustPoints)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
		admin.POST("/users/:id/unban", adminHandler.UnbanUser)
	}

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("ReWear server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
