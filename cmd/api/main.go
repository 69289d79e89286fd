package main

import (
	"context"
	"log"
	"time"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/config"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/db"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/http/handler"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/queue"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库连接
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Init(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres init failed: %v", err)
	}
	defer pool.Close()

	// 确保最小表结构存在
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema failed: %v", err)
	}

	// 初始化 Redis
	rdb, err := queue.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}
	defer rdb.Close()

	// 组装存储与服务
	taskRepo := repo.NewTaskRepo(pool)
	taskSvc := service.NewTaskService(taskRepo, rdb, cfg.TaskQueueName)

	taskHandler := handler.NewTaskHandler(taskSvc)
	paperHandler := handler.NewPaperHandler(repo.NewPaperRepo(pool))
	authorHandler := handler.NewAuthorHandler(repo.NewAuthorRepo(pool))
	institutionHandler := handler.NewInstitutionHandler(repo.NewInstitutionRepo(pool))
	journalHandler := handler.NewJournalHandler(repo.NewJournalRepo(pool))
	conferenceHandler := handler.NewConferenceHandler(repo.NewConferenceRepo(pool))
	statsHandler := handler.NewStatsHandler(taskRepo)
	healthHandler := handler.NewHealthHandler(pool, rdb)

	engine := gin.Default()

	// 健康与就绪
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET("/readyz", healthHandler.Readyz)

	api := engine.Group("/api/v1")
	{
		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.GET("/papers", paperHandler.List)
		api.POST("/papers", paperHandler.Create)
		api.GET("/papers/:id", paperHandler.Get)
		api.PUT("/papers/:id", paperHandler.Update)
		api.DELETE("/papers/:id", paperHandler.Delete)

		api.GET("/authors", authorHandler.List)
		api.POST("/authors", authorHandler.Create)
		api.GET("/authors/:id", authorHandler.Get)
		api.PUT("/authors/:id", authorHandler.Update)
		api.DELETE("/authors/:id", authorHandler.Delete)

		api.GET("/institutions", institutionHandler.List)
		api.POST("/institutions", institutionHandler.Create)
		api.GET("/institutions/:id", institutionHandler.Get)
		api.PUT("/institutions/:id", institutionHandler.Update)
		api.DELETE("/institutions/:id", institutionHandler.Delete)

		api.GET("/journals", journalHandler.List)
		api.POST("/journals", journalHandler.Create)
		api.GET("/journals/:id", journalHandler.Get)
		api.PUT("/journals/:id", journalHandler.Update)
		api.DELETE("/journals/:id", journalHandler.Delete)

		api.GET("/conferences", conferenceHandler.List)
		api.POST("/conferences", conferenceHandler.Create)
		api.GET("/conferences/:id", conferenceHandler.Get)
		api.PUT("/conferences/:id", conferenceHandler.Update)
		api.DELETE("/conferences/:id", conferenceHandler.Delete)

		api.GET("/stats/tasks", statsHandler.TaskStats)
	}

	log.Printf("starting api server on :%s", cfg.HTTPPort)
	if err := engine.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
