package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/metrics"
)

// Handlers 全部 HTTP 处理器
type Handlers struct {
	Health   *HealthHandler
	Console  *ConsoleHandler
	Resource *ResourceHandler
	Review   *ReviewHandler
	Product  *ProductHandler
	Screen   *ScreenHandler
}

// RegisterRoutes 注册健康检查、指标和 /api/v1 路由
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	api.GET("/ping", h.Health.Ping)

	consoleGroup := api.Group("/console")
	{
		consoleGroup.GET("/routes", h.Console.Routes)
		consoleGroup.GET("/menu", h.Console.Menu)
	}
	api.GET("/kinds", h.Console.Kinds)
	api.GET("/kinds/:kind", h.Console.Kind)
	api.GET("/dashboard", h.Console.Dashboard)

	resources := api.Group("/resources/:kind")
	{
		resources.GET("", h.Resource.ListResources)
		resources.POST("", h.Resource.CreateResource)
		resources.GET("/stats", h.Resource.Stats)
		resources.GET("/export", h.Resource.Export)
		resources.GET("/:id", h.Resource.GetResource)
		resources.PUT("/:id", h.Resource.UpdateResource)
		resources.DELETE("/:id", h.Resource.DeleteResource)
		resources.POST("/:id/submit", h.Resource.SubmitResource)
		resources.POST("/:id/thumbnail", h.Resource.UploadThumbnail)
		resources.GET("/:id/history", h.Resource.History)
	}

	reviews := api.Group("/reviews/:kind")
	{
		reviews.GET("", h.Review.ListReviews)
		reviews.POST("/:id/approve", h.Review.Approve)
		reviews.POST("/:id/reject", h.Review.Reject)
	}

	api.GET("/products/:kind", h.Product.ListProducts)

	screens := api.Group("/screens")
	{
		screens.POST("", h.Screen.Open)
		screens.GET("/:sid", h.Screen.Get)
		screens.DELETE("/:sid", h.Screen.Close)
		screens.PUT("/:sid/query", h.Screen.Navigate)
		screens.POST("/:sid/detail/:id", h.Screen.OpenDetail)
		screens.POST("/:sid/edit/:id", h.Screen.OpenEdit)
		screens.POST("/:sid/approve/:id", h.Screen.OpenApprove)
		screens.POST("/:sid/add", h.Screen.OpenAdd)
		screens.POST("/:sid/back", h.Screen.Back)
		screens.PATCH("/:sid/form", h.Screen.UpdateForm)
		screens.POST("/:sid/save", h.Screen.SaveForm)
		screens.POST("/:sid/decide", h.Screen.Decide)
		screens.POST("/:sid/submit/:id", h.Screen.Submit)
		screens.DELETE("/:sid/items/:id", h.Screen.DeleteItem)
	}
}
