package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"product-catalog-service/internal/handlers"
	"product-catalog-service/internal/logger"
)

// NewRouter crea el engine de gin con los middlewares de la aplicación
func NewRouter(log zerolog.Logger) *gin.Engine {
	// Los PATCH se decodifican a map[string]any; json.Number conserva los enteros grandes
	binding.EnableDecoderUseNumber = true

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestID(), logger.GinLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func RegisterRoutes(router *gin.Engine, products *handlers.ProductHandler, categories *handlers.CategoryHandler) {
	router.GET("/products", products.GetProducts)
	router.POST("/products", products.CreateProduct)
	router.GET("/products/:id", products.GetProductByID)
	router.PATCH("/products/:id", products.UpdateProduct)
	router.DELETE("/products/:id", products.DeleteProduct)
	router.POST("/products/:id/stock", products.AdjustStock)
	router.PUT("/products/:id/stock", products.SetStock)
	router.PUT("/products/:id/price", products.SetPrice)

	category := router.Group("/category")
	{
		category.GET("/:title", categories.GetProductsInCategory)
		category.POST("/:title", categories.AddProductToCategory)
		category.DELETE("/:title", categories.RemoveProductFromCategory)
	}

	cats := router.Group("/categories")
	{
		cats.GET("", categories.ListCategories)
		cats.POST("", categories.CreateCategory)
		cats.GET("/:id", categories.GetCategory)
		cats.PUT("/:title", categories.UpdateCategory)
		cats.DELETE("/:id", categories.DeleteCategory)
	}
}
