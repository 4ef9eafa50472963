package routes

import (
	"os_escolpi/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceOrders = "/service-orders"
	PathSuggestions   = "/suggestions"
)

func addServiceOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.ServiceOrderHandler, streamHandler *handlers.StreamHandler) {
	orders := rg.Group(PathServiceOrders)
	{
		orders.GET("", orderHandler.ListServiceOrders)
		orders.POST("", orderHandler.CreateServiceOrder)
		// The stream route must precede the :id routes for gin's tree.
		orders.GET("/stream", streamHandler.StreamServiceOrders)
		orders.PUT("/:id", orderHandler.UpdateServiceOrder)
		orders.PATCH("/:id/status", orderHandler.UpdateServiceOrderStatus)
		orders.DELETE("/:id", orderHandler.DeleteServiceOrder)
	}
}

func addSuggestionRoutes(rg *gin.RouterGroup, suggestionHandler *handlers.SuggestionHandler) {
	suggestions := rg.Group(PathSuggestions)
	{
		suggestions.POST("/dll-name", suggestionHandler.SuggestDLLName)
		suggestions.POST("/client-name", suggestionHandler.SuggestClientName)
	}
}
