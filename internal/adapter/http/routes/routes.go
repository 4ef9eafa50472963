package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	_ "os_escolpi/docs" // This will be auto-generated
	"os_escolpi/internal/adapter/http/handlers"
	repository2 "os_escolpi/internal/adapter/persistence/repository"
	"os_escolpi/internal/auth"
	"os_escolpi/internal/errbus"
	"os_escolpi/internal/infrastructure/ai"
	"os_escolpi/internal/infrastructure/database"
	"os_escolpi/internal/infrastructure/notification"
	"os_escolpi/internal/infrastructure/streams"
	"os_escolpi/internal/realtime"
	"os_escolpi/internal/usecase"
	"os_escolpi/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	identity := auth.NewStaticProviderFromEnv()
	feed := realtime.NewBroadcaster()
	bus := errbus.NewBus()

	repo := repository2.NewServiceOrderDynamoRepository(ddb, identity.Scope(), feed)
	serviceOrderUseCase := usecase.NewServiceOrderUseCase(repo, bus)

	engine := realtime.NewEngine(repo, feed, bus, identity)
	hub := realtime.NewHub(engine, suppressionWindowFromEnv())

	// Process-level notification tap: creations land in the server log even
	// with no stream session connected.
	logNotifier := realtime.NewNotifier(notification.LogSink{}, suppressionWindowFromEnv())
	if _, err := engine.Subscribe(context.Background(), func(snap realtime.Snapshot) {
		if !snap.Loading && snap.Err == nil {
			logNotifier.Observe(snap.Orders)
		}
	}); err != nil {
		log.Printf("Notification tap not started: %v", err)
	}

	// Cross-process change feed; local writes already publish in-process.
	if os.Getenv("CHANGE_FEED") == "streams" {
		poller := streams.NewPoller(ddb, database.ConnectDynamoDBStreams(), repo.TableName(), feed)
		go poller.Start(context.Background())
	}

	var suggestionGateway interfaces.ISuggestionGateway
	gw, err := ai.NewSuggestionGateway(os.Getenv("SUGGESTION_API_URL"), os.Getenv("SUGGESTION_API_KEY"))
	if err != nil {
		log.Printf("Suggestion gateway not configured: %v", err)
	} else {
		suggestionGateway = gw
	}

	serviceOrderHandler := handlers.NewServiceOrderHandler(serviceOrderUseCase, hub)
	streamHandler := handlers.NewStreamHandler(hub, bus)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionGateway)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addServiceOrderRoutes(v1, serviceOrderHandler, streamHandler)
	addSuggestionRoutes(v1, suggestionHandler)
}

func suppressionWindowFromEnv() time.Duration {
	raw := os.Getenv("NOTIFY_SUPPRESSION_WINDOW_MS")
	if raw == "" {
		return 0 // notifier default
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		log.Printf("Invalid NOTIFY_SUPPRESSION_WINDOW_MS=%q, using default", raw)
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
