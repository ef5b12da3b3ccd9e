package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpHandler "washrag/handler/http"
	"washrag/src/core/qa"
	"washrag/src/core/textproc"
	"washrag/src/infrastructure/integrations/ollama"
	jobctrl "washrag/src/infrastructure/job"
	"washrag/src/infrastructure/log"
	"washrag/src/storage/minioctrl"
	"washrag/src/storage/postgres/documentctrl"
	"washrag/src/storage/weaviate"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question answering API server",
	Long:  `The serve command starts an HTTP server that answers questions over the ingested document corpus and accepts new document uploads`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) {
	// Initialize PostgreSQL connection
	host := viper.GetString("postgres.host")
	user := viper.GetString("postgres.user")
	password := viper.GetString("postgres.password")
	dbname := viper.GetString("postgres.db")
	port := viper.GetString("postgres.port")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error(err, "Failed to connect to database")
		return
	}

	documentService, err := documentctrl.NewDocumentService(db)
	if err != nil {
		log.Error(err, "Failed to create document service")
		return
	}

	// Initialize MinioService and make sure the buckets exist
	minioService, err := minioctrl.NewMinioService(
		viper.GetString("minio.endpoint"),
		viper.GetString("minio.access_key"),
		viper.GetString("minio.secret_key"),
		viper.GetBool("minio.use_ssl"),
	)
	if err != nil {
		log.Error(err, "Failed to create minio service")
		return
	}
	for _, bucket := range []string{minioctrl.DocumentsBucket, minioctrl.ChunksBucket} {
		if err := minioService.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Error(err, "Failed to ensure bucket exists", "bucket", bucket)
			return
		}
	}

	// Initialize Ollama client
	ollamaTimeout, err := time.ParseDuration(viper.GetString("ollama.timeout"))
	if err != nil {
		ollamaTimeout = 120 * time.Second
	}
	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: ollamaTimeout,
	})
	provider := ollama.NewProvider(
		oc,
		viper.GetString("rag.embedding_model"),
		viper.GetString("rag.generation_model"),
		viper.GetFloat64("rag.temperature"),
		viper.GetInt("rag.max_output_tokens"),
	)

	// Initialize Weaviate client and schema
	wc := weaviateClient.New(weaviateClient.Config{
		Host:   viper.GetString("weaviate.host"),
		Scheme: viper.GetString("weaviate.scheme"),
	})
	wsdk := weaviate.NewSDK(wc)
	if err := wsdk.EnsureSchema(context.Background()); err != nil {
		log.Error(err, "Failed to ensure weaviate schema")
		return
	}

	// Initialize language detector and QA service
	detector := textproc.NewDetector(
		textproc.WithQuestionThreshold(viper.GetFloat64("rag.question_bangla_threshold")),
		textproc.WithChunkThreshold(viper.GetFloat64("rag.chunk_bangla_threshold")),
	)
	qaService := qa.NewService(provider, provider, wsdk, detector)

	// Initialize AMQP publisher for ingestion jobs
	amqpPublisher, err := amqp.NewPublisher(
		amqp.NewDurableQueueConfig(viper.GetString("amqp.url")),
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		log.Error(err, "Failed to create amqp publisher")
		return
	}
	defer amqpPublisher.Close()

	// The server only enqueues jobs; the worker process executes them
	jobRepo := jobctrl.NewPostgresJobRepository(db)
	jobService := jobctrl.NewJobService(amqpPublisher, jobRepo, watermill.NewStdLogger(false, false), nil)

	// Initialize HTTP handler
	handler := httpHandler.NewHandler(
		qaService,
		documentService,
		minioService,
		jobService,
		oc,
		wsdk,
		viper.GetInt("rag.default_k"),
		viper.GetInt("rag.search_k"),
	)

	// Setup gin router
	r := gin.Default()

	// Register routes
	handler.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		timeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Get underlying *sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		log.Error(err, "Failed to get underlying *sql.DB")
	} else {
		// Close database connection
		if err := sqlDB.Close(); err != nil {
			log.Error(err, "Error closing database connection")
		}
	}

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
