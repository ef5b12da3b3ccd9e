package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"

	"washrag/src/core/chunker"
	"washrag/src/core/ingest"
	"washrag/src/core/textproc"
	"washrag/src/infrastructure/integrations/ollama"
	jobctrl "washrag/src/infrastructure/job"
	"washrag/src/storage/minioctrl"
	"washrag/src/storage/postgres/documentctrl"
	"washrag/src/storage/weaviate"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background ingestion worker",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	// Initialize logger
	logger := watermill.NewStdLogger(false, false)

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
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get underlying *sql.DB for cleanup
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %v", err)
	}
	defer sqlDB.Close()

	// Initialize AMQP publisher
	amqpPublisher, err := amqp.NewPublisher(
		amqp.NewDurableQueueConfig(viper.GetString("amqp.url")),
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return err
	}
	defer amqpPublisher.Close()

	// Initialize AMQP subscriber
	subscriberConfig := amqp.NewDurableQueueConfig(viper.GetString("amqp.url"))
	subscriberConfig.Consume.NoRequeueOnNack = true
	amqpSubscriber, err := amqp.NewSubscriber(
		subscriberConfig,
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return err
	}
	defer amqpSubscriber.Close()

	// Initialize router
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return err
	}

	// Add middleware
	router.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: time.Second,
			Logger:          logger,
		}.Middleware,
	)

	// Initialize MinioService
	minioService, err := minioctrl.NewMinioService(
		viper.GetString("minio.endpoint"),
		viper.GetString("minio.access_key"),
		viper.GetString("minio.secret_key"),
		viper.GetBool("minio.use_ssl"),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize minio service: %v", err)
	}
	if err := minioService.EnsureBucketExists(context.Background(), minioctrl.ChunksBucket); err != nil {
		return fmt.Errorf("failed to ensure chunks bucket: %v", err)
	}

	// Initialize Ollama embedding provider
	ollamaTimeout, err := time.ParseDuration(viper.GetString("ollama.timeout"))
	if err != nil {
		ollamaTimeout = 120 * time.Second
	}
	ollamaClient := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: ollamaTimeout,
	})
	provider := ollama.NewProvider(
		ollamaClient,
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
		return fmt.Errorf("failed to ensure weaviate schema: %v", err)
	}

	// Initialize the ingestion pipeline
	detector := textproc.NewDetector(
		textproc.WithQuestionThreshold(viper.GetFloat64("rag.question_bangla_threshold")),
		textproc.WithChunkThreshold(viper.GetFloat64("rag.chunk_bangla_threshold")),
	)
	ck := chunker.New(detector, viper.GetInt("rag.chunk_size"), viper.GetInt("rag.chunk_overlap"))
	ingestService := ingest.NewService(ck, provider, wsdk, minioService)

	// Initialize DocumentService
	documentService, err := documentctrl.NewDocumentService(db)
	if err != nil {
		return fmt.Errorf("failed to initialize document service: %v", err)
	}

	// Initialize IngestionTask
	ingestionTask := jobctrl.NewIngestionTask(
		documentService,
		minioService,
		ingestService,
	)

	// Initialize job repository and service
	jobRepo := jobctrl.NewPostgresJobRepository(db)
	jobService := jobctrl.NewJobService(amqpPublisher, jobRepo, logger, ingestionTask)

	// Add handler for processing jobs
	router.AddNoPublisherHandler(
		"job_processor",
		"jobs",
		amqpSubscriber,
		func(msg *message.Message) error {
			return jobService.ProcessJobMessage(msg)
		},
	)

	// Run the router
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := router.Run(ctx)
		if err != nil {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	log.Println("Shutting down...")
	cancel()
	<-router.Running()
	log.Println("Router stopped")

	return nil
}
