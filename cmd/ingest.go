package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"

	"washrag/src/core/chunker"
	"washrag/src/core/ingest"
	"washrag/src/core/textproc"
	"washrag/src/fsutil"
	"washrag/src/infrastructure/integrations/ollama"
	"washrag/src/infrastructure/log"
	"washrag/src/storage/weaviate"
)

var (
	ingestInputDir  string
	ingestOutputDir string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a directory of PDF and HTML documents",
	Long:  `The ingest command extracts, chunks, and embeds every supported document in a directory, then indexes the chunks for retrieval. Chunk manifests are optionally written to a local directory.`,
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestInputDir, "input", "", "directory containing documents to ingest")
	ingestCmd.Flags().StringVar(&ingestOutputDir, "output", "", "directory to write chunk manifests to (optional)")
	ingestCmd.MarkFlagRequired("input")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fs := fsutil.NewLocalFileStore()

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
	if err := wsdk.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure weaviate schema: %v", err)
	}

	// Initialize the ingestion pipeline
	detector := textproc.NewDetector(
		textproc.WithQuestionThreshold(viper.GetFloat64("rag.question_bangla_threshold")),
		textproc.WithChunkThreshold(viper.GetFloat64("rag.chunk_bangla_threshold")),
	)
	ck := chunker.New(detector, viper.GetInt("rag.chunk_size"), viper.GetInt("rag.chunk_overlap"))

	var sink ingest.ChunkSink
	if ingestOutputDir != "" {
		sink = ingest.NewFileSink(ingestOutputDir, fs)
	}
	ingestService := ingest.NewService(ck, provider, wsdk, sink)

	files, err := fs.ListFiles(ingestInputDir)
	if err != nil {
		return fmt.Errorf("failed to list input directory: %v", err)
	}

	bar := progressbar.Default(int64(len(files)))

	var ingested, skipped int
	for _, path := range files {
		bar.Add(1)

		fileType, err := ingest.FileTypeFromName(path)
		if err != nil {
			log.Info("Skipping unsupported file", "path", path)
			skipped++
			continue
		}

		data, err := fs.ReadFile(path)
		if err != nil {
			log.Error(err, "Failed to read file", "path", path)
			skipped++
			continue
		}

		documentID := ingest.DocumentID(path)
		records, err := ingestService.IngestDocument(ctx, documentID, path, data, fileType)
		if err != nil {
			log.Error(err, "Failed to ingest document", "path", path)
			skipped++
			continue
		}

		log.Info("Ingested document", "document_id", documentID, "chunks", len(records))
		ingested++
	}

	log.Info("Ingestion complete", "ingested", ingested, "skipped", skipped)
	return nil
}
