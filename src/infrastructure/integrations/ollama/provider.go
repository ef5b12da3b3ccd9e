package ollama

import "context"

// Provider binds a Client to configured model names and generation options,
// implementing the embedding and generation capabilities consumed by the qa
// and ingest packages.
type Provider struct {
	client          *Client
	embeddingModel  string
	generationModel string
	temperature     float64
	maxTokens       int
}

// NewProvider creates a Provider. maxTokens bounds the generated output
// length; temperature controls sampling.
func NewProvider(client *Client, embeddingModel, generationModel string, temperature float64, maxTokens int) *Provider {
	return &Provider{
		client:          client,
		embeddingModel:  embeddingModel,
		generationModel: generationModel,
		temperature:     temperature,
		maxTokens:       maxTokens,
	}
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.client.GetEmbedding(ctx, p.embeddingModel, text)
}

func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return p.client.GetEmbeddings(ctx, p.embeddingModel, texts)
}

func (p *Provider) Generate(ctx context.Context, system, prompt string) (string, error) {
	return p.client.Generate(ctx, p.generationModel, system, prompt, map[string]interface{}{
		"temperature": p.temperature,
		"num_predict": p.maxTokens,
	})
}
