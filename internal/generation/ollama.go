package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaGenerator calls a local or remote Ollama server.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator creates an Ollama generator. An empty baseURL falls back
// to OLLAMA_HOST, then to the Ollama default address.
func NewOllamaGenerator(baseURL, model string, httpClient *http.Client) (*OllamaGenerator, error) {
	hostURL := envconfig.Host()
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama base URL %q: %w", baseURL, err)
		}
		hostURL = u
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaGenerator{
		client: api.NewClient(hostURL, httpClient),
		model:  model,
	}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	options := map[string]interface{}{}
	if opts.Temperature > 0 {
		options["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}
	stream := false
	req := api.GenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}

	var sb strings.Builder
	err := g.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := sb.WriteString(resp.Response)
		return err
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return "", newProviderError("ollama", statusErr.StatusCode, err)
		}
		return "", newProviderError("ollama", 0, err)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("ollama: %w", ErrEmptyOutput)
	}
	return sb.String(), nil
}

func (g *OllamaGenerator) Name() string { return "ollama/" + g.model }
