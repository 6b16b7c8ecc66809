// Package knowledge implements vector-similarity retrieval against a
// Qdrant collection. Queries are embedded with the same provider that
// generates answers, then matched by cosine similarity.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// Embedder turns a query text into its embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever searches a Qdrant collection over gRPC.
type Retriever struct {
	points     qdrantclient.PointsClient
	conn       *grpc.ClientConn
	embedder   Embedder
	collection string
	logger     *slog.Logger
}

var _ domain.KnowledgeRetriever = (*Retriever)(nil)

// NewRetriever dials the Qdrant gRPC endpoint.
func NewRetriever(cfg config.KnowledgeConfig, embedder Embedder, logger *slog.Logger) (*Retriever, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s: %w", addr, err)
	}

	logger.Info("knowledge retriever ready", "addr", addr, "collection", cfg.Collection)

	return &Retriever{
		points:     qdrantclient.NewPointsClient(conn),
		conn:       conn,
		embedder:   embedder,
		collection: cfg.Collection,
		logger:     logger,
	}, nil
}

// Search embeds the query and returns the topK most similar snippets.
// An empty result slice means the collection had no match, which is a
// valid outcome, not an error.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]entity.Snippet, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	searchReq := &qdrantclient.SearchPoints{
		CollectionName: r.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{"text"},
				},
			},
		},
	}

	searchResp, err := r.points.Search(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	snippets := make([]entity.Snippet, 0, len(searchResp.Result))
	for _, point := range searchResp.Result {
		payload, ok := point.Payload["text"]
		if !ok {
			continue
		}
		text := payload.GetStringValue()
		if text == "" {
			continue
		}
		snippets = append(snippets, entity.Snippet{
			Text:  text,
			Score: point.GetScore(),
		})
	}

	r.logger.Debug("knowledge search completed", "matches", len(snippets))
	return snippets, nil
}

// Close releases the gRPC connection.
func (r *Retriever) Close() error {
	return r.conn.Close()
}
