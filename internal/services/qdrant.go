package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// DocKind selects the collection a document is stored in.
type DocKind string

const (
	DocKindCV DocKind = "cv"
	DocKindJD DocKind = "jd"
)

type QdrantService interface {
	InitCollections(ctx context.Context) error
	// UpsertDocument stores one vector and returns its point ID.
	UpsertDocument(ctx context.Context, kind DocKind, doc VectorDocument) (string, error)
	// SearchSimilar returns points above minScore, excluding excludeSourceID.
	SearchSimilar(ctx context.Context, kind DocKind, vector []float32, limit int, minScore float32, excludeSourceID string) ([]SearchResult, error)
	DeleteBySource(ctx context.Context, kind DocKind, sourceID string) error
}

// VectorDocument is the payload stored next to a vector. SourceID is the
// analysis ID for pipeline documents and a file name for seeded ones.
type VectorDocument struct {
	SourceID string
	Title    string
	Text     string
	Vector   []float32
}

type SearchResult struct {
	ID       string
	SourceID string
	Title    string
	Score    float32
	Text     string
	DocType  string
}

type qdrantService struct {
	client      *qdrant.Client
	collections map[DocKind]string
	vectorSize  uint64
	log         *zap.Logger
}

type QdrantConfig struct {
	URL          string
	APIKey       string
	CVCollection string
	JDCollection string
	VectorSize   uint64
}

func NewQdrantService(cfg QdrantConfig, log *zap.Logger) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	vectorSize := cfg.VectorSize
	if vectorSize == 0 {
		vectorSize = 768
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &qdrantService{
		client: client,
		collections: map[DocKind]string{
			DocKindCV: cfg.CVCollection,
			DocKindJD: cfg.JDCollection,
		},
		vectorSize: vectorSize,
		log:        log,
	}, nil
}

func (q *qdrantService) collection(kind DocKind) (string, error) {
	name, ok := q.collections[kind]
	if !ok || name == "" {
		return "", fmt.Errorf("no collection configured for %q", kind)
	}
	return name, nil
}

// InitCollections implements QdrantService.
func (q *qdrantService) InitCollections(ctx context.Context) error {
	for _, kind := range []DocKind{DocKindCV, DocKindJD} {
		name, err := q.collection(kind)
		if err != nil {
			return err
		}

		exists, err := q.client.CollectionExists(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check collection %s: %w", name, err)
		}

		if exists {
			q.log.Info("✅ Collection already exists", zap.String("collection", name))
			continue
		}

		err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     q.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}

		q.log.Info("✅ Qdrant collection created", zap.String("collection", name), zap.Uint64("vector_size", q.vectorSize))
	}
	return nil
}

// UpsertDocument implements QdrantService.
func (q *qdrantService) UpsertDocument(ctx context.Context, kind DocKind, doc VectorDocument) (string, error) {
	name, err := q.collection(kind)
	if err != nil {
		return "", err
	}

	pointID := uuid.NewString()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID),
		Vectors: qdrant.NewVectors(doc.Vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"source_id": doc.SourceID,
			"doc_type":  string(kind),
			"title":     doc.Title,
			"text":      doc.Text,
		}),
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert point: %w", err)
	}

	return pointID, nil
}

// SearchSimilar implements QdrantService.
func (q *qdrantService) SearchSimilar(ctx context.Context, kind DocKind, vector []float32, limit int, minScore float32, excludeSourceID string) ([]SearchResult, error) {
	name, err := q.collection(kind)
	if err != nil {
		return nil, err
	}

	var filter *qdrant.Filter
	if excludeSourceID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("source_id", excludeSourceID),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		ScoreThreshold: qdrant.PtrOf(minScore),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		results = append(results, SearchResult{
			ID:       point.GetId().GetUuid(),
			SourceID: payloadString(payload, "source_id"),
			Title:    payloadString(payload, "title"),
			Score:    point.Score,
			Text:     payloadString(payload, "text"),
			DocType:  payloadString(payload, "doc_type"),
		})
	}

	return results, nil
}

// DeleteBySource implements QdrantService.
func (q *qdrantService) DeleteBySource(ctx context.Context, kind DocKind, sourceID string) error {
	name, err := q.collection(kind)
	if err != nil {
		return err
	}

	_, err = q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: name,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("source_id", sourceID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}

	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
