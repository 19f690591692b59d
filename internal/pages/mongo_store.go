package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/identity"
)

// DefaultMongoCollection is used when no collection name is configured.
const DefaultMongoCollection = "page_documents"

// MongoStore keeps one MongoDB document per tenant page.
type MongoStore struct {
	collection *mongo.Collection
	timeout    time.Duration
}

var _ BatchStore = (*MongoStore)(nil)

// mongoDocument is the stored shape; _id is the deterministic page id.
type mongoDocument struct {
	ID         string          `bson:"_id"`
	TenantID   string          `bson:"tenant_id"`
	Slug       string          `bson:"slug"`
	Version    int             `bson:"version"`
	Definition PageDefinition  `bson:"definition"`
	Variants   VariantPayloads `bson:"variants,omitempty"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}

// NewMongoStore wraps an existing collection.
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection, timeout: 10 * time.Second}
}

// ConnectMongoStore dials uri and returns a store over database.collection
// along with the client so callers can disconnect it.
func ConnectMongoStore(uri, database, collection string) (*MongoStore, *mongo.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, nil, fmt.Errorf("page store: mongo uri required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("page store: connect mongo: %w", err)
	}
	return NewMongoStore(client.Database(database).Collection(collection)), client, nil
}

// EnsureIndexes creates the unique (tenant_id, slug) index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Load(ctx context.Context, tenantID, slug string) (*PageDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stored mongoDocument
	filter := bson.M{"_id": identity.PageDocumentUUID(tenantID, slug).String()}
	if err := s.collection.FindOne(ctx, filter).Decode(&stored); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(tenantID, slug)
		}
		return nil, fmt.Errorf("page store: load %s/%s: %w", tenantID, slug, err)
	}

	definition := make(PageDefinition, len(stored.Definition))
	for id, record := range stored.Definition {
		record.Data = plainData(record.Data)
		definition[id] = record
	}
	var payloads VariantPayloads
	if stored.Variants != nil {
		payloads = make(VariantPayloads, len(stored.Variants))
		for blockType, byVariant := range stored.Variants {
			payloads[blockType] = make(map[string]blocks.Data, len(byVariant))
			for variantID, data := range byVariant {
				payloads[blockType][variantID] = plainData(data)
			}
		}
	}
	return &PageDocument{
		TenantID:   stored.TenantID,
		Slug:       stored.Slug,
		Version:    stored.Version,
		Definition: definition,
		Variants:   payloads,
		UpdatedAt:  stored.UpdatedAt,
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc *PageDocument) error {
	if doc == nil {
		return ErrDocumentRequired
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.replace(ctx, doc)
}

// SaveAll replaces every document inside one multi-document transaction.
// The server must run as a replica set.
func (s *MongoStore) SaveAll(ctx context.Context, docs ...*PageDocument) error {
	for _, doc := range docs {
		if doc == nil {
			return ErrDocumentRequired
		}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("page store: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		for _, doc := range docs {
			if err := s.replace(ctx, doc); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (s *MongoStore) replace(ctx context.Context, doc *PageDocument) error {
	id := identity.PageDocumentUUID(doc.TenantID, doc.Slug).String()
	stored := mongoDocument{
		ID:         id,
		TenantID:   doc.TenantID,
		Slug:       doc.Slug,
		Version:    doc.Version,
		Definition: doc.Definition.Clone(),
		Variants:   doc.Variants.Clone(),
		UpdatedAt:  doc.UpdatedAt,
	}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, stored, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("page store: save %s/%s: %w", doc.TenantID, doc.Slug, err)
	}
	return nil
}

// plainData converts nested BSON documents and arrays decoded into
// interface values back to maps and slices.
func plainData(data blocks.Data) blocks.Data {
	if data == nil {
		return nil
	}
	out := make(blocks.Data, len(data))
	for key, value := range data {
		out[key] = plainValue(value)
	}
	return out
}

func plainValue(value any) any {
	switch typed := value.(type) {
	case bson.D:
		out := make(map[string]any, len(typed))
		for _, elem := range typed {
			out[elem.Key] = plainValue(elem.Value)
		}
		return out
	case bson.M:
		return plainData(typed)
	case map[string]any:
		return plainData(typed)
	case bson.A:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plainValue(item)
		}
		return out
	default:
		return value
	}
}
