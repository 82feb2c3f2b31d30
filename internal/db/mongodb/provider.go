// Package mongodb implements the document-provider contract with the
// official MongoDB driver. Queries are JSON filter documents rather than
// SQL; the generic Execute calls reject their input so a console query on a
// document connection fails inline instead of pretending to succeed.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/4nzor/dbrowse/internal/db"
	"github.com/4nzor/dbrowse/internal/models"
)

// Provider talks to a MongoDB database.
type Provider struct {
	client *mongo.Client
	dbname string
	cfg    models.ConnectionConfig
}

// New returns an unconnected provider.
func New() *Provider { return &Provider{} }

func (p *Provider) Connect(ctx context.Context, cfg models.ConnectionConfig) error {
	uri := buildURI(cfg)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return &db.ConnectionError{Name: cfg.Name, Err: err}
	}

	p.client = client
	p.dbname = cfg.Database
	p.cfg = cfg
	return nil
}

func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(context.Background())
	p.client = nil
	return err
}

var errNoSQL = errors.New("SQL not supported for document engine")

// Execute always fails; MongoDB has no SQL surface.
func (p *Provider) Execute(_ context.Context, query string, _ ...any) ([][]any, error) {
	return nil, &db.QueryError{Query: query, Err: errNoSQL}
}

// ExecuteWithColumns always fails; MongoDB has no SQL surface.
func (p *Provider) ExecuteWithColumns(_ context.Context, query string, _ ...any) ([][]any, []string, error) {
	return nil, nil, &db.QueryError{Query: query, Err: errNoSQL}
}

// ListObjects delegates to ListCollections; document engines have no schemas.
func (p *Provider) ListObjects(ctx context.Context, _ string) ([]models.SchemaObject, error) {
	return p.ListCollections(ctx)
}

// ListCollections returns the database's collections with data+index size,
// largest first.
func (p *Provider) ListCollections(ctx context.Context) ([]models.SchemaObject, error) {
	database := p.client.Database(p.dbname)
	names, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, &db.QueryError{Query: "listCollections", Err: err}
	}

	objects := make([]models.SchemaObject, 0, len(names))
	for _, name := range names {
		var stats bson.M
		res := database.RunCommand(ctx, bson.D{{Key: "collStats", Value: name}})
		size := int64(0)
		if err := res.Decode(&stats); err == nil {
			size = statInt(stats, "size") + statInt(stats, "totalIndexSize")
		}
		objects = append(objects, models.SchemaObject{Name: name, SizeBytes: size})
	}
	sort.Slice(objects, func(i, j int) bool {
		if objects[i].SizeBytes != objects[j].SizeBytes {
			return objects[i].SizeBytes > objects[j].SizeBytes
		}
		return objects[i].Name < objects[j].Name
	})
	return objects, nil
}

// ListColumns samples one document and reports its keys as dynamic columns.
func (p *Provider) ListColumns(ctx context.Context, _, name string) ([]models.ColumnInfo, error) {
	_, keys, err := p.SampleDocuments(ctx, name, 1, 0, "")
	if err != nil {
		return nil, err
	}
	columns := make([]models.ColumnInfo, 0, len(keys))
	for _, key := range keys {
		columns = append(columns, models.ColumnInfo{Name: key, Type: "dynamic"})
	}
	return columns, nil
}

// ListIndexes lists the collection's indexes with their key documents.
func (p *Provider) ListIndexes(ctx context.Context, _, name string) ([]models.IndexInfo, error) {
	coll := p.client.Database(p.dbname).Collection(name)
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, &db.QueryError{Query: "listIndexes", Err: err}
	}
	defer func() { _ = cursor.Close(ctx) }()

	var indexes []models.IndexInfo
	for cursor.Next(ctx) {
		var idx bson.M
		if err := cursor.Decode(&idx); err != nil {
			continue
		}
		idxName, _ := idx["name"].(string)
		def := ""
		if key, ok := idx["key"]; ok {
			def = flattenValue(key)
		}
		indexes = append(indexes, models.IndexInfo{Name: idxName, Definition: def})
	}
	return indexes, cursor.Err()
}

// CountDocuments counts documents matching the JSON filter text; unparsable
// text falls back to counting everything.
func (p *Provider) CountDocuments(ctx context.Context, collection, filterText string) (int64, error) {
	coll := p.client.Database(p.dbname).Collection(collection)
	count, err := coll.CountDocuments(ctx, parseFilter(filterText))
	if err != nil {
		return 0, &db.QueryError{Query: filterText, Err: err}
	}
	return count, nil
}

// SampleDocuments returns one page of documents flattened into rows whose
// columns are the union of observed keys, with _id always first and the
// remainder sorted.
func (p *Provider) SampleDocuments(ctx context.Context, collection string, limit, offset int, filterText string) ([][]any, []string, error) {
	coll := p.client.Database(p.dbname).Collection(collection)

	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, parseFilter(filterText), opts)
	if err != nil {
		return nil, nil, &db.QueryError{Query: filterText, Err: err}
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, &db.QueryError{Query: filterText, Err: err}
	}
	if len(docs) == 0 {
		return nil, nil, nil
	}

	seen := map[string]bool{}
	for _, doc := range docs {
		for key := range doc {
			seen[key] = true
		}
	}
	var columns []string
	for key := range seen {
		if key != "_id" {
			columns = append(columns, key)
		}
	}
	sort.Strings(columns)
	if seen["_id"] {
		columns = append([]string{"_id"}, columns...)
	}

	rows := make([][]any, 0, len(docs))
	for _, doc := range docs {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = displayValue(doc[col])
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// QuoteIdentifier is the identity; collection names are never quoted.
func (p *Provider) QuoteIdentifier(name string) string { return name }

func (p *Provider) DefaultSchema() string { return "" }

func (p *Provider) SchemaQualified() bool { return false }

func buildURI(cfg models.ConnectionConfig) string {
	if cfg.User != "" && cfg.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d/%s",
			url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
			cfg.Host, cfg.Port, cfg.Database)
	}
	return fmt.Sprintf("mongodb://%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}

// parseFilter interprets the free filter text as a JSON document. Anything
// unparsable is treated as the empty filter rather than an error.
func parseFilter(text string) bson.D {
	filter := bson.D{}
	if text == "" {
		return filter
	}
	if err := bson.UnmarshalExtJSON([]byte(text), true, &filter); err != nil {
		return bson.D{}
	}
	return filter
}

func statInt(stats bson.M, key string) int64 {
	switch n := stats[key].(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// displayValue converts driver-specific types into plain values: ObjectIDs
// become hex, nested documents and arrays become JSON text.
func displayValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time()
	case bson.M, bson.D, bson.A, []any, map[string]any:
		return flattenValue(val)
	default:
		return val
	}
}

func flattenValue(v any) string {
	if d, ok := v.(bson.D); ok {
		m := make(map[string]any, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		v = m
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
