package recorder

import (
	// Go Internal Packages
	"context"
	"time"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect connects to the mongodb server and returns the client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	timeout := time.Second * 5
	opts := &options.ClientOptions{ServerSelectionTimeout: &timeout}

	client, err := mongo.Connect(ctx, opts.ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// MongoClient appends entries to the transfer_entries collection. The
// collection is append-only; nothing in this service updates or deletes
// documents from it.
type MongoClient struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewMongoClient(client *mongo.Client, database string) *MongoClient {
	return &MongoClient{client: client, database: database, collection: "transfer_entries"}
}

func (c *MongoClient) CreateTransaction(ctx context.Context, entry Entry) (string, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	id := primitive.NewObjectID()
	document := bson.M{
		"_id":                     id,
		"account_id":              entry.AccountID,
		"counterparty_account_id": entry.CounterpartyAccountID,
		"counterparty_ref":        entry.CounterpartyRef,
		"amount":                  entry.Amount.StringFixed(2),
		"type":                    entry.Type,
		"narrative":               entry.Narrative,
		"reference":               entry.Reference,
		"fee":                     entry.Fee.StringFixed(2),
		"total":                   entry.Total.StringFixed(2),
		"currency":                entry.Currency,
		"created_at":              entry.CreatedAt,
	}

	collection := c.client.Database(c.database).Collection(c.collection)
	if _, err := collection.InsertOne(ctx, document); err != nil {
		return "", err
	}
	return id.Hex(), nil
}
