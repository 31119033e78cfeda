// README: MongoDB client initialization; the document store behind every module store.
package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

// MongoClientOptions are the client settings every store relies on. Nested
// documents decode as bson.M so free-form fields render as JSON objects.
func MongoClientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetAppName("voyabot").
		SetConnectTimeout(mongoConnectTimeout).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// NewMongo connects to uri, pings the primary and returns the named database.
func NewMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	opts := MongoClientOptions(uri)

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(database), nil
}
