// Package mongotest hands store tests a throwaway database.
package mongotest

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shirinfathima/voyabot/internal/infra"
)

// EnvURI names the variable that enables Mongo-backed tests.
const EnvURI = "VOYABOT_TEST_MONGO_URI"

// Database connects to $VOYABOT_TEST_MONGO_URI and returns a fresh database
// that is dropped when the test ends. The test is skipped when the variable is unset.
func Database(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv(EnvURI)
	if uri == "" {
		t.Skip(EnvURI + " not set; skipping Mongo-backed store test")
	}
	ctx := context.Background()
	client, db, err := infra.NewMongo(ctx, uri, "voyabot_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
