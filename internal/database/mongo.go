package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used by the service. The names predate this codebase and
// must match what existing deployments already hold.
const (
	ProblemsCollection    = "problems_collection"
	NamesCollection       = "names_collection"
	NameBindingCollection = "binding_collection"
	TypesCollection       = "types_collection"
	TypeBindingCollection = "type_binding_collection"
)

// ConnectMongo establishes a client against the document store using the
// provided connection URI and verifies connectivity with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri must not be empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("unable to reach mongo: %w", err)
	}

	return client, nil
}
