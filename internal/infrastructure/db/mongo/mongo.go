// Package mongo implements the user and task repositories on top of the
// official driver, plus the connection bootstrap they share.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultConnectTimeout = 10 * time.Second
	// defaultTimeout bounds each repository operation.
	defaultTimeout = 10 * time.Second
)

// Config carries the MongoDB settings exposed through the environment.
type Config struct {
	URI      string
	Database string
	// AppName tags connections in server logs and currentOp output so this
	// service is distinguishable from other clients of the cluster.
	AppName string
	// ConnectTimeout bounds the initial dial and ping only.
	ConnectTimeout time.Duration
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(c.URI)
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	return opts
}

// Connect dials the cluster, pings it to surface bad URIs and unreachable
// hosts at boot, and returns the client together with the database the
// repositories operate on.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
