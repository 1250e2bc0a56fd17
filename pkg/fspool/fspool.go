// fspool creates and manages a Firestore database connections pool.
package fspool

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
)

type ConnectionPool struct {
	mu   sync.Mutex
	idle []*firestore.Client
	prj  string
}

func NewConnectionPool(ctx context.Context, prj string, size int) (*ConnectionPool, error) {
	if prj == "" {
		return nil, fmt.Errorf("firestore project id is empty")
	}
	if size < 1 {
		size = 1
	}

	pool := &ConnectionPool{prj: prj}
	for i := 0; i < size; i++ {
		client, err := firestore.NewClient(ctx, prj)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("unable to create firestore client %d. error: %v", i, err)
		}
		pool.idle = append(pool.idle, client)
	}

	return pool, nil
}

// GetClient checks a client out of the pool. When the pool is drained a new
// client is dialed instead of making the caller wait.
func (pool *ConnectionPool) GetClient() (*firestore.Client, error) {

	pool.mu.Lock()
	if n := len(pool.idle); n > 0 {
		client := pool.idle[n-1]
		pool.idle = pool.idle[:n-1]
		pool.mu.Unlock()
		return client, nil
	}
	pool.mu.Unlock()

	client, err := firestore.NewClient(context.Background(), pool.prj)
	if err != nil {
		return nil, fmt.Errorf("unable to dial extra firestore client. error: %v", err)
	}
	return client, nil
}

// ReleaseClient returns a checked-out client back to the pool.
func (pool *ConnectionPool) ReleaseClient(client *firestore.Client) {
	if client == nil {
		return
	}
	pool.mu.Lock()
	pool.idle = append(pool.idle, client)
	pool.mu.Unlock()
}

// Close closes all idle clients. Checked-out clients are the caller's to close.
func (pool *ConnectionPool) Close() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	for _, client := range pool.idle {
		_ = client.Close()
	}
	pool.idle = nil
}
