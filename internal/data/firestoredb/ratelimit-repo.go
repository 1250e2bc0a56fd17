package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dasiyes/ivmfolio/internal/ratelimit"
	"github.com/dasiyes/ivmfolio/pkg/fspool"
)

// rateLimitRepo keeps one document per identity key in the rate limits
// collection. Documents are never deleted - they double as an abuse trail.
type rateLimitRepo struct {
	coll    string
	clients *fspool.ConnectionPool
}

func NewRateLimitRepository(clients *fspool.ConnectionPool, coll string) (ratelimit.Store, error) {
	if coll == "" {
		return nil, fmt.Errorf("rate limits collection name is empty")
	}
	return &rateLimitRepo{coll: coll, clients: clients}, nil
}

func (r *rateLimitRepo) Record(ctx context.Context, key string) (*ratelimit.Record, error) {

	fsclient, err := r.clients.GetClient()
	if err != nil {
		return nil, fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer r.clients.ReleaseClient(fsclient)

	doc, err := fsclient.Collection(r.coll).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ratelimit.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to get rate limit record. error: %v", err)
	}

	var rec ratelimit.Record
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("unable to fit rate limit record format. error: %v", err)
	}

	return &rec, nil
}

func (r *rateLimitRepo) Create(ctx context.Context, key string, rec *ratelimit.Record) error {

	fsclient, err := r.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer r.clients.ReleaseClient(fsclient)

	if _, err := fsclient.Collection(r.coll).Doc(key).Create(ctx, rec); err != nil {
		return fmt.Errorf("unable to create rate limit record. error: %v", err)
	}
	return nil
}

func (r *rateLimitRepo) Reset(ctx context.Context, key string, at time.Time) error {

	fsclient, err := r.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer r.clients.ReleaseClient(fsclient)

	_, err = fsclient.Collection(r.coll).Doc(key).Update(ctx, []firestore.Update{
		{Path: "count", Value: 0},
		{Path: "lastReset", Value: at},
		{Path: "blocked", Value: false},
		{Path: "blockedUntil", Value: firestore.Delete},
	})
	if err != nil {
		return fmt.Errorf("unable to reset rate limit record. error: %v", err)
	}
	return nil
}

func (r *rateLimitRepo) Block(ctx context.Context, key string, until time.Time) error {

	fsclient, err := r.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer r.clients.ReleaseClient(fsclient)

	_, err = fsclient.Collection(r.coll).Doc(key).Update(ctx, []firestore.Update{
		{Path: "blocked", Value: true},
		{Path: "blockedUntil", Value: until},
	})
	if err != nil {
		return fmt.Errorf("unable to block rate limit record. error: %v", err)
	}
	return nil
}

// Increment uses the server-side counter so concurrent admitted requests
// never lose an increment, even though admission itself is not transactional.
func (r *rateLimitRepo) Increment(ctx context.Context, key string, at time.Time) error {

	fsclient, err := r.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer r.clients.ReleaseClient(fsclient)

	_, err = fsclient.Collection(r.coll).Doc(key).Update(ctx, []firestore.Update{
		{Path: "count", Value: firestore.Increment(1)},
		{Path: "lastUpdated", Value: at},
	})
	if err != nil {
		return fmt.Errorf("unable to increment rate limit record. error: %v", err)
	}
	return nil
}
