// Package visits counts page views in a pluggable document store.
package visits

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown visits driver")

// Counter is the stored visit document.
type Counter struct {
	Count       int64
	LastUpdated time.Time
}

// Store reads and increments counters by key.
type Store interface {
	// Read returns the counter for key; found is false if it was never
	// incremented.
	Read(ctx context.Context, key string) (c Counter, found bool, err error)
	Increment(ctx context.Context, key string) error
	Close() error
}

// CounterKey is the document path of the site's visit counter.
func CounterKey(appID string) string {
	return fmt.Sprintf("artifacts/%s/public/data/visitorCounter/count", appID)
}

// Open connects to the store named by driver. "none" returns a nil Store
// and no error.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch driver {
	case "none", "":
		return nil, nil
	case "sqlite":
		store, err = OpenSQLite(ctx, dsn)
	case "postgres":
		store, err = OpenPostgres(ctx, dsn)
	case "redis":
		store, err = OpenRedis(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
