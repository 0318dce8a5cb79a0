// Package dataset loads every stored row from the spreadsheet endpoint once
// and hands the decoded value to the log.
package dataset

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Source interface {
	FetchAll(ctx context.Context) (any, error)
}

// Fetcher performs a single read of the remote dataset for its lifetime.
type Fetcher struct {
	source Source
	log    *zap.Logger

	once sync.Once
	data any
	err  error
}

// NewFetcher returns a Fetcher that logs to log. A nil log uses zap.NewNop.
func NewFetcher(source Source, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{source: source, log: log}
}

// Init fetches and logs the dataset on the first call. Later calls return the
// first result without touching the network. Failures are logged and returned;
// they never panic.
func (f *Fetcher) Init(ctx context.Context) (any, error) {
	f.once.Do(func() {
		f.data, f.err = f.source.FetchAll(ctx)
		if f.err != nil {
			f.log.Error("error fetching all data", zap.Error(f.err))
			return
		}
		f.log.Info("All Data", zap.Any("data", f.data))
	})
	return f.data, f.err
}
