package finance

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"seasonalDashboard/internal/logger"
)

// Source loads the data file once and serves the same table afterwards.
// A failed load is not remembered, so the next call tries again.
type Source struct {
	path       string
	dateColumn string
	log        zerolog.Logger

	mu    sync.RWMutex
	table *RawTable
	group singleflight.Group
}

// NewSource returns a lazily loading Source for the CSV at path.
func NewSource(path, dateColumn string, log zerolog.Logger) *Source {
	return &Source{
		path:       path,
		dateColumn: dateColumn,
		log:        logger.Component(log, "source"),
	}
}

// Table returns the cached table, loading it on first use.
func (s *Source) Table(ctx context.Context) (*RawTable, error) {
	s.mu.RLock()
	t := s.table
	s.mu.RUnlock()
	if t != nil {
		return t, nil
	}

	ch := s.group.DoChan(s.path, func() (interface{}, error) {
		s.mu.RLock()
		cached := s.table
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		loaded, err := LoadTable(s.path, s.dateColumn)
		if err != nil {
			s.log.Error().Err(err).Str("path", s.path).Msg("failed to load data file")
			return nil, err
		}
		s.mu.Lock()
		s.table = loaded
		s.mu.Unlock()
		s.log.Info().
			Str("path", s.path).
			Int("rows", loaded.Len()).
			Strs("assets", loaded.Columns).
			Msg("data file loaded")
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*RawTable), nil
	}
}
