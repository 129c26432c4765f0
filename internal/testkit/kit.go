package testkit

import (
	"context"
	"sort"
	"sync"

	"leanfunnel/domain/enquiry"
	"leanfunnel/ports"

	"github.com/google/uuid"
)

// StaticSource is a RowSource serving a fixed sheet, or a fixed error
type StaticSource struct {
	SourceName string
	Sheet      *enquiry.Sheet
	Err        error

	mu    sync.Mutex
	calls int
}

// NewStaticSource creates a source that always returns sheet
func NewStaticSource(sheet *enquiry.Sheet) *StaticSource {
	return &StaticSource{SourceName: "static", Sheet: sheet}
}

// FetchSheet returns the configured sheet or error
func (s *StaticSource) FetchSheet(ctx context.Context) (*enquiry.Sheet, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Sheet, nil
}

// Name identifies the source
func (s *StaticSource) Name() string {
	return s.SourceName
}

// Calls reports how many times FetchSheet ran
func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// InMemorySnapshotRepository keeps snapshots in memory
type InMemorySnapshotRepository struct {
	snapshots []ports.Snapshot
	mu        sync.RWMutex

	// SaveErr and ListErr, when set, are returned by Save and ListRecent
	SaveErr error
	ListErr error
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, snapshot *ports.Snapshot) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	r.snapshots = append(r.snapshots, *snapshot)
	return nil
}

func (r *InMemorySnapshotRepository) ListRecent(ctx context.Context, limit int) ([]ports.Snapshot, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ports.Snapshot, len(r.snapshots))
	copy(results, r.snapshots)
	// newest first; equal timestamps keep reverse insertion order
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ComputedAt.After(results[j].ComputedAt)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Len returns the number of stored snapshots
func (r *InMemorySnapshotRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snapshots)
}
