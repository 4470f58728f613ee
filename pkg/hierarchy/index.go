package hierarchy

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/brightline/portald/pkg/logging"
)

type cachedDownline struct {
	members  map[string]struct{}
	loadedAt time.Time
}

// Index computes the transitive set of reports for a supervisor.
// Downline sets are cached per root with a TTL; the directory refreshes on
// an external schedule, so short staleness is acceptable.
type Index struct {
	source        Source
	cacheDuration time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedDownline
}

// NewIndex creates a new Index
func NewIndex(source Source, cacheDuration time.Duration) *Index {
	return &Index{
		source:        source,
		cacheDuration: cacheDuration,
		cache:         make(map[string]*cachedDownline),
	}
}

// Downline returns every email reporting, directly or transitively, to the
// given email, excluding the email itself. An empty set means the person
// supervises no one and is not an error.
//
// Traversal is an explicit worklist with a visited set and a depth bound
// rather than recursion: a supervisor cycle in the data is a quality defect
// that must truncate, not hang. Detected cycles are logged.
func (i *Index) Downline(ctx context.Context, email string) (map[string]struct{}, error) {
	root := strings.ToLower(email)

	i.mu.RLock()
	cached, exists := i.cache[root]
	i.mu.RUnlock()
	if exists && time.Since(cached.loadedAt) < i.cacheDuration {
		return copySet(cached.members), nil
	}

	members, err := i.traverse(ctx, root)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	i.cache[root] = &cachedDownline{members: members, loadedAt: time.Now()}
	i.mu.Unlock()

	return copySet(members), nil
}

func (i *Index) traverse(ctx context.Context, root string) (map[string]struct{}, error) {
	visited := map[string]struct{}{root: {}}
	members := make(map[string]struct{})
	frontier := []string{root}
	cycle := false

	for depth := 0; depth < MaxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, supervisor := range frontier {
			reports, err := i.source.DirectReports(ctx, supervisor)
			if err != nil {
				return nil, err
			}
			for _, report := range reports {
				report = strings.ToLower(report)
				// A record supervising itself means "no supervisor", not an edge
				if report == supervisor {
					continue
				}
				if _, seen := visited[report]; seen {
					cycle = true
					continue
				}
				visited[report] = struct{}{}
				members[report] = struct{}{}
				next = append(next, report)
			}
		}
		frontier = next
	}

	if cycle {
		logging.App.Warnw("supervisor cycle detected in org hierarchy", "root", root)
	}
	if len(frontier) > 0 {
		logging.App.Warnw("org hierarchy traversal truncated at depth bound", "root", root, "depth", MaxDepth)
	}

	return members, nil
}

// Supervises reports whether email has at least one person in its downline
func (i *Index) Supervises(ctx context.Context, email string) (bool, error) {
	downline, err := i.Downline(ctx, email)
	if err != nil {
		return false, err
	}
	return len(downline) > 0, nil
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
