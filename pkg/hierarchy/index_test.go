package hierarchy

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"
)

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestDownlineChain(t *testing.T) {
	source := NewMemorySource()
	source.AddReport("a@x.org", "b@x.org")
	source.AddReport("b@x.org", "c@x.org")
	source.AddReport("c@x.org", "d@x.org")
	index := NewIndex(source, time.Minute)
	ctx := context.Background()

	cases := []struct {
		root string
		want []string
	}{
		{"a@x.org", []string{"b@x.org", "c@x.org", "d@x.org"}},
		{"c@x.org", []string{"d@x.org"}},
		{"d@x.org", []string{}},
	}

	for _, tc := range cases {
		got, err := index.Downline(ctx, tc.root)
		if err != nil {
			t.Fatalf("Downline(%q): %v", tc.root, err)
		}
		if !reflect.DeepEqual(sorted(got), tc.want) {
			t.Errorf("Downline(%q) = %v, want %v", tc.root, sorted(got), tc.want)
		}
	}
}

func TestDownlineCycleTerminates(t *testing.T) {
	source := NewMemorySource()
	source.AddReport("a@x.org", "b@x.org")
	source.AddReport("b@x.org", "a@x.org")
	index := NewIndex(source, time.Minute)

	got, err := index.Downline(context.Background(), "a@x.org")
	if err != nil {
		t.Fatalf("Downline: %v", err)
	}
	if !reflect.DeepEqual(sorted(got), []string{"b@x.org"}) {
		t.Errorf("Downline = %v, want [b@x.org]", sorted(got))
	}
}

func TestDownlineSelfReferenceIgnored(t *testing.T) {
	// A record supervising itself means "no supervisor"
	source := NewMemorySource()
	source.AddReport("a@x.org", "a@x.org")
	source.AddReport("a@x.org", "b@x.org")
	index := NewIndex(source, time.Minute)

	got, err := index.Downline(context.Background(), "a@x.org")
	if err != nil {
		t.Fatalf("Downline: %v", err)
	}
	if !reflect.DeepEqual(sorted(got), []string{"b@x.org"}) {
		t.Errorf("Downline = %v, want [b@x.org]", sorted(got))
	}
}

func TestDownlineDepthBound(t *testing.T) {
	source := NewMemorySource()
	// Build a strictly deeper chain than the bound
	prev := "root@x.org"
	for i := 0; i < MaxDepth+5; i++ {
		email := prev + "r"
		source.AddReport(prev, email)
		prev = email
	}
	index := NewIndex(source, time.Minute)

	got, err := index.Downline(context.Background(), "root@x.org")
	if err != nil {
		t.Fatalf("Downline: %v", err)
	}
	if len(got) != MaxDepth {
		t.Errorf("downline size = %d, want truncation at %d", len(got), MaxDepth)
	}
}

func TestDownlineCaseInsensitive(t *testing.T) {
	source := NewMemorySource()
	source.AddReport("Lead@X.org", "Report@X.org")
	index := NewIndex(source, time.Minute)

	got, err := index.Downline(context.Background(), "lead@x.org")
	if err != nil {
		t.Fatalf("Downline: %v", err)
	}
	if _, ok := got["report@x.org"]; !ok {
		t.Errorf("Downline = %v, want lower-cased report@x.org", sorted(got))
	}
}

func TestDownlineCached(t *testing.T) {
	source := NewMemorySource()
	source.AddReport("a@x.org", "b@x.org")
	index := NewIndex(source, time.Minute)
	ctx := context.Background()

	if _, err := index.Downline(ctx, "a@x.org"); err != nil {
		t.Fatalf("Downline: %v", err)
	}

	// New edges are invisible until the cache expires
	source.AddReport("a@x.org", "c@x.org")
	got, err := index.Downline(ctx, "a@x.org")
	if err != nil {
		t.Fatalf("Downline: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected cached result of size 1, got %v", sorted(got))
	}
}

func TestSupervises(t *testing.T) {
	source := NewMemorySource()
	source.AddReport("a@x.org", "b@x.org")
	index := NewIndex(source, time.Minute)
	ctx := context.Background()

	if ok, _ := index.Supervises(ctx, "a@x.org"); !ok {
		t.Error("a should supervise b")
	}
	if ok, _ := index.Supervises(ctx, "b@x.org"); ok {
		t.Error("b supervises no one")
	}
}
