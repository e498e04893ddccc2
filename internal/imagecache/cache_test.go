package imagecache

import (
	"bytes"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/gogpu/gg/cache"
)

// keysInShard returns n distinct keys that hash to the same shard.
func keysInShard(n int) []string {
	shard := func(k string) uint64 { return cache.StringHasher(k) % cache.DefaultShardCount }
	var keys []string
	target := shard("k0")
	for i := 0; len(keys) < n; i++ {
		k := "k" + strconv.Itoa(i)
		if shard(k) == target {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestGetSet(t *testing.T) {
	c := New(Options{})

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}
	c.Set("a", []byte("png-a"))
	got, ok := c.Get("a")
	if !ok || string(got) != "png-a" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}

	c.Set("a", []byte("png-a2"))
	got, _ = c.Get("a")
	if string(got) != "png-a2" {
		t.Errorf("Get(a) after overwrite = %q", got)
	}

	st := c.Stats()
	if st.Entries != 1 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.Hits != 2 || st.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", st.Hits, st.Misses)
	}
	if r := st.HitRate(); r < 0.66 || r > 0.67 {
		t.Errorf("HitRate() = %v", r)
	}
}

func TestCapacityRoundsToShards(t *testing.T) {
	tests := []struct {
		entries, want int
	}{
		{0, DefaultMaxEntries},
		{1, cache.DefaultShardCount},
		{64, 64},
		{65, 80},
	}
	for _, tt := range tests {
		if got := New(Options{MaxEntries: tt.entries}).Capacity(); got != tt.want {
			t.Errorf("New(%d).Capacity() = %d, want %d", tt.entries, got, tt.want)
		}
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	// Two entries per shard.
	c := New(Options{MaxEntries: 2 * cache.DefaultShardCount})
	keys := keysInShard(3)

	c.Set(keys[0], []byte("0"))
	c.Set(keys[1], []byte("1"))
	c.Get(keys[0])
	c.Set(keys[2], []byte("2"))

	if _, ok := c.Get(keys[1]); ok {
		t.Errorf("%s should have been evicted", keys[1])
	}
	for _, k := range []string{keys[0], keys[2]} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if ev := c.Stats().Evictions; ev != 1 {
		t.Errorf("Evictions = %d, want 1", ev)
	}
}

func TestImageSizeLimit(t *testing.T) {
	c := New(Options{MaxImageBytes: 10})

	c.Set("fits", make([]byte, 10))
	if _, ok := c.Get("fits"); !ok {
		t.Error("image at the size limit was not stored")
	}

	c.Set("huge", make([]byte, 11))
	if _, ok := c.Get("huge"); ok {
		t.Error("image over the size limit was stored")
	}
	if st := c.Stats(); st.Oversize != 1 || st.Entries != 1 {
		t.Errorf("Stats() = %+v, want 1 oversize, 1 entry", st)
	}

	calls := 0
	for range 2 {
		data, err := c.GetOrRender("big", func() ([]byte, error) {
			calls++
			return make([]byte, 20), nil
		})
		if err != nil || len(data) != 20 {
			t.Fatalf("GetOrRender() = %d bytes, %v", len(data), err)
		}
	}
	if calls != 2 {
		t.Errorf("oversize render called %d times, want 2", calls)
	}
}

func TestGetOrRender(t *testing.T) {
	c := New(Options{})
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("png"), nil
	}

	for range 3 {
		data, err := c.GetOrRender("k", render)
		if err != nil || string(data) != "png" {
			t.Fatalf("GetOrRender() = %q, %v", data, err)
		}
	}
	if calls != 1 {
		t.Errorf("render called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrRender("bad", func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed render was cached")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(Options{MaxEntries: 64})
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g * i) % 100)
				_, _ = c.GetOrRender(k, func() ([]byte, error) { return []byte(k), nil })
			}
		}(g)
	}
	wg.Wait()
	if n := c.Len(); n > 64 {
		t.Errorf("Len() = %d exceeds limit 64", n)
	}
}

// Readers and writers of one hot key must never observe a torn or foreign
// value; run with -race.
func TestConcurrentSameKey(t *testing.T) {
	c := New(Options{})
	values := [][]byte{
		bytes.Repeat([]byte("a"), 64),
		bytes.Repeat([]byte("b"), 128),
	}
	c.Set("hot", values[0])

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := range 500 {
				c.Set("hot", values[(g+i)%2])
			}
		}(g)
		go func() {
			defer wg.Done()
			for range 500 {
				data, err := c.GetOrRender("hot", func() ([]byte, error) { return values[0], nil })
				if err != nil {
					t.Error(err)
					return
				}
				if !bytes.Equal(data, values[0]) && !bytes.Equal(data, values[1]) {
					t.Errorf("Get(hot) returned unexpected %d bytes", len(data))
					return
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := New(Options{})
	c.Set("key", make([]byte, 1024))
	b.ResetTimer()
	for range b.N {
		c.Get("key")
	}
}
