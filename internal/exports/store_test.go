package exports

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}
}

func TestStoreAddGet(t *testing.T) {
	clock := newClock()
	s := newStore(time.Hour, clock.now)

	e := s.Add("search_results_20250601_093000.pdf", "application/pdf", []byte("%PDF"))
	assert.Len(t, e.ID, 26)
	assert.Equal(t, 4, e.Size)
	assert.Equal(t, clock.now().Add(time.Hour), e.ExpiresAt)

	got, ok := s.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, []byte("%PDF"), got.Data)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	clock := newClock()
	s := newStore(time.Minute, clock.now)
	old := s.Add("a.docx", "x", []byte("a"))
	clock.advance(30 * time.Second)
	fresh := s.Add("b.docx", "x", []byte("b"))

	clock.advance(31 * time.Second)
	_, ok := s.Get(old.ID)
	assert.False(t, ok, "expired export should not be served")
	_, ok = s.Get(fresh.ID)
	assert.True(t, ok)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)
	assert.Nil(t, list[0].Data)

	assert.Equal(t, 1, s.Cleanup())
	assert.Equal(t, 1, s.Len())
}

func TestStoreListOrder(t *testing.T) {
	clock := newClock()
	s := newStore(time.Hour, clock.now)
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Add("f", "x", nil).ID)
		if i%2 == 0 {
			clock.advance(time.Millisecond)
		}
	}
	var listed []string
	for _, e := range s.List() {
		listed = append(listed, e.ID)
	}
	assert.Equal(t, ids, listed)
}

func TestStoreRunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Add("f", "x", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond, nil)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEncodeULID(t *testing.T) {
	var zero [16]byte
	assert.Equal(t, strings.Repeat("0", 26), encodeULID(zero))

	var ones [16]byte
	for i := range ones {
		ones[i] = 0xFF
	}
	assert.Equal(t, "7"+strings.Repeat("Z", 25), encodeULID(ones))
}

func TestIDGeneratorTimestampPrefix(t *testing.T) {
	clock := newClock()
	g := newIDGenerator(clock.now)
	a := g.next()
	b := g.next()
	assert.Equal(t, a[:10], b[:10], "same millisecond shares the time prefix")
	assert.Less(t, a, b)

	clock.advance(time.Second)
	c := g.next()
	assert.NotEqual(t, a[:10], c[:10])
	assert.Less(t, b, c)
}
