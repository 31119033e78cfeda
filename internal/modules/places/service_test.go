package places

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirinfathima/voyabot/internal/ai"
)

type staticLister []Place

func (l staticLister) All(context.Context) ([]Place, error) {
	return append([]Place(nil), l...), nil
}

type countingEngine struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (e *countingEngine) Generate(context.Context, string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	return e.text, e.err
}

func noShuffle(int, func(i, j int)) {}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb, 0), mr
}

var fourPlaces = staticLister{
	{Name: "Ziro", Location: "Arunachal Pradesh"},
	{Name: "Gokarna", Location: "Karnataka", AIDetails: "stored", ImageURL: "https://img/gokarna.jpg"},
	{Name: "Majuli", Location: "Assam"},
	{Name: "Chopta", Location: "Uttarakhand"},
}

func TestRandom_PicksThreeAndEnriches(t *testing.T) {
	engine := &countingEngine{text: "generated"}
	s := NewService(fourPlaces, engine, nil, nil)
	s.shuffle = noShuffle

	got, err := s.Random(context.Background())
	require.NoError(t, err)
	require.Len(t, got, PickCount)

	assert.Equal(t, "generated", got[0].AIDetails)
	assert.Equal(t, PlaceholderImage, got[0].ImageURL)
	assert.Equal(t, "stored", got[1].AIDetails)
	assert.Equal(t, "https://img/gokarna.jpg", got[1].ImageURL)
	assert.Equal(t, 2, engine.calls)
}

func TestRandom_FewerThanThree(t *testing.T) {
	s := NewService(staticLister{{Name: "Ziro", Location: "AP", AIDetails: "x"}}, &countingEngine{}, nil, nil)
	got, err := s.Random(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRandom_Empty(t *testing.T) {
	s := NewService(staticLister{}, &countingEngine{}, nil, nil)
	_, err := s.Random(context.Background())
	assert.True(t, errors.Is(err, ErrNoPlaces))
}

func TestRandom_FailureStrings(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ai.ErrAllModelsFailed, DetailsExhausted},
		{&ai.AbortError{Model: "m", Err: errors.New("denied")}, DetailsAborted},
	}
	for _, tt := range tests {
		cache, mr := newRedisCache(t)
		s := NewService(staticLister{{Name: "Ziro", Location: "AP"}}, &countingEngine{err: tt.err}, cache, nil)
		got, err := s.Random(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.want, got[0].AIDetails)
		assert.Empty(t, mr.Keys(), "failure strings must not be cached")
	}
}

func TestRandom_UsesDescriptionCache(t *testing.T) {
	cache, mr := newRedisCache(t)
	engine := &countingEngine{text: "generated once"}
	s := NewService(staticLister{{Name: "Ziro", Location: "AP"}}, engine, cache, nil)

	for i := 0; i < 3; i++ {
		got, err := s.Random(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "generated once", got[0].AIDetails)
	}
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, DescriptionTTL, mr.TTL(cacheKey(Place{Name: "Ziro", Location: "AP"})))

	mr.FastForward(DescriptionTTL + time.Second)
	_, err := s.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, engine.calls)
}

func TestRandom_CacheOutageStillDescribes(t *testing.T) {
	cache, mr := newRedisCache(t)
	mr.Close()
	s := NewService(staticLister{{Name: "Ziro", Location: "AP"}}, &countingEngine{text: "generated"}, cache, nil)
	got, err := s.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "generated", got[0].AIDetails)
}

func TestNewRedisCache_NilClient(t *testing.T) {
	assert.Nil(t, NewRedisCache(nil, time.Hour))
}
