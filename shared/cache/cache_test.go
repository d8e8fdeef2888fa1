package cache_test

import (
	"context"
	"errors"
	otelMocks "salon/infras/otel/mocks"
	"salon/shared/cache"
	"salon/shared/cache/mocks"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type entry struct {
	Name string `json:"name"`
}

func TestLoad(t *testing.T) {
	errSource := errors.New("source down")

	tests := []struct {
		name       string
		getErr     error
		hit        entry
		loaded     entry
		loaderErr  error
		wantSave   bool
		wantLoader bool
		want       entry
		wantErr    error
	}{
		{
			name: "hit skips loader",
			hit:  entry{Name: "cached"},
			want: entry{Name: "cached"},
		},
		{
			name:       "miss loads and saves",
			getErr:     cache.Nil,
			loaded:     entry{Name: "fresh"},
			wantLoader: true,
			wantSave:   true,
			want:       entry{Name: "fresh"},
		},
		{
			name:       "broken cache still loads",
			getErr:     errors.New("connection reset"),
			loaded:     entry{Name: "fresh"},
			wantLoader: true,
			wantSave:   true,
			want:       entry{Name: "fresh"},
		},
		{
			name:       "loader error is not cached",
			getErr:     cache.Nil,
			loaderErr:  errSource,
			wantLoader: true,
			wantErr:    errSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := mocks.NewMockRedisCache(ctrl)

			mockCache.EXPECT().Get(gomock.Any(), "k", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					if tt.getErr != nil {
						return tt.getErr
					}

					*(value.(*entry)) = tt.hit

					return nil
				})

			saved := make(chan entry, 1)
			if tt.wantSave {
				mockCache.EXPECT().Save(gomock.Any(), "k", gomock.Any(), 60).
					DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
						saved <- value.(entry)

						return nil
					})
			}

			called := false
			got, err := cache.Load(context.Background(), mockCache, "k", 60, func(context.Context) (entry, error) {
				called = true

				return tt.loaded, tt.loaderErr
			})

			assert.Equal(t, tt.wantLoader, called)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.wantSave {
				assert.Equal(t, tt.want, <-saved)
			}
		})
	}
}

func TestSave_RequiresExpiry(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedisCache(client, otelMocks.NewOtel())

	for _, ttl := range []int{0, -1} {
		err := store.Save(context.Background(), "k", entry{Name: "x"}, ttl)

		require.ErrorIs(t, err, cache.ErrNoExpiry)
	}
}
