package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlComparer = cmp.Comparer(func(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))
	for _, name := range []string{
		"GOLINKS_BASE_ADDRESS", "GOLINKS_TIMEOUT", "GOLINKS_TOKEN", "GOLINKS_LOG_LEVEL", "GOLINKS_SNAPSHOT_DSN",
		"STUB_ADDRESS", "STUB_JWT_SECRET", "STUB_RATE_LIMIT", "STUB_REDIS_URL", "STUB_LIST_SIZE", "STUB_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadClientConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		want     *ClientConfig
		wantRest []string
		wantErr  bool
	}{
		{
			name:     "defaults",
			args:     []string{"popular"},
			want:     &ClientConfig{BaseAddress: mustURL(t, DefaultBaseAddress), Timeout: DefaultTimeout},
			wantRest: []string{"popular"},
		},
		{
			name: "flags",
			args: []string{"-b", "https://go.example.com", "-t", "20s", "-token", "abc", "query", "-x"},
			want: &ClientConfig{
				BaseAddress: mustURL(t, "https://go.example.com"),
				Timeout:     20 * time.Second,
				AuthToken:   "abc",
			},
			wantRest: []string{"query", "-x"},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"GOLINKS_BASE_ADDRESS": "http://links.internal:9000",
				"GOLINKS_TIMEOUT":      "25s",
				"GOLINKS_LOG_LEVEL":    "debug",
			},
			args: []string{"-b", "https://go.example.com", "-t", "20s"},
			want: &ClientConfig{
				BaseAddress: mustURL(t, "http://links.internal:9000"),
				Timeout:     25 * time.Second,
				LogLevel:    "debug",
			},
			wantRest: []string{},
		},
		{
			name:    "timeout too small",
			args:    []string{"-t", "5s"},
			wantErr: true,
		},
		{
			name:    "timeout too big",
			args:    []string{"-t", "31s"},
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			args:    []string{"-b", "ftp://go.example.com"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-unknown"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, rest, err := LoadClientConfig(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			diff := cmp.Diff(tt.want, got, urlComparer)
			assert.Equal(t, "", diff)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestLoadClientConfigDotEnv(t *testing.T) {
	isolateEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GOLINKS_TOKEN=from-file\n"), 0o600))
	t.Setenv(EnvFileVar, envFile)
	// godotenv не перезаписывает заданные переменные, поэтому пустую убираем.
	require.NoError(t, os.Unsetenv("GOLINKS_TOKEN"))
	t.Cleanup(func() { _ = os.Unsetenv("GOLINKS_TOKEN") })

	conf, _, err := LoadClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", conf.AuthToken)
}

func TestLoadStubConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("STUB_JWT_SECRET", "secret")

		got, err := LoadStubConfig(nil)
		require.NoError(t, err)
		want := &StubConfig{
			ServerAddress: DefaultStubAddress,
			JWTSecret:     "secret",
			RateLimit:     DefaultStubRateLimit,
			ListSize:      DefaultStubListSize,
		}
		assert.Equal(t, "", cmp.Diff(want, got))
	})

	t.Run("flags", func(t *testing.T) {
		isolateEnv(t)
		got, err := LoadStubConfig([]string{"-a", ":9090", "-jwt-secret", "s", "-list-size", "3", "-redis", "redis://r:6379/0"})
		require.NoError(t, err)
		assert.Equal(t, ":9090", got.ServerAddress)
		assert.Equal(t, 3, got.ListSize)
		assert.Equal(t, "redis://r:6379/0", got.RedisURL)
	})

	t.Run("no secret", func(t *testing.T) {
		isolateEnv(t)
		_, err := LoadStubConfig(nil)
		assert.Error(t, err)
	})

	t.Run("bad list size", func(t *testing.T) {
		isolateEnv(t)
		_, err := LoadStubConfig([]string{"-jwt-secret", "s", "-list-size", "0"})
		assert.Error(t, err)
	})
}
