package backend

import (
	"testing"

	"paydash/internal/config"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want Type
	}{
		{
			name: "auto with no credentials falls back to memory",
			cfg:  config.Config{DataBackend: "auto"},
			want: Memory,
		},
		{
			name: "auto with url and key picks postgres",
			cfg: config.Config{
				DataBackend:        "auto",
				DatabaseURL:        "postgres://localhost:5432/paydash",
				DatabaseServiceKey: "service-key",
			},
			want: Postgres,
		},
		{
			name: "auto with url but no key stays on memory",
			cfg: config.Config{
				DataBackend: "auto",
				DatabaseURL: "postgres://localhost:5432/paydash",
			},
			want: Memory,
		},
		{
			name: "auto with key but no url stays on memory",
			cfg: config.Config{
				DataBackend:        "auto",
				DatabaseServiceKey: "service-key",
			},
			want: Memory,
		},
		{
			name: "explicit memory wins over credentials",
			cfg: config.Config{
				DataBackend:        "memory",
				DatabaseURL:        "postgres://localhost:5432/paydash",
				DatabaseServiceKey: "service-key",
			},
			want: Memory,
		},
		{
			name: "explicit sqlite",
			cfg:  config.Config{DataBackend: "sqlite", SQLiteDBPath: "./data/paydash.db"},
			want: SQLite,
		},
		{
			name: "explicit postgres",
			cfg:  config.Config{DataBackend: "postgres", DatabaseURL: "postgres://localhost/db"},
			want: Postgres,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(&tt.cfg); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
