package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "localhostはSSL無効",
			cfg:  Config{Host: "localhost", Port: 5432, UserName: "lunchly", Password: "pw", DBName: "lunchly"},
			want: "host=localhost port=5432 user=lunchly password=pw dbname=lunchly sslmode=disable",
		},
		{
			name: "リモートはSSL必須",
			cfg:  Config{Host: "db.internal", Port: 5432, UserName: "lunchly", Password: "pw", DBName: "lunchly"},
			want: "host=db.internal port=5432 user=lunchly password=pw dbname=lunchly sslmode=require",
		},
		{
			name: "明示指定を優先",
			cfg:  Config{Host: "db.internal", Port: 6432, UserName: "u", Password: "p", DBName: "d", SSLMode: "verify-full"},
			want: "host=db.internal port=6432 user=u password=p dbname=d sslmode=verify-full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, DirectionUp, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, DirectionDown, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestMigrationFS(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000002_create_reservations.up.sql")
	assert.Contains(t, names, "000002_create_reservations.down.sql")
}

func TestMigrationFS_ReservationsConstraints(t *testing.T) {
	body, err := migrationFS.ReadFile("migrations/000002_create_reservations.up.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "CHECK (num_guests >= 1)")
	assert.Contains(t, sql, "notes TEXT NOT NULL DEFAULT ''")
}
