package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"http://localhost:5173", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.DSN(), "port=6543")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{DBPassword: "x", JWTSecret: "0123456789abcdef", DBPort: 5432}},
		{name: "missing password", cfg: Config{JWTSecret: "0123456789abcdef", DBPort: 5432}, wantErr: true},
		{name: "short secret", cfg: Config{DBPassword: "x", JWTSecret: "short", DBPort: 5432}, wantErr: true},
		{name: "bad port", cfg: Config{DBPassword: "x", JWTSecret: "0123456789abcdef", DBPort: 0}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
