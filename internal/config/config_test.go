package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("CLERK_JWT_KEY", "secret")
	t.Setenv("FRONTEND_URL", "https://photo.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1, cfg.ImageGenCredits)
	assert.Equal(t, 20, cfg.TrainModelCredits)
	assert.Equal(t, 5*time.Minute, cfg.UploadURLTTL)
	assert.Equal(t, "https://photo.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "CLERK_JWT_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CreditCosts(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("CLERK_JWT_KEY", "secret")

	t.Setenv("IMAGE_GEN_CREDITS", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ImageGenCredits)

	t.Setenv("TRAIN_MODEL_CREDITS", "-5")
	_, err = Load()
	assert.ErrorContains(t, err, "TRAIN_MODEL_CREDITS=-5")
}

func TestGetPubSubProjectID(t *testing.T) {
	cfg := &Config{GCPProjectID: "main"}
	assert.Equal(t, "main", cfg.GetPubSubProjectID())

	cfg.PubSubProjectID = "events"
	assert.Equal(t, "events", cfg.GetPubSubProjectID())
}
