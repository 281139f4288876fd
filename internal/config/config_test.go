package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ob/internal/datastore"
	"hotel-ob/internal/logging"
	"hotel-ob/internal/wizard"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HOTELOB_API_URL", "HOTELOB_API_TIMEOUT", "HOTELOB_STORE_TYPE", "HOTELOB_PERMISSIONS", "DB_CONN_STRING"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, datastore.PostgreSQLStore, cfg.DataStoreConfig().Type)
	assert.Equal(t, wizard.Permissions{wizard.PermEditAll}, cfg.WizardPermissions())
	assert.Equal(t, logging.FormatConsole, cfg.Format())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOTELOB_API_URL", "https://backend.example/api")
	t.Setenv("HOTELOB_API_TIMEOUT", "5s")
	t.Setenv("HOTELOB_STORE_TYPE", "memory")
	t.Setenv("HOTELOB_PERMISSIONS", "edit_with_approval")
	t.Setenv("HOTELOB_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.True(t, cfg.IsMemoryMode())
	assert.True(t, cfg.WizardPermissions().NeedsApproval())
	assert.Equal(t, logging.FormatJSON, cfg.Format())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("HOTELOB_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
