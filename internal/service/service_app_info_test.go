package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "release version", version: "1.4.0"},
		{name: "dev default", version: "dev"},
		{name: "missing version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, models.AppBuildInfo{}, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_BuildInfo(t *testing.T) {
	build := models.NewAppBuildInfo("1.4.0", "", "9f1c2e7")

	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, build, logger.Nop())
	require.NoError(t, err)

	got := svc.GetBuildInfo(context.Background())
	assert.Equal(t, "1.4.0", got.Version)
	assert.Equal(t, "N/A", got.Date, "missing ldflags values read as N/A")
	assert.Equal(t, "9f1c2e7", got.Commit)
}

func TestAppInfoService_VersionIsFixedAtConstruction(t *testing.T) {
	cfg := config.App{Version: "1.0.0"}
	svc, err := NewAppInfoService(cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	cfg.Version = "2.0.0"

	assert.Equal(t, "1.0.0", svc.GetAppVersion(context.Background()))
}
