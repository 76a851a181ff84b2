package http

import (
	"net/http"

	"github.com/michaelhessen/chronos/internal/utils"
	"github.com/michaelhessen/chronos/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	utils.WriteJSON(w, models.VersionResponse{
		Version: h.services.AppInfoService.GetAppVersion(ctx),
		Build:   h.services.AppInfoService.GetBuildInfo(ctx),
	}, http.StatusOK)
}
