package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/services"
	"github.com/careerlens/careerlens-backend/internal/types"
)

type RoleHandler struct {
	log            *logger.Logger
	profileService services.RoleProfileService
}

func NewRoleHandler(baseLog *logger.Logger, profileService services.RoleProfileService) *RoleHandler {
	return &RoleHandler{
		log:            baseLog.With("handler", "RoleHandler"),
		profileService: profileService,
	}
}

// GET /api/roles
// All known role skill profiles, newest first.
func (rh *RoleHandler) ListRoles(c *gin.Context) {
	profiles, err := rh.profileService.ListAll(c.Request.Context())
	if err != nil {
		rh.log.Error("role listing failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list roles"})
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, gin.H{
			"role":    p.RoleName,
			"skills":  types.StringSlice(p.RequiredSkills),
			"version": p.Version,
			"locked":  p.Locked,
		})
	}
	c.JSON(http.StatusOK, out)
}
