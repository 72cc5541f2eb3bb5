package controllers

import (
	"net/http"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/pkg/db"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/redis"
)

type HealthController struct {
	db    db.Pinger
	redis redis.Pinger
	logg  *logger.Logger
}

func NewHealthController(database db.Pinger, cache redis.Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{db: database, redis: cache, logg: logg}
}

// Live reports process liveness only.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready checks the datastores this service cannot run without.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := c.db.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg, apperrors.Wrap(apperrors.CodeDependency, err, "database unreachable"))
		return
	}
	if err := c.redis.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg, apperrors.Wrap(apperrors.CodeDependency, err, "redis unreachable"))
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
