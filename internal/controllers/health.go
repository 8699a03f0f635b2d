package controllers

import (
	"net/http"

	"billing-admin/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthController struct {
	Store Store
	Log   logrus.FieldLogger
}

func (c HealthController) Check(ctx *gin.Context) {
	if err := c.Store.Ping(ctx.Request.Context()); err != nil {
		config.LogError(c.Log, "controllers/health", "Check", "ping", nil, err)
		ctx.Status(http.StatusServiceUnavailable)
		return
	}
	ctx.Status(http.StatusNoContent)
}
