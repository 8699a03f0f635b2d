package routes

import (
	"time"

	"billing-admin/internal/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// Register builds the HTTP engine. An empty allowOrigins allows any origin.
func Register(st controllers.Store, allowOrigins []string, log *logrus.Logger) *gin.Engine {
	inv := controllers.InvoiceController{Store: st, Log: log}
	rep := controllers.ReportsController{Store: st, Log: log}
	health := controllers.HealthController{Store: st, Log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(log))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", health.Check)

	api := r.Group("/api")

	api.GET("/invoices", inv.List)
	api.GET("/invoices/pending", inv.Pending)
	api.GET("/invoices/:id", inv.GetByID)
	api.POST("/invoices", inv.Create)
	api.PUT("/invoices/:id", inv.Update)
	api.DELETE("/invoices/:id", inv.Delete)

	api.GET("/clients/total-paid", rep.ClientTotalPaid)
	api.GET("/platforms/transactions", rep.PlatformTransactions)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		entry.Info("request")
	}
}
