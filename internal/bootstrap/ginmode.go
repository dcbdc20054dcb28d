package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/Busrapehlivan/project-advisor/internal/logging"
)

// SetGinMode switches gin to release mode in production and applies the log level.
func SetGinMode(env, logLevel string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logging.SetLevel(logLevel)
}
