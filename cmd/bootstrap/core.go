package bootstrap

import (
	"log/slog"
	"os"

	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/pkg/jwt"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
)

var JWTModule = fx.Module("jwt",
	fx.Provide(NewJWTService),
)

// NewLogger also installs the logger as slog's default so package-level slog calls match.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewJWTService validates tokens minted by the identity provider with the shared secret.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
}
