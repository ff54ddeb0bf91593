package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger del proceso.
type Config struct {
	Env         string // "prod" emite JSON; cualquier otro valor, consola con colores
	Level       string // debug, info, warn, error. Vacío o desconocido = info
	ServiceName string
	Version     string
}

func (c Config) isProd() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "prod")
}

// baseFields van en todas las líneas.
func (c Config) baseFields() []zap.Field {
	var fields []zap.Field
	if c.ServiceName != "" {
		fields = append(fields, zap.String("service", c.ServiceName))
	}
	if c.Version != "" {
		fields = append(fields, zap.String("version", c.Version))
	}
	return fields
}

func build(cfg Config) *zap.Logger {
	zcfg := consoleConfig()
	opts := []zap.Option{zap.AddCaller()}
	if cfg.isProd() {
		zcfg = jsonConfig()
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	l, err := zcfg.Build(opts...)
	if err != nil {
		// config inválida: mejor un logger JSON por defecto que ninguno
		l, _ = zap.NewProduction()
	}
	return l.With(cfg.baseFields()...)
}

func consoleConfig() zap.Config {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true
	return zcfg
}

func jsonConfig() zap.Config {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	return zcfg
}

func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
