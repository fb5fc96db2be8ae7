package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text handler in dev, JSON otherwise
	BackendZap Backend = "zap" // slog over a zap core
)

type Config struct {
	// identity attrs attached to every record
	Service    string
	Version    string
	InstanceID string

	// output control
	Level   slog.Level
	Env     Env
	Backend Backend // empty: std for dev, zap for stage/prod
	Debug   bool

	// zap sampling
	SampleInitial    int
	SampleThereafter int

	AddSource bool
}
