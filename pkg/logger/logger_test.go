package logger

import (
	"humaniq_backend/internal/config"
	"testing"

	"go.uber.org/zap"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"explicit", config.Config{Log: config.LogConfig{Level: "warn"}}, "warn"},
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: config.ModeDebug}}, "debug"},
		{"release mode", config.Config{Server: config.ServerConfig{Mode: config.ModeRelease}}, "info"},
		{"garbage level", config.Config{Log: config.LogConfig{Level: "loud"}, Server: config.ServerConfig{Mode: config.ModeRelease}}, "info"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := levelFor(&tc.cfg).String(); got != tc.want {
				t.Fatalf("got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestApplyConfigChangesLevel(t *testing.T) {
	SetLevel(zap.InfoLevel)
	ApplyConfig(&config.Config{Log: config.LogConfig{Level: "error"}})
	if level.Level() != zap.ErrorLevel {
		t.Fatalf("level not applied: %s", level.Level())
	}
	SetLevel(zap.InfoLevel)
}
