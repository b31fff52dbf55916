package observe

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		status int
		want   zapcore.Level
	}{
		{200, zapcore.InfoLevel},
		{201, zapcore.InfoLevel},
		{302, zapcore.DebugLevel},
		{401, zapcore.WarnLevel},
		{404, zapcore.WarnLevel},
		{500, zapcore.ErrorLevel},
		{503, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		if got := LevelFor(tc.status); got != tc.want {
			t.Errorf("LevelFor(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestWrapPassesThroughResult(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	op := Wrap(logger, "double", func(out int, err error) int { return 200 },
		func(ctx context.Context, in int) (int, error) { return in * 2, nil })

	got, err := op(context.Background(), 21)
	if err != nil {
		t.Fatalf("wrapped op error: %v", err)
	}
	if got != 42 {
		t.Fatalf("wrapped op = %d, want 42", got)
	}
}

func TestWrapPassesThroughErrorUnchanged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	boom := errors.New("boom")
	op := Wrap(logger, "fail", func(out string, err error) int { return 500 },
		func(ctx context.Context, in string) (string, error) { return "", boom })

	_, err := op(context.Background(), "in")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want original error unchanged", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("level = %v, want error for status 500", entries[0].Level)
	}
}

func TestWrapLogsWarnForClientRejection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	op := Wrap(logger, "login", func(out string, err error) int { return 401 },
		func(ctx context.Context, in string) (string, error) { return "", errors.New("unauthorized") })

	_, _ = op(context.Background(), "in")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("entries = %+v, want one warn entry", entries)
	}
}
