package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaflat/internal/logging"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "warn", logging.FormatJSON)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("unresolved reference", zap.String("ref", "#/components/schemas/Missing"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"ref":"#/components/schemas/Missing"`) {
		t.Fatalf("expected structured field, got %s", out)
	}
}

func TestNewWithWriter_Errors(t *testing.T) {
	if _, err := logging.NewWithWriter(&bytes.Buffer{}, "loud", ""); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := logging.NewWithWriter(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
