package ai

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/vec"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	for _, enabled := range []bool{true, false, true} {
		EnableDebugLogging(enabled)
		if got := IsDebugEnabled(); got != enabled {
			t.Errorf("IsDebugEnabled() = %v, want %v", got, enabled)
		}
	}
}

func TestDebugCreep_RespectsFlag(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		slog.SetDefault(prev)
		EnableDebugLogging(false)
	})

	c := model.NewCreep(42, 43, model.TeamJupyter, vec.Vec3{}, vec.Identity, 0)

	EnableDebugLogging(false)
	debugCreep("silent", c)
	if buf.Len() != 0 {
		t.Fatalf("debugCreep logged with flag off: %q", buf.String())
	}

	EnableDebugLogging(true)
	debugCreep("loud", c, "extra", 1)
	out := buf.String()
	for _, want := range []string{"msg=loud", "objectID=42", "team=JUPYTER", "state=IDLE", "extra=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
