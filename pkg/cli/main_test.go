package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nimburion/unistore/pkg/config"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

func TestOpenStore_UnknownStoreFails(t *testing.T) {
	cfg := config.DefaultConfig()
	log, err := logger.NewZapLogger(logger.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected logger error: %v", err)
	}

	if _, _, err := openStore("cassandra", cfg, log); err == nil {
		t.Fatal("expected error for unknown store name")
	}
}

func TestSensorCommand_PrintsConvertedReading(t *testing.T) {
	cmd := newSensorCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--fahrenheit", "77"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected execute error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two sensor readings, got %q", out.String())
	}
	if lines[0] != "25.00°C" || lines[1] != "25.00°C" {
		t.Fatalf("expected matching 25.00°C readings, got %v", lines)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	if !names["demo"] || !names["health"] || !names["sensor"] {
		t.Fatalf("expected demo, health and sensor subcommands, got %v", names)
	}
}
