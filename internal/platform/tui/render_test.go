package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-turrets/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetCell(0, 2, '█', core.ColorBrightWhite)

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	expected := []string{"abcd  ", "      ", "█     "}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, expected plain text", got)
	}
	for c := core.ColorDefault; c <= core.ColorOrange; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", false)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged without debug level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Errorf("info output = %q", out)
	}

	buf.Reset()
	NewLogger(&buf, "test", true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message missing at debug level")
	}

	// A nil writer discards.
	NewLogger(nil, "", true).Info("nowhere")
}

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile("")
	if err != nil || w != nil {
		t.Fatalf("empty path: w=%v err=%v", w, err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("no-op close: %v", err)
	}

	path := t.TempDir() + "/turrets.log"
	w, closeFn, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	NewLogger(w, "", false).Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
