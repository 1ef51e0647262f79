package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
)

func TestPrintCardContainsEveryLayer(t *testing.T) {
	c := content.Default()
	out := printCard(c, 60)

	want := append([]string{}, c.TitleLines()...)
	want = append(want, c.Greeting.Emphasis, "亲爱的爸爸", c.Memories, c.Blessing.Heading)
	for _, p := range c.Photos {
		want = append(want, p.Caption)
	}
	want = append(want, c.Blessing.Lines...)
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("printed card missing %q", w)
		}
	}
	if !strings.Contains(out, "1/4  "+c.Photos[0].Caption) {
		t.Error("photo numbering missing")
	}
}

func TestPrintCardWidth(t *testing.T) {
	c := content.Default()
	for _, tt := range []struct{ width, limit int }{
		{60, 60},
		{48, 48},
		{10, constants.MinWidth},
	} {
		out := printCard(c, tt.width)
		for i, line := range strings.Split(out, "\n") {
			if w := lipgloss.Width(line); w > tt.limit {
				t.Errorf("width %d: line %d is %d cells: %q", tt.width, i, w, line)
			}
		}
	}
}

func TestPrintCmd(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte("letter: Dear Dad, thank you.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"print", "--content", path, "--width", "50"})
	if err := root.Execute(); err != nil {
		t.Fatalf("print error = %v (stderr %q)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "Dear Dad, thank you.") {
		t.Errorf("custom letter not printed:\n%s", out.String())
	}
}

func TestPrintCmdBadContent(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte("photos: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"print", "--content", path})
	if err := root.Execute(); err == nil {
		t.Error("content without photos accepted")
	}
}
