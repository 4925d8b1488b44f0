package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/ordtree"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func pairsFile(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "tacos.txt")
	content := "al pastor = pork\ncarnitas = pork\npollo = chicken\nbarbacoa = beef\nnopales = cactus\n"
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err.Error())
	}
	return name
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo")
	if err != nil {
		t.Fatal(err.Error())
	}
	expected := " // Key: 1, value: taco; \nget(1) = taco\nget(2) = <absent>\n"
	if out != expected {
		t.Errorf("unexpected demo output %q", out)
	}
	if _, err := run(t, "demo", "--lower-bound", "0"); !errors.Is(err, ordtree.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestGet(t *testing.T) {
	name := pairsFile(t)
	out, err := run(t, "get", name, "pollo")
	if err != nil {
		t.Fatal(err.Error())
	}
	if out != "chicken\n" {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := run(t, "get", name, "pescado"); !errors.Is(err, errNotFound) {
		t.Errorf("expected errNotFound, got %v", err)
	}
	if _, err := run(t, "get", name); err == nil {
		t.Errorf("expected argument error")
	}
}

func TestInspectionCommands(t *testing.T) {
	color.NoColor = true
	name := pairsFile(t)
	out, err := run(t, "dump", name, "--lower-bound", "1", "--width", "60")
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.HasPrefix(out, "▸ [") || !strings.Contains(out, "pollo=chicken") {
		t.Errorf("unexpected dump %q", out)
	}
	out, err = run(t, "dot", name)
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.HasPrefix(out, "strict digraph {") {
		t.Errorf("unexpected DOT output %q", out)
	}
	out, err = run(t, "html", name)
	if err != nil {
		t.Fatal(err.Error())
	}
	if !strings.Contains(out, "<dt>nopales</dt><dd>cactus</dd>") {
		t.Errorf("unexpected HTML output %q", out)
	}
	if _, err := run(t, "dump", name, "--trace", "chatty"); err == nil {
		t.Errorf("expected error for unknown trace level")
	}
}
