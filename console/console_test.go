package console

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/ordtree"
	"github.com/npillmayer/ordtree/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

func TestDumpSingleLeaf(t *testing.T) {
	color.NoColor = true
	tree, err := ordtree.New(1, "taco", 2)
	if err != nil {
		t.Fatal(err.Error())
	}
	var sb strings.Builder
	if err := Dump(&sb, tree, nil); err != nil {
		t.Fatal(err.Error())
	}
	if sb.String() != "· 1=taco\n" {
		t.Errorf("unexpected dump %q", sb.String())
	}
}

func TestDumpBranches(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	color.NoColor = true
	b := ordtree.NewBuilder[int, string](btree.OrderedConfig[int](1))
	for i := range 7 {
		_ = b.Add(i, fmt.Sprintf("v%d", i))
	}
	tree, err := b.Tree()
	if err != nil {
		t.Fatal(err.Error())
	}
	var sb strings.Builder
	if err := Dump(&sb, tree, &Config{LineWidth: 80, Indent: "--"}); err != nil {
		t.Fatal(err.Error())
	}
	t.Logf("\n%s", sb.String())
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(lines) != 4 { // root branch with three leaves
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "▸ [2 | 5]" {
		t.Errorf("expected root branch line, got %q", lines[0])
	}
	if lines[1] != "--· 0=v0 1=v1" || lines[3] != "--· 6=v6" {
		t.Errorf("expected indented leaf lines, got %q and %q", lines[1], lines[3])
	}
}

func TestDumpClipsLines(t *testing.T) {
	color.NoColor = true
	b := ordtree.NewBuilder[string, string](btree.OrderedConfig[string](20))
	for i := range 30 {
		_ = b.Add(fmt.Sprintf("key%02d", i), "日本語の値")
	}
	tree, err := b.Tree()
	if err != nil {
		t.Fatal(err.Error())
	}
	var sb strings.Builder
	config := &Config{LineWidth: 40, Context: uax11.LatinContext}
	if err := Dump(&sb, tree, config); err != nil {
		t.Fatal(err.Error())
	}
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		if w := displayWidth(line, uax11.LatinContext); w > 40 {
			t.Errorf("line exceeds width 40 (%d): %q", w, line)
		}
		if strings.Contains(line, "key29") {
			t.Errorf("expected line to be clipped: %q", line)
		}
	}
}

func TestDumpRejectsNilTree(t *testing.T) {
	var sb strings.Builder
	if err := Dump[int, int](&sb, nil, nil); err != ordtree.ErrIllegalArguments {
		t.Errorf("expected ErrIllegalArguments, got %v", err)
	}
}

func TestClipKeepsGraphemesIntact(t *testing.T) {
	setupGraphemes.Do(func() { grapheme.SetupGraphemeClasses() })
	tests := []struct {
		s        string
		room     int
		expected string
	}{
		{"abc", 0, ""},
		{"abc", 5, "abc"},
		{"ae\u0301b", 2, "ae\u0301"},
		{"ae\u0301b", 1, "a"},
		{"日本語", 3, "日"},
		{"日本語", 4, "日本"},
	}
	for i, test := range tests {
		if got := clip(test.s, test.room, uax11.LatinContext); got != test.expected {
			t.Errorf("test #%d: clip(%q, %d) = %q, expected %q", i, test.s, test.room, got, test.expected)
		}
	}
}
