package ordtree

import (
	"cmp"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/ordtree/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewSingleEntryTree(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, err := New(1, "taco", 2)
	if err != nil {
		t.Fatal(err.Error())
	}
	if v, ok := tree.Get(1); !ok || v != "taco" {
		t.Errorf("expected Get(1) to be 'taco', is %q/%v", v, ok)
	}
	if v, ok := tree.Get(2); ok || v != "" {
		t.Errorf("expected Get(2) to be absent, is %q/%v", v, ok)
	}
	if tree.Len() != 1 || tree.LowerBound() != 2 || tree.UpperBound() != 4 {
		t.Errorf("unexpected metadata len=%d lower=%d upper=%d",
			tree.Len(), tree.LowerBound(), tree.UpperBound())
	}
	if !tree.Root().IsLeaf() || tree.Height() != 1 {
		t.Errorf("expected single leaf root")
	}
	if err := tree.Check(); err != nil {
		t.Errorf("unexpected invariant violation: %v", err)
	}
}

func TestNewRejectsLowerBoundZero(t *testing.T) {
	_, err := New(1, "taco", 0)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	_, err = New(1, "taco", -3)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for negative bound, got %v", err)
	}
}

func TestTreeString(t *testing.T) {
	tree, err := New(1, "taco", 2)
	if err != nil {
		t.Fatal(err.Error())
	}
	if s := tree.String(); s != " // Key: 1, value: taco; " {
		t.Errorf("unexpected rendering %q", s)
	}
	branchy := assembleScenario(t)
	if s := branchy.String(); s != "" {
		t.Errorf("expected branch root to render empty, is %q", s)
	}
}

func assembleScenario(t *testing.T) *BTree[int, string] {
	t.Helper()
	root, err := btree.NewBranch[int, string](
		[]btree.BranchEntry[int, string]{
			btree.NewBranchEntry[int, string](btree.NewLeaf(btree.NewLeafEntry(5, "a")), 10, "b"),
		},
		btree.NewLeaf(btree.NewLeafEntry(15, "c")),
	)
	if err != nil {
		t.Fatal(err.Error())
	}
	tree, err := Assemble[int, string](root, btree.OrderedConfig[int](2))
	if err != nil {
		t.Fatal(err.Error())
	}
	return tree
}

func TestAssembledBranchLookup(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := assembleScenario(t)
	expect := map[int]string{5: "a", 10: "b", 15: "c"}
	for k, v := range expect {
		if got, ok := tree.Get(k); !ok || got != v {
			t.Errorf("Get(%d) = %q/%v, expected %q", k, got, ok, v)
		}
	}
	if _, ok := tree.Get(20); ok {
		t.Errorf("expected Get(20) to be absent")
	}
	if tree.Len() != 3 || tree.Height() != 2 {
		t.Errorf("unexpected len/height %d/%d", tree.Len(), tree.Height())
	}
	var keys []int
	for k := range tree.All() {
		keys = append(keys, k)
	}
	if len(keys) != 3 || keys[0] != 5 || keys[2] != 15 {
		t.Errorf("unexpected iteration order %v", keys)
	}
}

func TestAssembleRejectsUnorderedNodes(t *testing.T) {
	root := btree.NewLeaf(btree.NewLeafEntry(3, "c"), btree.NewLeafEntry(1, "a"))
	_, err := Assemble[int, string](root, btree.OrderedConfig[int](2))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	_, err = Assemble[int, string](nil, btree.OrderedConfig[int](2))
	if !errors.Is(err, ErrIllegalArguments) {
		t.Fatalf("expected ErrIllegalArguments for nil root, got %v", err)
	}
	_, err = Assemble[int, string](btree.NewLeaf(btree.NewLeafEntry(1, "a")), btree.OrderedConfig[int](0))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewWithConfigCustomOrder(t *testing.T) {
	cfg := btree.Config[string]{
		LowerBound: 1,
		Compare: func(a, b string) int {
			return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
		},
	}
	tree, err := NewWithConfig(" Taco", 3, cfg)
	if err != nil {
		t.Fatal(err.Error())
	}
	if v, ok := tree.Get(" tACO"); !ok || v != 3 {
		t.Errorf("expected case-insensitive hit, got %d/%v", v, ok)
	}
}

func TestNilTreeIsEmpty(t *testing.T) {
	var tree *BTree[int, int]
	if _, ok := tree.Get(1); ok {
		t.Errorf("nil tree reports a hit")
	}
	if tree.Len() != 0 || tree.Height() != 0 || tree.String() != "" {
		t.Errorf("nil tree reports content")
	}
	for range tree.All() {
		t.Errorf("nil tree yields entries")
	}
	if tree.LowerBound() != 0 || tree.UpperBound() != 0 || tree.Config().Compare != nil {
		t.Errorf("nil tree reports a configuration")
	}
	if tree.Root() != nil {
		t.Errorf("nil tree reports a root node")
	}
}

func TestTree2Dot(t *testing.T) {
	tree := assembleScenario(t)
	var sb strings.Builder
	if err := Tree2Dot(tree, &sb); err != nil {
		t.Fatal(err.Error())
	}
	dot := sb.String()
	t.Logf("\n%s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT output not framed as digraph")
	}
	if strings.Count(dot, "->") != 2 || !strings.Contains(dot, "[style=dashed]") {
		t.Errorf("expected two edges, one of them dashed")
	}
	if !strings.Contains(dot, `label="10"`) || !strings.Contains(dot, `label="15"`) {
		t.Errorf("expected keys as node labels")
	}
	if err := Tree2Dot[int, string](nil, &sb); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments for nil tree, got %v", err)
	}
}

func TestTree2DotEscapesLabels(t *testing.T) {
	b := NewBuilder[string, int](btree.OrderedConfig[string](1))
	for i, k := range []string{"k|1", "k|2", `k"3`} {
		if err := b.Add(k, i); err != nil {
			t.Fatal(err.Error())
		}
	}
	tree, err := b.Tree()
	if err != nil {
		t.Fatal(err.Error())
	}
	var sb strings.Builder
	if err := Tree2Dot(tree, &sb); err != nil {
		t.Fatal(err.Error())
	}
	dot := sb.String()
	t.Logf("\n%s", dot)
	if !strings.Contains(dot, `label="k\|1"`) {
		t.Errorf("expected record label of branch to be escaped")
	}
	if !strings.Contains(dot, `label="k|2"`) || !strings.Contains(dot, `label="k\"3"`) {
		t.Errorf("expected box labels of leaves to escape quotes only")
	}
}

var errBrokenPipe = errors.New("broken pipe")

// failingWriter accepts n writes, then fails.
type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errBrokenPipe
	}
	w.n--
	return len(p), nil
}

func TestTree2DotReportsWriteErrors(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := assembleScenario(t)
	for n := range 3 {
		if err := Tree2Dot(tree, &failingWriter{n: n}); !errors.Is(err, errBrokenPipe) {
			t.Errorf("writer failing after %d writes: expected write error, got %v", n, err)
		}
	}
}
