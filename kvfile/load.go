package kvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/ordtree"
	"github.com/npillmayer/ordtree/btree"
)

// Some defaults for fragment sizes and channel capacities
const (
	defaultFragmentLines = 256
	prefetchFragments    = 2  // fragments read ahead of the parser
	subscriberCapacity   = 16 // buffered progress notices per subscriber
)

var (
	// ErrSyntax signals a malformed line in a key/value file.
	ErrSyntax = errors.New("kvfile: syntax error")
	// ErrLoaded signals that a loader has already been used.
	ErrLoaded = errors.New("kvfile: loader already used")
)

// Options configures loading of a key/value file.
type Options struct {
	LowerBound    int    // lower bound of the resulting tree, 0 means btree.DefaultLowerBound
	FragmentLines int    // number of lines per fragment, 0 means a sensible default
	Separator     string // separates key from value, "" means "="
}

func (o Options) normalized() Options {
	if o.LowerBound == 0 {
		o.LowerBound = btree.DefaultLowerBound
	}
	if o.FragmentLines <= 0 {
		o.FragmentLines = defaultFragmentLines
	}
	if o.Separator == "" {
		o.Separator = "="
	}
	return o
}

// Progress is broadcast to subscribers of a Loader after every fragment.
type Progress struct {
	Fragment int  // index of the fragment just staged, starting at 0
	Lines    int  // number of lines read so far
	Entries  int  // number of key/value pairs staged so far
	Done     bool // set for the final notice of a successful load
}

// fragment is a run of consecutive lines of a file.
type fragment struct {
	index     int
	firstLine int // 1-based line number of lines[0]
	lines     []string
	err       error
}

// Loader reads a key/value file into a tree.
type Loader struct {
	path      string
	info      os.FileInfo
	opts      Options
	mx        sync.Mutex     // guards cast and used
	cast      *caster.Caster // broadcaster for load progress, created on first Subscribe
	used      bool
	lastError error
}

// NewLoader prepares loading of file name. The file is checked to be a
// regular file, but not yet opened.
func NewLoader(name string, opts Options) (*Loader, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file: %s", name)
	}
	opts = opts.normalized()
	if opts.LowerBound < 1 {
		return nil, fmt.Errorf("%w: lower bound must be >= 1, is %d",
			ordtree.ErrInvalidConfiguration, opts.LowerBound)
	}
	return &Loader{
		path: name,
		info: fi,
		opts: opts,
	}, nil
}

// Subscribe returns a channel of Progress notices for the next Load. The
// channel is closed when loading has finished, successfully or not.
// Subscribers have to drain the channel, as a stalled subscriber stalls
// loading. Subscribing to a loader which has already been used fails.
func (l *Loader) Subscribe(ctx context.Context) (<-chan interface{}, bool) {
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.used {
		return nil, false
	}
	if l.cast == nil {
		l.cast = caster.New(nil) // we will broadcast messages when fragments are staged
	}
	return l.cast.Sub(ctx, subscriberCapacity)
}

// Err returns the last error encountered by the loader, if any.
func (l *Loader) Err() error {
	return l.lastError
}

// Load reads the file and builds a tree of its key/value pairs. A loader may
// be used once.
func (l *Loader) Load(ctx context.Context) (*ordtree.BTree[string, string], error) {
	l.mx.Lock()
	if l.used {
		l.mx.Unlock()
		return nil, ErrLoaded
	}
	l.used = true
	cast := l.cast
	l.mx.Unlock()
	if cast != nil {
		defer cast.Close()
	}
	tree, err := l.load(ctx, cast)
	if err != nil {
		l.lastError = err
		tracer().Errorf("kvfile: loading %s: %v", l.path, err)
		return nil, err
	}
	return tree, nil
}

func (l *Loader) load(ctx context.Context, cast *caster.Caster) (*ordtree.BTree[string, string], error) {
	file, err := os.Open(l.path) // just open for read access
	if err != nil {
		return nil, err
	}
	defer file.Close()
	tracer().Debugf("kvfile: loading %s (%d bytes), %d lines per fragment",
		l.path, l.info.Size(), l.opts.FragmentLines)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the reader on early return
	frags := make(chan fragment, prefetchFragments)
	go readFragments(ctx, bufio.NewScanner(file), l.opts.FragmentLines, frags)
	//
	builder := ordtree.NewBuilder[string, string](btree.OrderedConfig[string](l.opts.LowerBound))
	progress := Progress{}
	for frag := range frags {
		if frag.err != nil {
			return nil, frag.err
		}
		for i, line := range frag.lines {
			key, value, ok, err := parseLine(line, l.opts.Separator)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", l.path, frag.firstLine+i, err)
			}
			if !ok {
				continue
			}
			if err := builder.Add(key, value); err != nil {
				return nil, err
			}
		}
		progress.Fragment = frag.index
		progress.Lines += len(frag.lines)
		progress.Entries = builder.Len()
		publish(cast, progress)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := builder.Tree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	progress.Done = true
	publish(cast, progress)
	tracer().Infof("kvfile: loaded %d entries from %s", tree.Len(), l.path)
	return tree, nil
}

// Load is a convenience function which reads file name synchronously into a
// tree with the given lower bound.
func Load(name string, lowerBound int) (*ordtree.BTree[string, string], error) {
	if lowerBound < 1 {
		return nil, fmt.Errorf("%w: lower bound must be >= 1, is %d",
			ordtree.ErrInvalidConfiguration, lowerBound)
	}
	loader, err := NewLoader(name, Options{LowerBound: lowerBound})
	if err != nil {
		return nil, err
	}
	return loader.Load(context.Background())
}

// --- File reading goroutine ------------------------------------------------

func readFragments(ctx context.Context, scanner *bufio.Scanner, size int, out chan<- fragment) {
	defer close(out)
	send := func(f fragment) bool {
		select {
		case out <- f:
			return true
		case <-ctx.Done():
			return false
		}
	}
	frag := fragment{firstLine: 1, lines: make([]string, 0, size)}
	lineno := 0
	for scanner.Scan() {
		lineno++
		frag.lines = append(frag.lines, scanner.Text())
		if len(frag.lines) == size {
			if !send(frag) {
				return
			}
			frag = fragment{index: frag.index + 1, firstLine: lineno + 1, lines: make([]string, 0, size)}
		}
	}
	if err := scanner.Err(); err != nil {
		send(fragment{index: frag.index, err: fmt.Errorf("error loading key/value fragment: %w", err)})
		return
	}
	if len(frag.lines) > 0 {
		send(frag)
	}
}

// --- Helpers ---------------------------------------------------------------

func publish(cast *caster.Caster, p Progress) {
	if cast != nil {
		cast.Pub(p)
	}
}

// parseLine splits a line into key and value. ok is false for blank lines
// and comments.
func parseLine(line, sep string) (key, value string, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}
	k, v, found := strings.Cut(line, sep)
	if !found {
		return "", "", false, fmt.Errorf("%w: missing separator %q", ErrSyntax, sep)
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false, fmt.Errorf("%w: empty key", ErrSyntax)
	}
	return key, strings.TrimSpace(v), true, nil
}
