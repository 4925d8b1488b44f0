/*
Package console prints the node structure of trees to devices with
fixed-width fonts.

Every node is printed on a line of its own, indented by its depth. Branch
lines show the entry keys, leaf lines show the key/value entries. Lines are
clipped to the configured display width, which is measured per grapheme
(UAX#29) with East Asian width rules (UAX#11) applied, so wide characters
do not overflow the terminal.
*/
package console

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/ordtree"
	"github.com/npillmayer/ordtree/btree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// tracer writes to trace with key 'ordtree'
func tracer() tracing.Trace {
	return tracing.Select("ordtree")
}

const (
	defaultLineWidth = 65
	minLineWidth     = 10
	ellipsis         = "…"
)

// Palette maps the parts of a dump to colors.
type Palette struct {
	Branch *color.Color // marker and keys of branch lines
	Key    *color.Color // keys of leaf entries
	Value  *color.Color // values of leaf entries
}

// DefaultPalette returns the palette used if a Config does not set one.
func DefaultPalette() *Palette {
	return &Palette{
		Branch: color.New(color.FgBlue, color.Bold),
		Key:    color.New(color.FgRed),
		Value:  color.New(color.FgGreen),
	}
}

// Config configures a dump.
type Config struct {
	LineWidth int            // display width in fixed-width ‘en’s
	Indent    string         // prefix repeated once per depth level
	Context   *uax11.Context // width context, defaults to uax11.LatinContext
	Palette   *Palette       // colors, defaults to DefaultPalette()
}

func (config *Config) normalized() *Config {
	c := Config{}
	if config != nil {
		c = *config
	}
	if c.LineWidth <= 0 {
		c.LineWidth = defaultLineWidth
	}
	c.LineWidth = max(c.LineWidth, minLineWidth)
	if c.Indent == "" {
		c.Indent = "  "
	}
	if c.Context == nil {
		c.Context = uax11.LatinContext
	}
	if c.Palette == nil {
		c.Palette = DefaultPalette()
	}
	return &c
}

var setupGraphemes sync.Once

// Dump writes the node structure of t to w, one line per node. If config is
// nil, defaults are used.
func Dump[K, V any](w io.Writer, t *ordtree.BTree[K, V], config *Config) error {
	if t == nil || t.Root() == nil {
		return ordtree.ErrIllegalArguments
	}
	setupGraphemes.Do(func() { grapheme.SetupGraphemeClasses() })
	config = config.normalized()
	return btree.Walk(t.Root(), func(n btree.Node[K, V], depth int) error {
		indent := strings.Repeat(config.Indent, depth)
		line := newLine(w, config)
		line.plain(indent)
		switch node := n.(type) {
		case *btree.Branch[K, V]:
			keys := make([]string, node.Len())
			for i := range node.Len() {
				keys[i] = fmt.Sprint(node.At(i).Key())
			}
			line.styled("▸ ["+strings.Join(keys, " | ")+"]", config.Palette.Branch)
		case *btree.Leaf[K, V]:
			line.plain("·")
			for i := range node.Len() {
				e := node.At(i)
				line.plain(" ")
				line.styled(fmt.Sprint(e.Key()), config.Palette.Key)
				line.plain("=")
				line.styled(fmt.Sprint(e.Value()), config.Palette.Value)
			}
		}
		return line.end()
	})
}

// Print outputs a dump of t to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive).
func Print[K, V any](t *ordtree.BTree[K, V], config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Dump(os.Stdout, t, config)
}

// --- Line output -----------------------------------------------------------

// line outputs styled fragments until the display width is exhausted.
type line struct {
	w       io.Writer
	ctx     *uax11.Context
	ccnt    int // number of character positions already printed for line
	ctarget int // linelength in fixedwidth ‘en’s
	clipped bool
	err     error
}

func newLine(w io.Writer, config *Config) *line {
	return &line{w: w, ctx: config.Context, ctarget: config.LineWidth}
}

func (l *line) plain(s string) {
	l.styled(s, nil)
}

func (l *line) styled(s string, c *color.Color) {
	if l.clipped || l.err != nil || s == "" {
		return
	}
	width := displayWidth(s, l.ctx)
	if l.ccnt+width > l.ctarget {
		room := l.ctarget - l.ccnt - displayWidth(ellipsis, l.ctx)
		l.clipped = true
		if room < 0 {
			return
		}
		s = clip(s, room, l.ctx) + ellipsis
	}
	l.ccnt += displayWidth(s, l.ctx)
	if c != nil {
		_, l.err = c.Fprint(l.w, s)
	} else {
		_, l.err = io.WriteString(l.w, s)
	}
}

func (l *line) end() error {
	if l.err != nil {
		return l.err
	}
	_, err := io.WriteString(l.w, "\n")
	return err
}

func displayWidth(s string, ctx *uax11.Context) int {
	return uax11.StringWidth(grapheme.StringFromString(s), ctx)
}

// clip returns the longest prefix of s (in graphemes) which fits into room
// display positions.
func clip(s string, room int, ctx *uax11.Context) string {
	if room <= 0 {
		return ""
	}
	gstr := grapheme.StringFromString(s)
	var sb strings.Builder
	width := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		width += uax11.Width([]byte(g), ctx)
		if width > room {
			break
		}
		sb.WriteString(g)
	}
	return sb.String()
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a dump Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil {
			config.LineWidth = defaultLineWidth
		} else if w > 30 {
			config.LineWidth = w - 2
		} else {
			config.LineWidth = max(w, minLineWidth)
		}
	} else {
		config.LineWidth = defaultLineWidth
	}
	tracer().Infof("console: setting line length to %d en", config.LineWidth)
	return config
}
