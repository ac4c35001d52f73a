package gradle

import (
	"io"
	"strings"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

// indentWidth is the number of columns per tree level ("|    " or "     ").
const indentWidth = 5

const projectPrefix = "project "

// ParseTree reads the output of `gradle dependencies` and returns the
// sorted, deduplicated direct dependencies of the printed configuration.
//
// Banner and log lines before the first tree line are skipped, and the
// first line without tree art ends the tree. A second tree after that
// means several configurations were printed and fails with
// MISSING_CONFIGURATION.
func ParseTree(r io.Reader) ([]string, error) {
	p := newTreeParser()
	if err := eachLine(r, p.line); err != nil {
		return nil, err
	}
	return p.seen.sorted(), nil
}

// ParseTreeString is [ParseTree] over an in-memory report.
func ParseTreeString(s string) ([]string, error) {
	return ParseTree(strings.NewReader(s))
}

// treeParser holds the state of a single ParseTree call.
type treeParser struct {
	started bool // first root line seen
	ended   bool // a non-tree line followed the tree
	level   int  // depth of the last accepted line
	seen    set
}

func newTreeParser() *treeParser {
	return &treeParser{seen: make(set)}
}

func (p *treeParser) line(n int, raw string) error {
	l, err := splitTreeLine(raw)
	if err != nil {
		return err.AtLine(n)
	}

	if !p.started || p.ended {
		switch {
		case !l.ok:
			return nil
		case l.depth != 0:
			return errors.New(errors.ErrCodeInvalidIndent, "unexpected indent at depth %d", l.depth).AtLine(n)
		case p.ended:
			return errors.New(errors.ErrCodeMissingConfiguration,
				"Please specify `--configuration` option. e.g: `--configuration releaseRuntimeClasspath`").AtLine(n)
		}
		p.started = true
	}

	if !l.ok {
		p.ended = true
		return nil
	}

	if strings.HasPrefix(l.token, projectPrefix) {
		// children of a project are direct dependencies of this configuration
		p.level = l.depth + 1
		return nil
	}

	if p.level < l.depth {
		return nil
	}
	p.level = l.depth

	c, perr := parseToken(l.token)
	if perr != nil {
		return perr.AtLine(n)
	}
	p.seen.add(c.String())
	return nil
}

// treeLine is one line of a dependency report.
type treeLine struct {
	ok    bool // the line carries tree art
	depth int
	token string
}

// splitTreeLine locates the "+--- " or "\--- " connector and returns the
// nesting depth and the dependency token after it.
func splitTreeLine(line string) (treeLine, *errors.Error) {
	line = strings.TrimRight(line, " \t\r")

	idx := strings.Index(line, "--- ")
	if idx < 1 || (line[idx-1] != '+' && line[idx-1] != '\\') {
		return treeLine{}, nil
	}

	col := idx - 1
	if col%indentWidth != 0 {
		return treeLine{}, errors.New(errors.ErrCodeInvalidIndent, "unexpected indent: %d", col)
	}

	return treeLine{ok: true, depth: col / indentWidth, token: line[idx+len("--- "):]}, nil
}
