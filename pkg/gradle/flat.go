package gradle

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

// ParseFlat reads one dependency per line, without tree art, and returns
// the sorted, deduplicated list.
//
// Blank lines are ignored. Lines with exactly three colon-separated
// segments are normalized with [Normalize]; any other line is kept
// verbatim, so versionless "group:artifact" entries pass through.
func ParseFlat(r io.Reader) ([]string, error) {
	seen := make(set)
	err := eachLine(r, func(n int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		if strings.Count(line, ":") != 2 {
			seen.add(line)
			return nil
		}
		coord, err := parseToken(line)
		if err != nil {
			return err.AtLine(n)
		}
		seen.add(coord.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen.sorted(), nil
}

// eachLine calls fn for every line of r with its 1-based number and the
// line terminator removed. Lines are not length limited.
func eachLine(r io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeIO, err, "failed to read lines")
		}
		if line != "" || err == nil {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if ferr := fn(n, line); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

type set map[string]struct{}

func (s set) add(v string) { s[v] = struct{}{} }

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
