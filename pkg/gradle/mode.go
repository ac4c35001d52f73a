package gradle

import (
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

// Mode selects the input format of a dependency report.
type Mode string

const (
	// ModeTree is the indented output of `gradle dependencies`.
	ModeTree Mode = "tree"
	// ModeFlat is one coordinate per line without tree art.
	ModeFlat Mode = "flat"
)

// Modes lists the supported modes.
var Modes = []Mode{ModeTree, ModeFlat}

// ParseMode validates a user supplied mode name. The empty string selects
// [ModeTree].
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeTree, nil
	}
	if slices.Contains(Modes, m) {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (want one of %s)", s, ModeNames())
}

// ModeNames returns the names of [Modes], for flag help and completion.
func ModeNames() []string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return names
}

// Parse dispatches to [ParseTree] or [ParseFlat].
func Parse(r io.Reader, mode Mode) ([]string, error) {
	switch mode {
	case ModeTree, "":
		return ParseTree(r)
	case ModeFlat:
		return ParseFlat(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", mode)
}
