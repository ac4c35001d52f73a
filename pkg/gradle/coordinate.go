package gradle

import (
	"strings"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

// Coordinate is a canonical group:artifact:version triple.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string

	// Requested is the declared version when conflict resolution
	// replaced it, empty otherwise. It is not part of String.
	Requested string
}

// String joins the coordinate with colons.
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// Markers Gradle appends after a version.
const (
	markerOmitted     = "(*)"    // subtree already printed elsewhere
	markerConstraint  = "(c)"    // dependency constraint
	markerNotResolved = "(n)"    // declared but not resolved
	markerFailed      = "FAILED" // resolution failed
)

const arrow = "->"

func isMarker(s string) bool {
	switch s {
	case markerOmitted, markerConstraint, markerNotResolved, markerFailed:
		return true
	}
	return false
}

// versionExpr is the version part of a dependency token. Trailing markers
// are validated while parsing and then dropped.
type versionExpr interface {
	resolved() string
	requested() string
}

// plainVersion is "1.0" or "1.0 (*)".
type plainVersion struct {
	version string
}

// overriddenVersion is "1.0 -> 2.0" or "1.0 -> 2.0 (*)", where conflict
// resolution replaced the declared version.
type overriddenVersion struct {
	declared string
	version  string
}

// managedVersion is "-> 2.0" after an artifact name that carries no
// version of its own (platform, BOM or version catalog).
type managedVersion struct {
	version string
}

func (v plainVersion) resolved() string       { return v.version }
func (v plainVersion) requested() string      { return "" }
func (v overriddenVersion) resolved() string  { return v.version }
func (v overriddenVersion) requested() string { return v.declared }
func (v managedVersion) resolved() string     { return v.version }
func (v managedVersion) requested() string    { return "" }

// Normalize reduces a raw dependency token to group:artifact:version.
//
// The token must not include tree art. Canonical input is returned
// unchanged. Unrecognized shapes fail with MALFORMED_COORDINATE.
func Normalize(token string) (string, error) {
	c, err := ParseCoordinate(token)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// ParseCoordinate is like [Normalize] but returns the structured form.
func ParseCoordinate(token string) (Coordinate, error) {
	c, err := parseToken(token)
	if err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func parseToken(token string) (Coordinate, *errors.Error) {
	segments := strings.Split(token, ":")

	var (
		group, artifact string
		expr            versionExpr
		ok              bool
	)
	switch len(segments) {
	case 3:
		group, artifact = segments[0], segments[1]
		expr, ok = parseVersionExpr(fields(segments[2]))
	case 2:
		group = segments[0]
		artifact, expr, ok = parseManaged(fields(segments[1]))
	}
	if !ok || group == "" || artifact == "" || expr.resolved() == "" {
		return Coordinate{}, malformed(token)
	}

	return Coordinate{
		Group:     group,
		Artifact:  artifact,
		Version:   expr.resolved(),
		Requested: expr.requested(),
	}, nil
}

func parseVersionExpr(tokens []string) (versionExpr, bool) {
	switch len(tokens) {
	case 1:
		return plainVersion{version: tokens[0]}, true
	case 2:
		if isMarker(tokens[1]) {
			return plainVersion{version: tokens[0]}, true
		}
	case 3:
		if tokens[1] == arrow {
			return overriddenVersion{declared: tokens[0], version: tokens[2]}, true
		}
	case 4:
		if tokens[1] == arrow && isMarker(tokens[3]) {
			return overriddenVersion{declared: tokens[0], version: tokens[2]}, true
		}
	}
	return nil, false
}

// parseManaged handles "artifact -> version[ marker]".
func parseManaged(tokens []string) (string, versionExpr, bool) {
	if len(tokens) < 3 || tokens[1] != arrow {
		return "", nil, false
	}
	return tokens[0], managedVersion{version: tokens[2]}, true
}

// fields splits on single spaces, keeping Gradle rich version blocks such
// as "{strictly 1.0}" in one piece.
func fields(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ' ':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func malformed(token string) *errors.Error {
	return errors.New(errors.ErrCodeMalformedCoordinate, "unrecognized dependency %q", token)
}
