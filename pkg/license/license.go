// Package license maps the free-form license names found in Maven POM files
// to SPDX identifiers (https://spdx.org/licenses/).
package license

import "strings"

// SPDX identifiers produced by [Classify].
const (
	Apache20 = "Apache-2.0"
	BSD2     = "BSD-2-Clause"
	BSD3     = "BSD-3-Clause"
	ISC      = "ISC"
	MIT      = "MIT"
	EPL10    = "EPL-1.0"
	EPL20    = "EPL-2.0"
	LGPL21   = "LGPL-2.1-only"
)

// known is keyed by the lowercased license name.
var known = map[string]string{
	"the apache software license, version 2.0":       Apache20,
	"the apache license, version 2.0":                Apache20,
	"apache 2.0":                                     Apache20,
	"apache license, version 2.0":                    Apache20,
	"apache-2.0":                                     Apache20,
	"simplified bsd license":                         BSD2,
	"bsd-2-clause":                                   BSD2,
	"new bsd license":                                BSD3,
	"bsd-3-clause":                                   BSD3,
	"isc license":                                    ISC,
	"isc":                                            ISC,
	"mit license":                                    MIT,
	"the mit license":                                MIT,
	"mit":                                            MIT,
	"eclipse public license 1.0":                     EPL10,
	"eclipse public license - v 1.0":                 EPL10,
	"eclipse public license - v 2.0":                 EPL20,
	"eclipse public license v2.0":                    EPL20,
	"gnu lesser general public license, version 2.1": LGPL21,
}

// Classify returns the SPDX identifier for a POM license name. Names that are
// not recognised are returned trimmed but otherwise unchanged.
func Classify(name string) string {
	name = strings.TrimSpace(name)
	if id, ok := known[strings.ToLower(name)]; ok {
		return id
	}
	return name
}
