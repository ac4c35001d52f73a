package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Key joins a namespace and key parts with ":". Each part is
// query-escaped, so a part containing ":" or "/" (a repository URL) cannot
// collide with a different split of the same text:
//
//	Key("artifact", "https://repo1.maven.org/maven2", "g", "a")
//	// artifact:https%3A%2F%2Frepo1.maven.org%2Fmaven2:g:a
//
// Keys stay readable in Redis; [FileCache] hashes them into file names.
func Key(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
