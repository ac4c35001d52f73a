package integrations

import (
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/matzehuels/ossinfo/pkg/cache"
)

// DefaultTimeout bounds a single repository request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when an artifact or document doesn't exist in the repository.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with a standard timeout for repository requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// DecodeXML decodes one XML document from r into v. Non UTF-8 documents
// (ISO-8859-1 POMs are common on Maven Central) are transcoded according
// to their XML declaration.
func DecodeXML(r io.Reader, v any) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	return dec.Decode(v)
}
