package maven

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/ossinfo/pkg/buildinfo"
	"github.com/matzehuels/ossinfo/pkg/cache"
	errs "github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/integrations"
	"github.com/matzehuels/ossinfo/pkg/license"
)

// Well-known repository roots.
const (
	GoogleMavenURL  = "https://dl.google.com/android/maven2"
	MavenCentralURL = "https://repo1.maven.org/maven2"
)

// Artifact holds the metadata of the newest release of a Maven artifact.
//
// Licenses are SPDX identifiers where the POM license name is recognised
// and the verbatim POM name otherwise.
type Artifact struct {
	GroupID        string   `json:"group_id"`
	ArtifactID     string   `json:"artifact_id"`
	Version        string   `json:"version"` // version whose POM was read
	LatestVersion  string   `json:"latest_version,omitempty"`
	ReleaseVersion string   `json:"release_version,omitempty"`
	Packaging      string   `json:"packaging,omitempty"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	Licenses       []string `json:"licenses,omitempty"`
	URL            string   `json:"url"` // POM URL
}

// Coordinate returns "groupId:artifactId".
func (a *Artifact) Coordinate() string {
	return a.GroupID + ":" + a.ArtifactID
}

// Repository routes coordinates whose group starts with Prefix to the
// repository rooted at URL. An empty Prefix matches everything.
type Repository struct {
	Prefix string `toml:"prefix" json:"prefix"`
	URL    string `toml:"url" json:"url"`
}

// DefaultRepositories sends AndroidX and Google Android artifacts to Google
// Maven and everything else to Maven Central.
func DefaultRepositories() []Repository {
	return []Repository{
		{Prefix: "androidx", URL: GoogleMavenURL},
		{Prefix: "com.google.android", URL: GoogleMavenURL},
		{URL: MavenCentralURL},
	}
}

// Client looks up artifacts in Maven repositories. It is safe for
// concurrent use.
type Client struct {
	*integrations.Client
	repos []Repository
}

// NewClient creates a client that caches lookups in c for ttl. A nil or
// empty repos uses [DefaultRepositories].
func NewClient(c cache.Cache, ttl time.Duration, repos []Repository) *Client {
	if len(repos) == 0 {
		repos = DefaultRepositories()
	}
	return &Client{
		Client: integrations.NewClient(c, "maven:", ttl, map[string]string{"User-Agent": buildinfo.UserAgent()}),
		repos:  repos,
	}
}

// RepositoryFor returns the repository root serving group. The first
// matching rule wins; without a match Maven Central is used.
func (c *Client) RepositoryFor(group string) string {
	for _, r := range c.repos {
		if strings.HasPrefix(group, r.Prefix) {
			return strings.TrimRight(r.URL, "/")
		}
	}
	return MavenCentralURL
}

// Fetch resolves the newest version of coordinate ("group:artifact" or
// "group:artifact:version"; the version is ignored) and reads its POM.
//
// It reads maven-metadata.xml and picks the release version, falling back
// to latest and then to version. With refresh the cached result is ignored.
//
// Errors:
//   - INVALID_INPUT if group or artifact is missing or not a Maven identifier
//   - [integrations.ErrNotFound] if the repository doesn't know the artifact
//   - [integrations.ErrNetwork] for transport failures and 5xx responses
func (c *Client) Fetch(ctx context.Context, coordinate string, refresh bool) (*Artifact, error) {
	group, artifact, err := splitCoordinate(coordinate)
	if err != nil {
		return nil, err
	}

	repo := c.RepositoryFor(group)
	key := cache.Key("artifact", repo, group, artifact)

	var a Artifact
	err = c.Cached(ctx, key, refresh, &a, func() error {
		return c.fetch(ctx, repo, group, artifact, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) fetch(ctx context.Context, repo, group, artifact string, a *Artifact) error {
	root := fmt.Sprintf("%s/%s/%s", repo, strings.ReplaceAll(group, ".", "/"), artifact)

	var meta metadata
	if err := c.GetXML(ctx, root+"/maven-metadata.xml", &meta); err != nil {
		return lookupError(err, "maven-metadata.xml", group, artifact)
	}

	version := meta.pick()
	if version == "" {
		return errs.New(errs.ErrCodeNotFound, "missing release, latest and version: %s/maven-metadata.xml", root)
	}
	// metadata is authoritative for the artifact file name
	if id := strings.TrimSpace(meta.ArtifactID); id != "" {
		artifact = id
	}

	pomURL := fmt.Sprintf("%s/%s/%s-%s.pom", root, version, artifact, version)
	var p pom
	if err := c.GetXML(ctx, pomURL, &p); err != nil {
		return lookupError(err, "pom", group, artifact)
	}

	*a = Artifact{
		GroupID:        group,
		ArtifactID:     artifact,
		Version:        version,
		LatestVersion:  strings.TrimSpace(meta.Versioning.Latest),
		ReleaseVersion: strings.TrimSpace(meta.Versioning.Release),
		Packaging:      strings.TrimSpace(p.Packaging),
		Name:           strings.TrimSpace(p.Name),
		Description:    strings.Join(strings.Fields(p.Description), " "),
		Licenses:       p.licenses(),
		URL:            pomURL,
	}
	return nil
}

func lookupError(err error, doc, group, artifact string) error {
	switch {
	case errors.Is(err, integrations.ErrNotFound), errors.Is(err, integrations.ErrNetwork):
		return fmt.Errorf("%w: %s of %s:%s", err, doc, group, artifact)
	case cache.IsRetryable(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return errs.Wrap(errs.ErrCodeInvalidFormat, err, "failed to parse %s of %s:%s", doc, group, artifact)
}

// splitCoordinate returns the group and artifact of a coordinate.
func splitCoordinate(coordinate string) (group, artifact string, err error) {
	parts := strings.SplitN(coordinate, ":", 3)
	group = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		artifact = strings.TrimSpace(parts[1])
	}
	if group == "" {
		return "", "", errs.New(errs.ErrCodeInvalidInput, "missing group id: %q", coordinate)
	}
	if artifact == "" {
		return "", "", errs.New(errs.ErrCodeInvalidInput, "missing artifact id: %q", coordinate)
	}
	if err := errs.ValidateMavenID(group); err != nil {
		return "", "", err
	}
	if err := errs.ValidateMavenID(artifact); err != nil {
		return "", "", err
	}
	return group, artifact, nil
}

// metadata is maven-metadata.xml at the artifact level.
// See https://maven.apache.org/ref/3.9.4/maven-repository-metadata/
type metadata struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Versioning struct {
		Latest  string `xml:"latest"`
		Release string `xml:"release"`
	} `xml:"versioning"`
}

func (m *metadata) pick() string {
	for _, v := range []string{m.Versioning.Release, m.Versioning.Latest, m.Version} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// pom holds the subset of https://maven.apache.org/pom.html that is reported.
type pom struct {
	GroupID     string `xml:"groupId"`
	ArtifactID  string `xml:"artifactId"`
	Version     string `xml:"version"`
	Packaging   string `xml:"packaging"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Licenses    []struct {
		Name string `xml:"name"`
		URL  string `xml:"url"`
	} `xml:"licenses>license"`
}

func (p *pom) licenses() []string {
	var out []string
	for _, l := range p.Licenses {
		if id := license.Classify(l.Name); id != "" {
			out = append(out, id)
		}
	}
	return out
}
