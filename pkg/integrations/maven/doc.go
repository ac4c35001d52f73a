// Package maven looks up artifact metadata in Maven repositories.
//
// # Overview
//
// For every "group:artifact" coordinate the client reads the artifact's
// maven-metadata.xml, picks the newest release and then reads that
// release's POM for its name, description, packaging and licenses.
//
// # Repositories
//
// Coordinates are routed to a repository by group prefix. The defaults
// send androidx.* and com.google.android.* to Google Maven
// (https://dl.google.com/android/maven2) and everything else to Maven
// Central (https://repo1.maven.org/maven2):
//
//	client := maven.NewClient(c, 24*time.Hour, nil)
//	client.RepositoryFor("androidx.core")     // Google Maven
//	client.RepositoryFor("com.squareup.okio") // Maven Central
//
// Custom rules are evaluated in order and the first matching prefix wins:
//
//	client := maven.NewClient(c, ttl, []maven.Repository{
//	    {Prefix: "com.example", URL: "https://maven.example.com/releases"},
//	    {URL: maven.MavenCentralURL},
//	})
//
// # Versions
//
// The version in the input coordinate is ignored. The metadata's release
// version is preferred, then latest, then the top-level version element:
//
//	a, err := client.Fetch(ctx, "com.squareup.okhttp3:okhttp:4.9.3", false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(a.Coordinate(), a.Version, strings.Join(a.Licenses, "/"))
//
// # Caching
//
// Results are cached per repository and coordinate for the configured TTL.
// Pass refresh=true to bypass the cached value; the fresh result is still
// stored.
package maven
