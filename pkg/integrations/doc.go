// Package integrations provides HTTP clients for artifact repositories.
//
// # Overview
//
// The [Client] type holds the behaviour shared by repository clients:
// response caching through [cache.Cache], retries with exponential backoff
// for network failures and 5xx responses, default request headers, and
// observability hooks around every request.
//
// Repository-specific clients live in subpackages:
//
//   - [maven]: Maven repositories (Maven Central, Google Maven, mirrors)
//
// # Client Pattern
//
//	c, _ := cache.NewFileCache(dir)
//	client := maven.NewClient(c, 24*time.Hour, nil)
//	artifact, err := client.Fetch(ctx, "com.squareup.okhttp3:okhttp:4.9.3", false)
//
// # Errors
//
// A missing document is reported as [ErrNotFound]; transport failures and
// 5xx responses as [ErrNetwork]. Rate limiting (HTTP 429) surfaces as an
// *errors.RateLimitedError from pkg/errors.
//
// [maven]: github.com/matzehuels/ossinfo/pkg/integrations/maven
// [cache.Cache]: github.com/matzehuels/ossinfo/pkg/cache.Cache
package integrations
