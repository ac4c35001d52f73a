// Package gradle extracts Maven coordinates from Gradle dependency reports.
//
// # Overview
//
// Gradle's `dependencies` task prints one ASCII tree per configuration:
//
//	releaseRuntimeClasspath - Runtime classpath of compilation 'release'.
//	+--- org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.6.21
//	|    \--- org.jetbrains.kotlin:kotlin-stdlib:1.6.21 -> 1.7.10
//	+--- project :lib
//	|    \--- com.squareup.okhttp3:okhttp:4.9.3
//	\--- androidx.compose.ui:ui-tooling -> 1.3.3
//
// [ParseTree] reduces such a report to the sorted, deduplicated list of
// direct dependencies. Children of `project :name` nodes are treated as
// direct dependencies of the importing configuration; every other nested
// line is a transitive dependency and is skipped. For the report above the
// result is:
//
//	androidx.compose.ui:ui-tooling:1.3.3
//	com.squareup.okhttp3:okhttp:4.9.3
//	org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.6.21
//
// [ParseFlat] handles the already flattened form (one coordinate per line,
// no tree art) and only normalizes versions.
//
// # Coordinates
//
// [Normalize] reduces every version syntax Gradle prints to the resolved
// version:
//
//	g:a:1.0              -> g:a:1.0
//	g:a:1.0 (*)          -> g:a:1.0
//	g:a:1.0 -> 2.0       -> g:a:2.0
//	g:a:1.0 -> 2.0 (*)   -> g:a:2.0
//	g:a -> 2.0 (*)       -> g:a:2.0   (version from a BOM or catalog)
//
// # Errors
//
// All failures are *errors.Error values from pkg/errors with one of the
// codes INVALID_INDENT, MISSING_CONFIGURATION, MALFORMED_COORDINATE or
// IO_ERROR. Line-level failures carry the 1-based line number. Parsing
// never recovers: an error means no coordinates were produced.
//
// Both parsers keep their state per call and are safe for concurrent use.
package gradle
