package gradle

import (
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

func TestParseFlatWithoutVersion(t *testing.T) {
	input := `
androidx.activity:activity
androidx.activity:activity-compose
androidx.activity:activity-ktx
androidx.annotation:annotation
androidx.annotation:annotation-experimental
androidx.appcompat:appcompat
androidx.appcompat:appcompat-resources
`
	want := []string{
		"androidx.activity:activity",
		"androidx.activity:activity-compose",
		"androidx.activity:activity-ktx",
		"androidx.annotation:annotation",
		"androidx.annotation:annotation-experimental",
		"androidx.appcompat:appcompat",
		"androidx.appcompat:appcompat-resources",
	}

	got, err := ParseFlat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseFlat() error: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseFlat() = %q, want %q", got, want)
	}
}

func TestParseFlatWithVersion(t *testing.T) {
	input := `
androidx.activity:activity-compose:1.3.0 -> 1.4.0 (*)
androidx.activity:activity-compose:1.3.1 -> 1.4.0 (*)
androidx.activity:activity-compose:1.4.0
androidx.activity:activity-ktx:1.2.3 -> 1.4.0 (*)
androidx.activity:activity-ktx:1.4.0
androidx.activity:activity:1.2.4 -> 1.4.0 (*)
androidx.activity:activity:1.3.1 -> 1.4.0
androidx.activity:activity:1.4.0 (*)
androidx.annotation:annotation-experimental:1.0.0 -> 1.1.0
androidx.annotation:annotation-experimental:1.1.0
androidx.annotation:annotation-experimental:1.1.0-rc01 -> 1.1.0
androidx.annotation:annotation:1.0.0 -> 1.3.0
androidx.annotation:annotation:1.0.1 -> 1.3.0
androidx.annotation:annotation:1.1.0 -> 1.3.0
androidx.annotation:annotation:1.2.0 -> 1.3.0
androidx.annotation:annotation:1.3.0
androidx.appcompat:appcompat-resources:1.2.0
androidx.appcompat:appcompat:1.1.0 -> 1.2.0 (*)
androidx.appcompat:appcompat:1.2.0
`
	want := []string{
		"androidx.activity:activity-compose:1.4.0",
		"androidx.activity:activity-ktx:1.4.0",
		"androidx.activity:activity:1.4.0",
		"androidx.annotation:annotation-experimental:1.1.0",
		"androidx.annotation:annotation:1.3.0",
		"androidx.appcompat:appcompat-resources:1.2.0",
		"androidx.appcompat:appcompat:1.2.0",
	}

	got, err := ParseFlat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseFlat() error: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseFlat() = %q, want %q", got, want)
	}
}

func TestParseFlat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"blank lines", "\n  \n\t\n", []string{}},
		{"surrounding whitespace", "  g:a:1.0  \r\n", []string{"g:a:1.0"}},
		{"bom shape passes through", "g:a -> 2.0\n", []string{"g:a -> 2.0"}},
		{"single segment passes through", "foo\n", []string{"foo"}},
		{"four segments pass through", "g:a:jar:1.0\n", []string{"g:a:jar:1.0"}},
		{"mixed", "g:b\ng:a:1.0 -> 1.1\ng:b\n", []string{"g:a:1.1", "g:b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlat(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseFlat() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseFlat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFlatMalformed(t *testing.T) {
	_, err := ParseFlat(strings.NewReader("g:a:1.0\ng:b:1.0 2.0 3.0 4.0 5.0\n"))
	if !errors.Is(err, errors.ErrCodeMalformedCoordinate) {
		t.Fatalf("ParseFlat() error = %v, want %v", err, errors.ErrCodeMalformedCoordinate)
	}
	if l := errors.LineOf(err); l != 2 {
		t.Errorf("line = %d, want 2", l)
	}
}

func TestParseFlatEmptyVersion(t *testing.T) {
	_, err := ParseFlat(strings.NewReader("g:a:\n"))
	if !errors.Is(err, errors.ErrCodeMalformedCoordinate) {
		t.Fatalf("ParseFlat() error = %v, want %v", err, errors.ErrCodeMalformedCoordinate)
	}
}

func TestParseFlatReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("g:a:1.0\n"), iotest.ErrReader(io.ErrUnexpectedEOF))
	got, err := ParseFlat(r)
	if got != nil {
		t.Errorf("ParseFlat() returned partial result %q", got)
	}
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("ParseFlat() error = %v, want %v", err, errors.ErrCodeIO)
	}
	if !strings.Contains(err.Error(), "failed to read lines") {
		t.Errorf("error = %q, want read context", err)
	}
}
