package gradle

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/matzehuels/ossinfo/pkg/errors"
)

func TestParseTreeFixtures(t *testing.T) {
	tests := []struct {
		file string
		want []string
	}{
		{
			file: "app_release_runtime_classpath.txt",
			want: []string{
				"androidx.activity:activity-compose:1.6.1",
				"androidx.compose.material:material:1.3.1",
				"androidx.compose.ui:ui-tooling:1.3.3",
				"androidx.compose:compose-bom:2023.01.00",
				"androidx.core:core-ktx:1.9.0",
				"androidx.profileinstaller:profileinstaller:1.3.0",
				"com.github.bumptech.glide:glide:4.15.1",
				"com.squareup.okhttp3:okhttp:4.9.3",
				"org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.6.21",
			},
		},
		{
			file: "app2_release_runtime_classpath.txt",
			want: []string{
				"androidx.core:core-ktx:1.9.0",
				"com.github.bumptech.glide:glide:4.15.1",
				"com.squareup.okhttp3:okhttp:4.9.3",
				"org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.6.21",
			},
		},
		{
			file: "release_runtime_classpath.txt",
			want: []string{
				"androidx.activity:activity-compose:1.6.1",
				"androidx.compose.material:material:1.3.1",
				"androidx.compose.ui:ui-tooling:1.3.3",
				"androidx.compose:compose-bom:2023.01.00",
				"androidx.profileinstaller:profileinstaller:1.3.0",
				"org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.6.21",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f, err := os.Open(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			got, err := ParseTree(f)
			if err != nil {
				t.Fatalf("ParseTree() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseTree() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "transitive children skipped",
			input: "runtimeClasspath\n" +
				"+--- g:a:1.0\n" +
				"|    \\--- g2:b:2.0\n" +
				"\\--- project :lib\n" +
				"     \\--- g3:c:3.0\n",
			want: []string{"g3:c:3.0", "g:a:1.0"}, // byte order: '3' < ':'
		},
		{
			name: "project children inlined",
			input: "\\--- project :lib\n" +
				"     +--- g:a:1.0\n" +
				"     \\--- g:b:2.0\n",
			want: []string{"g:a:1.0", "g:b:2.0"},
		},
		{
			name: "grandchildren of project skipped",
			input: "\\--- project :lib\n" +
				"     \\--- g:a:1.0\n" +
				"          \\--- g:deep:1.0\n",
			want: []string{"g:a:1.0"},
		},
		{
			name: "nested projects",
			input: "+--- project :lib\n" +
				"|    \\--- project :core\n" +
				"|         \\--- g:core-dep:1.0\n" +
				"\\--- g:top:1.0\n",
			want: []string{"g:core-dep:1.0", "g:top:1.0"},
		},
		{
			name: "return to shallower sibling",
			input: "+--- project :lib\n" +
				"|    \\--- g:a:1.0\n" +
				"\\--- g:b:1.0\n" +
				"     \\--- g:c:1.0\n",
			want: []string{"g:a:1.0", "g:b:1.0"},
		},
		{
			name: "duplicates and versions",
			input: "+--- g:a:1.0 -> 2.0\n" +
				"+--- g:a:2.0 (*)\n" +
				"+--- g:bom-managed -> 3.0 (*)\n" +
				"\\--- g:constraint:1.0 (c)\n",
			want: []string{"g:a:2.0", "g:bom-managed:3.0", "g:constraint:1.0"},
		},
		{
			name: "banner and trailer ignored",
			input: "> Task :app:dependencies\n" +
				"------------------------------------------------------------\n" +
				"Project ':app'\n" +
				"------------------------------------------------------------\n" +
				"\n" +
				"releaseRuntimeClasspath - Runtime classpath.\n" +
				"\\--- g:a:1.0\n" +
				"\n" +
				"(*) - dependencies omitted (listed previously)\n" +
				"BUILD SUCCESSFUL in 1s\n",
			want: []string{"g:a:1.0"},
		},
		{
			name:  "crlf line endings",
			input: "+--- g:a:1.0\r\n\\--- g:b:1.0 (*)\r\n",
			want:  []string{"g:a:1.0", "g:b:1.0"},
		},
		{
			name:  "no tree",
			input: "No dependencies\n",
			want:  []string{},
		},
		{
			name:  "no trailing newline",
			input: "\\--- g:a:1.0",
			want:  []string{"g:a:1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !sort.StringsAreSorted(tt.want) {
				t.Fatalf("want %q is not in byte order", tt.want)
			}
			got, err := ParseTreeString(tt.input)
			if err != nil {
				t.Fatalf("ParseTreeString() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseTreeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
		line  int
	}{
		{
			name: "second configuration",
			input: "compileClasspath\n" +
				"\\--- g:a:1.0\n" +
				"\n" +
				"runtimeClasspath\n" +
				"\\--- g:b:1.0\n",
			code: errors.ErrCodeMissingConfiguration,
			line: 5,
		},
		{
			name:  "indent before root",
			input: "header\n|    \\--- g:a:1.0\n",
			code:  errors.ErrCodeInvalidIndent,
			line:  2,
		},
		{
			name:  "indent after end",
			input: "\\--- g:a:1.0\n\n     \\--- g:b:1.0\n",
			code:  errors.ErrCodeInvalidIndent,
			line:  3,
		},
		{
			name:  "indent not a multiple of five",
			input: "+--- g:a:1.0\n|   \\--- g:b:1.0\n",
			code:  errors.ErrCodeInvalidIndent,
			line:  2,
		},
		{
			name:  "too many segments",
			input: "+--- g:a:b:1.0\n",
			code:  errors.ErrCodeMalformedCoordinate,
			line:  1,
		},
		{
			name:  "bad version expression",
			input: "+--- g:a:1.0\n\\--- g:b:1.0 => 2.0\n",
			code:  errors.ErrCodeMalformedCoordinate,
			line:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTreeString(tt.input)
			if err == nil {
				t.Fatalf("ParseTreeString() = %q, want error", got)
			}
			if got != nil {
				t.Errorf("ParseTreeString() returned partial result %q", got)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
			if l := errors.LineOf(err); l != tt.line {
				t.Errorf("line = %d, want %d", l, tt.line)
			}
		})
	}
}

func TestParseTreeMissingConfigurationMessage(t *testing.T) {
	_, err := ParseTreeString("\\--- g:a:1.0\nother\n\\--- g:b:1.0\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "--configuration") {
		t.Errorf("UserMessage() = %q, want hint about --configuration", msg)
	}
}

func TestParseTreeReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("+--- g:a:1.0\n"), iotest.ErrReader(io.ErrClosedPipe))
	got, err := ParseTree(r)
	if got != nil {
		t.Errorf("ParseTree() returned partial result %q", got)
	}
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("ParseTree() error = %v, want %v", err, errors.ErrCodeIO)
	}
}

func TestParseTreeSortedUnique(t *testing.T) {
	var b strings.Builder
	for _, name := range []string{"z", "a", "m", "a", "z", "b"} {
		b.WriteString("+--- g:" + name + ":1.0\n")
	}
	got, err := ParseTreeString(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("result not sorted: %q", got)
	}
	if len(got) != 4 {
		t.Errorf("len = %d, want 4 (%q)", len(got), got)
	}
}

func TestSplitTreeLine(t *testing.T) {
	tests := []struct {
		line  string
		ok    bool
		depth int
		token string
	}{
		{"+--- g:a:1.0", true, 0, "g:a:1.0"},
		{"\\--- g:a:1.0 (*)", true, 0, "g:a:1.0 (*)"},
		{"|    +--- g:a:1.0", true, 1, "g:a:1.0"},
		{"|    |    |    +--- g:a:1.2.0 -> 1.5.0 (*)", true, 3, "g:a:1.2.0 -> 1.5.0 (*)"},
		{"     \\--- project :lib", true, 1, "project :lib"},
		{"------------------------------------------------------------", false, 0, ""},
		{"--- not tree art", false, 0, ""},
		{"a --- b", false, 0, ""},
		{"", false, 0, ""},
	}

	for _, tt := range tests {
		got, err := splitTreeLine(tt.line)
		if err != nil {
			t.Errorf("splitTreeLine(%q) error: %v", tt.line, err)
			continue
		}
		if got.ok != tt.ok || got.depth != tt.depth || got.token != tt.token {
			t.Errorf("splitTreeLine(%q) = %+v, want {ok:%v depth:%d token:%q}", tt.line, got, tt.ok, tt.depth, tt.token)
		}
	}
}
