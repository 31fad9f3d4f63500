package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
)

const compatDocument = `## django CMS
### django CMS 4.1
* python: 3.10, 3.11
* django: 4.2, 5.0
* LTS: 4.2
### django CMS 3.11
* python: 3.10
* django: 4.2
### django CMS 3.0
No support declared.
`

func TestWriteCompatibility(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompatibility(&buf, ecosystem.ParseString(compatDocument)); err != nil {
		t.Fatalf("WriteCompatibility: %v", err)
	}

	want := strings.Join([]string{
		"========== ==== ==== ==== ====",
		"Django CMS Python    Django",
		"---------- --------- ---------",
		`\          3.11 3.10 5.0  4.2`,
		"========== ==== ==== ==== ====",
		"4.1.x      ✓    ✓    ✓    LTS",
		"3.11.x     ×    ✓    ×    ✓  ",
		"========== ==== ==== ==== ====",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("table mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCompatibility_ScalarSupport(t *testing.T) {
	doc := ecosystem.ParseString("## django CMS\n### django CMS 4.1\n* python: 3.10\n* django: 5.0\n### django CMS 4.0\n* python: 3.1\n")

	var buf bytes.Buffer
	if err := WriteCompatibility(&buf, doc); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	// Python columns: 3.10 3.1; the 4.0 row must not match 3.10.
	if got, want := lines[6], "4.0.x      ×    ✓    ×  "; got != want {
		t.Errorf("row = %q, want %q", got, want)
	}
}

func TestWriteCompatibility_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompatibility(&buf, ecosystem.ParseString("")); err != nil {
		t.Fatal(err)
	}
	want := "========== ==== ====\n" +
		"Django CMS PythonDjango\n" +
		"---------- ---- ----\n" +
		`\           ` + "\n" +
		"========== ==== ====\n" +
		"========== ==== ====\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriters_ReturnWriteError(t *testing.T) {
	boom := errors.New("disk full")
	doc := ecosystem.ParseString(compatDocument + "## CMS packages\n### p\n")

	if err := WriteCompatibility(failingWriter{boom}, doc); !errors.Is(err, boom) {
		t.Errorf("WriteCompatibility error = %v", err)
	}
	if err := WriteLTS(failingWriter{boom}, doc, true, ltsNow); !errors.Is(err, boom) {
		t.Errorf("WriteLTS error = %v", err)
	}
	if err := WritePlugins(failingWriter{boom}, doc, "", false); !errors.Is(err, boom) {
		t.Errorf("WritePlugins error = %v", err)
	}
}
