package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/heft/pkg/walk"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, sampleReport(), true)
	out := buf.String()

	for _, want := range []string{
		"/proj/src/index.ts\n\nSource code:\n\nimport './b';\n",
		"Size:   10 bytes\nLength: 14\n",
		"Size:   30 bytes\nLength: 20\n",
		"Total size:   40 bytes\nTotal length: 34\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printReport() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bundled size") {
		t.Error("Bundled size should be omitted when unknown")
	}
}

func TestPrintReportWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, sampleReport(), false)
	if strings.Contains(buf.String(), "Source code:") {
		t.Errorf("printReport(showSource=false) printed sources:\n%s", buf.String())
	}
}

func TestPrintReportKeepsSourceWhitespace(t *testing.T) {
	src := "export function f() {\n\treturn 1;\n}\n\nconst longer_line_here = f();\n"
	r := &walk.Report{
		Root:  "/proj/a.ts",
		Files: []*walk.FileRecord{{Path: "/proj/a.ts", Source: src, Length: len(src)}},
	}
	var buf bytes.Buffer
	printReport(&buf, r, true)

	want := "Source code:\n\n" + strings.TrimRight(src, "\n") + "\n\nSize:"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("printReport() altered the source dump:\n%q", buf.String())
	}
}

func TestPrintTotalsExtras(t *testing.T) {
	r := &walk.Report{TotalSize: 5, TotalLength: 9, BundledSize: 4, Externals: []string{"lodash", "react"}}
	var buf bytes.Buffer
	printTotals(&buf, r)

	want := "Total size:   5 bytes\nTotal length: 9\nBundled size: 4 bytes\nExternal:     lodash, react\n"
	if buf.String() != want {
		t.Errorf("printTotals() = %q, want %q", buf.String(), want)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, sampleReport())
	out := buf.String()
	for _, want := range []string{"File", "Imports", "index.ts", "b.ts", "30"} {
		if !strings.Contains(out, want) {
			t.Errorf("printTable() missing %q:\n%s", want, out)
		}
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/proj/src", "/proj/src/a.ts", "a.ts"},
		{"/proj/src", "/proj/src/lib/b.ts", "lib/b.ts"},
		{"/proj/src", "/proj/other/c.ts", "/proj/other/c.ts"},
	}
	for _, tt := range tests {
		if got := relPath(tt.base, tt.path); got != tt.want {
			t.Errorf("relPath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
