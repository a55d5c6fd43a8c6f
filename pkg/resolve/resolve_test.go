package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	herrors "github.com/matzehuels/heft/pkg/errors"
)

// writeTree creates files (relative path -> contents) under a fresh temp dir
// and returns its canonical path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	canonical, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	return canonical
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestResolve(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts":            "",
		"src/b.ts":            "",
		"src/b.tsx":           "",
		"src/c.tsx":           "",
		"src/d.mts":           "",
		"src/plain.js":        "",
		"src/widget/index.ts": "",
		"src/util/index.tsx":  "",
		"src/both.ts":         "",
		"src/both/index.ts":   "",
		"shared/x.ts":         "",
	})
	from := filepath.Join(root, "src", "a.ts")

	tests := []struct {
		name      string
		specifier string
		want      string
	}{
		{"explicit extension", "./b.ts", "src/b.ts"},
		{"extensionless prefers .ts", "./b", "src/b.ts"},
		{"extensionless .tsx", "./c", "src/c.tsx"},
		{"js specifier maps to ts source", "./b.js", "src/b.ts"},
		{"jsx specifier maps to tsx source", "./c.jsx", "src/c.tsx"},
		{"mjs specifier maps to mts source", "./d.mjs", "src/d.mts"},
		{"real js file", "./plain.js", "src/plain.js"},
		{"directory index", "./widget", "src/widget/index.ts"},
		{"directory index tsx", "./util", "src/util/index.tsx"},
		{"file beats directory", "./both", "src/both.ts"},
		{"parent directory", "../shared/x", "shared/x.ts"},
		{"redundant segments", "./widget/../b", "src/b.ts"},
		{"absolute", filepath.Join(root, "shared", "x.ts"), "shared/x.ts"},
	}

	r := newResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(from, tt.specifier)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.specifier, err)
			}
			want := filepath.Join(root, filepath.FromSlash(tt.want))
			if got != want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.specifier, got, want)
			}
		})
	}
}

func TestResolveSameFileSameIdentity(t *testing.T) {
	root := writeTree(t, map[string]string{
		"proj/src/a.ts":     "",
		"proj/src/b.ts":     "",
		"proj/src/lib/c.ts": "",
	})
	r := newResolver(t)

	fromA := filepath.Join(root, "proj", "src", "a.ts")
	fromC := filepath.Join(root, "proj", "src", "lib", "c.ts")

	id1, err := r.Resolve(fromA, "./b")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := r.Resolve(fromC, "../b.ts")
	if err != nil {
		t.Fatal(err)
	}
	id3, err := r.Resolve(fromC, "../../src/b")
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(root, "proj", "src", "b.ts")
	for i, id := range []string{id1, id2, id3} {
		if id != want {
			t.Errorf("identity %d = %q, want %q", i, id, want)
		}
	}
}

func TestResolveSymlink(t *testing.T) {
	root := writeTree(t, map[string]string{"real/b.ts": ""})
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "src", "b.ts")
	if err := os.Symlink(filepath.Join(root, "real", "b.ts"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	r := newResolver(t)
	got, err := r.Resolve(filepath.Join(root, "src", "a.ts"), "./b")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := filepath.Join(root, "real", "b.ts"); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveErrors(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts":        "",
		"src/empty/.keep": "",
	})
	from := filepath.Join(root, "src", "a.ts")
	r := newResolver(t)

	tests := []struct {
		name      string
		specifier string
		bare      bool
	}{
		{"missing file", "./missing", false},
		{"missing directory", "../nowhere/x", false},
		{"directory without index", "./empty", false},
		{"bare package", "react", true},
		{"scoped package", "@scope/pkg", true},
		{"node builtin", "node:fs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(from, tt.specifier)
			if err == nil {
				t.Fatalf("Resolve(%q) expected error", tt.specifier)
			}
			if !herrors.Is(err, herrors.ErrCodeResolution) {
				t.Errorf("code = %v, want %v", herrors.GetCode(err), herrors.ErrCodeResolution)
			}
			if got := errors.Is(err, ErrBareSpecifier); got != tt.bare {
				t.Errorf("errors.Is(err, ErrBareSpecifier) = %v, want %v", got, tt.bare)
			}
			if herrors.GetPath(err) != from {
				t.Errorf("error path = %q, want %q", herrors.GetPath(err), from)
			}
		})
	}
}

func TestResolveCustomExtensions(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts": "",
		"src/b.js": "",
		"src/b.ts": "",
	})
	r, err := New(Options{Extensions: []string{".js", ".ts"}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve(filepath.Join(root, "src", "a.ts"), "./b")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "src", "b.js"); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestNewInvalidExtension(t *testing.T) {
	if _, err := New(Options{Extensions: []string{"ts"}}); err == nil {
		t.Error("New() with extension missing a dot should fail")
	}
}

func TestResolveDoesNotCacheFailures(t *testing.T) {
	root := writeTree(t, map[string]string{"src/a.ts": "", "src/b.ts": ""})
	from := filepath.Join(root, "src", "a.ts")
	r := newResolver(t)

	if _, err := r.Resolve(from, "./missing"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := os.WriteFile(filepath.Join(root, "src", "missing.ts"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(from, "./missing"); err != nil {
		t.Errorf("failed lookups must not be cached: %v", err)
	}
}

func TestResolveSeesDeletion(t *testing.T) {
	root := writeTree(t, map[string]string{"src/a.ts": "", "src/b.ts": ""})
	from := filepath.Join(root, "src", "a.ts")
	r := newResolver(t)

	if _, err := r.Resolve(from, "./b"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "src", "b.ts")); err != nil {
		t.Fatal(err)
	}
	_, err := r.Resolve(from, "./b")
	if !herrors.Is(err, herrors.ErrCodeResolution) {
		t.Errorf("Resolve() after delete error = %v, want %s", err, herrors.ErrCodeResolution)
	}
}

func TestResolveSeesEarlierCandidate(t *testing.T) {
	root := writeTree(t, map[string]string{"src/a.ts": "", "src/b.js": ""})
	from := filepath.Join(root, "src", "a.ts")
	r := newResolver(t)

	got, err := r.Resolve(from, "./b")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "src", "b.js"); got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}

	if err := os.WriteFile(filepath.Join(root, "src", "b.ts"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = r.Resolve(from, "./b")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "src", "b.ts"); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestCanonical(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ts": ""})

	got, err := Canonical(filepath.Join(root, "a.ts"))
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}
	if want := filepath.Join(root, "a.ts"); got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}

	if _, err := Canonical(root); err == nil {
		t.Error("Canonical() of a directory should fail")
	}
	if _, err := Canonical(filepath.Join(root, "nope.ts")); err == nil {
		t.Error("Canonical() of a missing file should fail")
	}
}

func TestSpecifierKinds(t *testing.T) {
	tests := []struct {
		spec     string
		relative bool
		bare     bool
	}{
		{"./a", true, false},
		{"../a", true, false},
		{".", true, false},
		{"..", true, false},
		{"/abs/a", false, false},
		{"a", false, true},
		{".hidden", false, true},
		{"@scope/pkg", false, true},
		{"node:fs", false, true},
	}
	for _, tt := range tests {
		if got := IsRelative(tt.spec); got != tt.relative {
			t.Errorf("IsRelative(%q) = %v, want %v", tt.spec, got, tt.relative)
		}
		if got := IsBare(tt.spec); got != tt.bare {
			t.Errorf("IsBare(%q) = %v, want %v", tt.spec, got, tt.bare)
		}
	}
}
