package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osyris-lang/osyris/internal/object"
	"github.com/osyris-lang/osyris/internal/runtime"
)

func newCtx(t *testing.T, cwd string) *Ctx {
	t.Helper()
	return &Ctx{Importer: NewDefaultImporter(), Cwd: cwd, RootScope: runtime.New(cwd, runtime.Streams{})}
}

func TestImportBuiltinModuleBypassesFilesystem(t *testing.T) {
	imp := NewDefaultImporter()
	imp.AddBuiltin("math", object.Number(42))
	ctx := &Ctx{Importer: imp, Cwd: "/nonexistent", RootScope: runtime.New("/nonexistent", runtime.Streams{})}

	v, err := Import(ctx, "math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != object.Number(42) {
		t.Errorf("expected the builtin module's value, got %v", v)
	}
}

func TestImportResolvesCwdRelativeFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mod.osy"), []byte(`(+ 1 2)`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, dir)
	v, err := Import(ctx, "mod.osy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Inspect() != "3" {
		t.Errorf("expected the module's last expression value 3, got %s", v.Inspect())
	}
}

func TestImportResolvesAbsoluteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.osy")
	if err := os.WriteFile(path, []byte(`"hi"`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, dir)
	v, err := Import(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Inspect() != `"hi"` {
		t.Errorf("got %s", v.Inspect())
	}
}

func TestImportCachesByAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.osy")
	if err := os.WriteFile(path, []byte(`(def 'calls 0)`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, dir)
	v1, err := Import(ctx, "mod.osy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Remove the file; a cache hit shouldn't need to read it again.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	v2, err := Import(ctx, "mod.osy")
	if err != nil {
		t.Fatalf("expected the cached result, got error: %v", err)
	}
	if !object.Equal(v1, v2) {
		t.Errorf("expected the cached value to be returned unchanged")
	}
}

func TestImportMissingFileErrors(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	if _, err := Import(ctx, "does-not-exist.osy"); err == nil {
		t.Errorf("expected an error importing a nonexistent file")
	}
}

func TestImportEmptyFileYieldsNone(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.osy"), []byte(``), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, dir)
	v, err := Import(ctx, "empty.osy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != object.KindNone {
		t.Errorf("expected None for an empty module, got %v", v.Kind())
	}
}

func TestImportPropagatesEvalError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.osy"), []byte(`undefined-name`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, dir)
	if _, err := Import(ctx, "bad.osy"); err == nil {
		t.Errorf("expected the undefined lookup to propagate as an error")
	}
}

func TestTransitiveImportResolvesRelativeToItsOwnDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "leaf.osy"), []byte(`42`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "main.osy"), []byte(`(import "sub/leaf.osy")`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ctx := newCtx(t, root)
	v, err := Import(ctx, "main.osy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Inspect() != "42" {
		t.Errorf("expected the transitively imported value 42, got %s", v.Inspect())
	}
}
