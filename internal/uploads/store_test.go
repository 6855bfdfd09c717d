package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func makeFileHeader(t *testing.T, field, name, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("logo.png")
	b := UniqueName("logo.png")
	if a == b {
		t.Errorf("two names for the same file should differ: %q", a)
	}
	if !strings.HasPrefix(a, "logo-") || !strings.HasSuffix(a, ".png") {
		t.Errorf("name should keep base and extension: %q", a)
	}

	odd := UniqueName("my company (1).png")
	if strings.ContainsAny(odd, " ()") {
		t.Errorf("unsafe characters should be mapped away: %q", odd)
	}

	noname := UniqueName(".png")
	if !strings.HasPrefix(noname, "file-") {
		t.Errorf("empty base should fall back: %q", noname)
	}
}

func TestDirFor(t *testing.T) {
	tests := map[string]string{
		"companyLogo": "companyLogo",
		"images":      "images",
		"documents":   "documents",
		"resume":      "general",
		"":            "general",
	}
	for field, want := range tests {
		if got := DirFor(field); got != want {
			t.Errorf("DirFor(%q) = %q, want %q", field, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	fh := makeFileHeader(t, FieldCompanyLogo, "logo.png", "png-bytes")
	rel, err := store.Save(fh, FieldCompanyLogo)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(rel, "companyLogo/") {
		t.Errorf("stored path should be under companyLogo/: %q", rel)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestRelativeToPublic(t *testing.T) {
	tests := map[string]string{
		"/srv/linkit/public/companyLogo/logo-1-x.png": "companyLogo/logo-1-x.png",
		"public/images/a.png":                         "images/a.png",
		"C:\\app\\public\\images\\a.png":              "images/a.png",
		"/tmp/elsewhere/logo.png":                     "logo.png",
		"companyLogo/logo-1-x.png":                    "companyLogo/logo-1-x.png",
		"./companyLogo/logo-1-x.png":                  "companyLogo/logo-1-x.png",
		"bare.png":                                    "bare.png",
	}
	for in, want := range tests {
		if got := RelativeToPublic(in); got != want {
			t.Errorf("RelativeToPublic(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanOrphans(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	dir := filepath.Join(root, "companyLogo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	old := filepath.Join(dir, "orphan.png")
	if err := os.WriteFile(old, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	kept := filepath.Join(dir, "kept.png")
	if err := os.WriteFile(kept, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(kept, stale, stale); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "fresh.png")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	orphans, err := store.ScanOrphans(FieldCompanyLogo, 24*time.Hour, func(rel string) bool {
		return rel == "companyLogo/kept.png"
	})
	if err != nil {
		t.Fatalf("ScanOrphans failed: %v", err)
	}
	if len(orphans) != 1 || orphans[0] != "companyLogo/orphan.png" {
		t.Errorf("orphans = %v, want only companyLogo/orphan.png", orphans)
	}
}

func TestScanOrphansMissingDir(t *testing.T) {
	store := NewStore(t.TempDir())
	orphans, err := store.ScanOrphans(FieldCompanyLogo, time.Hour, func(string) bool { return false })
	if err != nil || orphans != nil {
		t.Errorf("missing dir should be empty, got %v / %v", orphans, err)
	}
}
