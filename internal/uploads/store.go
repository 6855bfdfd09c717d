package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
)

// FieldCompanyLogo is the multipart field name carrying the card logo.
const FieldCompanyLogo = "companyLogo"

// fieldDirs maps logical upload fields to subdirectories under the
// public asset root. Unknown fields land in general/.
var fieldDirs = map[string]string{
	"companyLogo": "companyLogo",
	"images":      "images",
	"documents":   "documents",
}

// Store writes uploaded files under a public asset root and hands back
// paths relative to that root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// DirFor returns the subdirectory used for a logical upload field.
func DirFor(field string) string {
	if dir, ok := fieldDirs[field]; ok {
		return dir
	}
	return "general"
}

// UniqueName derives a collision-free stored filename from the original
// one, preserving the extension.
func UniqueName(original string) string {
	ext := path.Ext(original)
	base := strings.TrimSuffix(path.Base(original), ext)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixNano(), random.String(8), ext)
}

// Save writes the uploaded file into the field's subdirectory and
// returns the stored path relative to the public root.
func (s *Store) Save(fh *multipart.FileHeader, field string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	dir := DirFor(field)
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}

	rel := path.Join(dir, UniqueName(fh.Filename))
	dst, err := os.Create(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write upload file")
	}
	return rel, nil
}

// RelativeToPublic strips everything up through and including the
// literal "public" path segment. Relative paths without that segment
// are already store-relative and pass through; absolute and drive
// paths fall back to the bare filename.
func RelativeToPublic(p string) string {
	norm := strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(norm, "/")
	for i, seg := range parts {
		if seg == "public" && i+1 < len(parts) {
			return strings.Join(parts[i+1:], "/")
		}
	}
	if strings.HasPrefix(norm, "/") || strings.Contains(norm, ":") {
		return path.Base(norm)
	}
	return strings.TrimPrefix(norm, "./")
}

// ScanOrphans walks a field directory and returns stored paths older
// than the cutoff that no record references. Used by the periodic
// reconcile job; files are reported, not deleted.
func (s *Store) ScanOrphans(field string, olderThan time.Duration, referenced func(rel string) bool) ([]string, error) {
	dir := filepath.Join(s.root, DirFor(field))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "scan upload dir")
	}

	cutoff := time.Now().Add(-olderThan)
	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		rel := path.Join(DirFor(field), entry.Name())
		if !referenced(rel) {
			orphans = append(orphans, rel)
		}
	}
	return orphans, nil
}
