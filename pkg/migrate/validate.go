package migrate

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates migration filenames + basic SQL headers inside fsys.
func ValidateDir(fsys fs.FS, dir string) error {
	if fsys == nil {
		return fmt.Errorf("filesystem is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read file %q: %w", name, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	return nil
}

// ValidateParity checks that every dialect carries the same migration versions.
func ValidateParity() error {
	var reference map[string]string
	var referenceDialect string
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		fsys, dir, err := Source(dialect)
		if err != nil {
			return err
		}
		if err := ValidateDir(fsys, dir); err != nil {
			return fmt.Errorf("%s: %w", dialect, err)
		}
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return err
		}
		names := map[string]string{}
		for _, e := range entries {
			names[e.Name()] = dialect
		}
		if reference == nil {
			reference, referenceDialect = names, dialect
			continue
		}
		for name := range reference {
			if _, ok := names[name]; !ok {
				return fmt.Errorf("migration %q exists for %s but not %s", name, referenceDialect, dialect)
			}
		}
		for name := range names {
			if _, ok := reference[name]; !ok {
				return fmt.Errorf("migration %q exists for %s but not %s", name, dialect, referenceDialect)
			}
		}
	}
	return nil
}
