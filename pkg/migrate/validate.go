package migrate

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir valida nombres de archivo, versiones únicas y marcadores goose Up/Down.
func ValidateDir(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("leer dir %q: %w", dir, err)
	}
	seen := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("nombre inválido %q (se espera YYYYMMDDHHMMSS_nombre.sql)", name)
		}
		if prev, ok := seen[m[1]]; ok {
			return fmt.Errorf("versión duplicada %s en %q y %q", m[1], prev, name)
		}
		seen[m[1]] = name

		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("leer %q: %w", name, err)
		}
		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") || !strings.Contains(txt, "-- +goose Down") {
			return fmt.Errorf("migración %q sin marcadores goose Up/Down", name)
		}
	}
	return nil
}

// ValidateEmbedded valida las migraciones embebidas.
func ValidateEmbedded() error {
	return ValidateDir(Migrations, embeddedDir)
}
