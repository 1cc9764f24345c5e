package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(Migrations, embeddedDir+"/*_"+suffix+".sql")
	require.NoError(t, err)
	require.Len(t, matches, 1, "migración %s", suffix)
	b, err := fs.ReadFile(Migrations, matches[0])
	require.NoError(t, err)
	return string(b)
}

func TestValidateEmbedded(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestLedgerMigration_Restricciones(t *testing.T) {
	content := readMigration(t, "create_products_and_history")
	for _, sub := range []string{
		"CONSTRAINT products_quantity_check CHECK (quantity >= 0)",
		"deleted_at          TIMESTAMPTZ",
		"CREATE TABLE IF NOT EXISTS stock_in_history",
		"CREATE TABLE IF NOT EXISTS stock_out_history",
		"REFERENCES products (id) ON DELETE RESTRICT",
		"quantity       BIGINT        NOT NULL CHECK (quantity > 0)",
	} {
		assert.Contains(t, content, sub)
	}
	assert.NotContains(t, content, "ON DELETE CASCADE")
}

func TestAlertsMigration_IndiceUnicoParcial(t *testing.T) {
	content := readMigration(t, "create_alerts")
	assert.Contains(t, content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_unread_low_stock")
	assert.Contains(t, content, "WHERE type = 'low_stock' AND is_read = FALSE")
}

func TestValidateDir_DetectaErrores(t *testing.T) {
	bad := fstest.MapFS{"m/1_x.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")}}
	require.Error(t, ValidateDir(bad, "m"))

	dup := fstest.MapFS{
		"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	require.Error(t, ValidateDir(dup, "m"))

	noDown := fstest.MapFS{"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n")}}
	require.Error(t, ValidateDir(noDown, "m"))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Supplier Table!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_supplier_table.sql"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
	require.NoError(t, ValidateDir(os.DirFS(dir), "."))

	_, err = CreateSQLMigration(filepath.Join(dir, "x"), "  !!  ")
	require.Error(t, err)
}
