package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileNameName(t *testing.T) {
	name := GenerateOutputFileName("{name}", "books/2024.xml", ".html")
	assert.Equal(t, "2024.html", name)
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	name := GenerateOutputFileName("{name}_{uuid}", "/data/audit.xml", ".xlsx")

	assert.True(t, len(name) > len("audit_.xlsx"))
	assert.Regexp(t, regexp.MustCompile(`^audit_[0-9a-f-]{36}\.xlsx$`), name)

	id := name[len("audit_") : len(name)-len(".xlsx")]
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestGenerateOutputFileNameTimestamp(t *testing.T) {
	name := GenerateOutputFileName("{name}_{timestamp}", "report.xml", ".html")
	assert.Regexp(t, regexp.MustCompile(`^report_\d{8}_\d{6}\.html$`), name)

	name = GenerateOutputFileName("{date}-{time}", "report.xml", ".html")
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-\d{6}\.html$`), name)
}

func TestGenerateOutputFileNameKeepsExistingExtension(t *testing.T) {
	name := GenerateOutputFileName("fixed.html", "input.xml", ".html")
	assert.Equal(t, "fixed.html", name)
}

func TestGenerateOutputFileNameLiteralFormat(t *testing.T) {
	name := GenerateOutputFileName("saft-report", "whatever.xml", ".html")
	assert.Equal(t, "saft-report.html", name)
}

func TestWriteOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.xml")

	require.NoError(t, WriteOutputFile(path, []byte("<AuditFile/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<AuditFile/>", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.xml", entries[0].Name())
}

func TestWriteOutputFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")

	require.NoError(t, WriteOutputFile(path, []byte("first")))
	require.NoError(t, WriteOutputFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.txt")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	assert.NoError(t, EnsureDir(dir))
}
