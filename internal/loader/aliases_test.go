package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAliasesExample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Chetan", "Chet\nChet P\nC. Pat\n")
	writeFile(t, dir, "Nikhil", "Nik\nNik P")
	writeFile(t, dir, "Empty", "")

	res := LoadAliases(dir)

	assert.Empty(t, res.FailedSources)
	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, map[string][]string{
		"Chetan": {"Chet", "Chet P", "C. Pat"},
		"Nikhil": {"Nik", "Nik P"},
		"Empty":  {},
	}, res.Aliases)
}

func TestLoadAliasesTrimsAndDropsBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bhavin.txt", "  Bhav  \r\n\r\n\t\nB.\nBhav\n   \n")

	res := LoadAliases(dir)

	require.Empty(t, res.FailedSources)
	assert.Equal(t, []string{"Bhav", "B.", "Bhav"}, res.Aliases["Bhavin"])
}

func TestLoadAliasesDuplicateStemLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "Chetan", "Chet\n")
	writeFile(t, dir, "Chetan.txt", "C. Pat\n")

	res := LoadAliases(dir)

	assert.Empty(t, res.FailedSources)
	assert.Equal(t, map[string][]string{"Chetan": {"C. Pat"}}, res.Aliases)
	assert.Equal(t, []string{first}, res.Overwritten)
}

func TestLoadAliasesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	res := LoadAliases(dir)

	assert.Empty(t, res.Aliases)
	assert.NotNil(t, res.Aliases)
	assert.Equal(t, []string{dir}, res.FailedSources)
	assert.Equal(t, StatusDirectoryUnreadable, res.Status())
}

func TestLoadAliasesInvalidUTF8IsFailedSource(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "Broken", "Nik\n\xff\xfe\n")
	writeFile(t, dir, "Nikhil", "Nik\n")

	res := LoadAliases(dir)

	assert.Equal(t, []string{bad}, res.FailedSources)
	assert.Equal(t, StatusPartial, res.Status())
	assert.Equal(t, map[string][]string{"Nikhil": {"Nik"}}, res.Aliases)
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a/Chetan", "Chetan", false},
		{"/a/Chetan.txt", "Chetan", false},
		{"/a/Chet.P.txt", "Chet.P", false},
		{"/a/.hidden", ".hidden", false},
		{"/a/Nik.", "Nik", false},
		{"/a/bad\xff.txt", "", true},
	}
	for _, tt := range tests {
		got, err := canonicalName(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnrepresentableName, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
