package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLocateFromProject(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    func(dir string) string
		wantErr error
	}{
		{
			name:    "relative file url",
			file:    ProjectFileName,
			content: "repository: \"file://.keepsake\"\n",
			want:    func(dir string) string { return filepath.Join(dir, ".keepsake") },
		},
		{
			name:    "absolute file url",
			file:    ProjectFileName,
			content: "repository: \"file:///data/keepsake\"\nstorage: local\n",
			want:    func(string) string { return "/data/keepsake" },
		},
		{
			name:    "alternate file name",
			file:    ProjectFileNameAlt,
			content: "repository: file://repo\n",
			want:    func(dir string) string { return filepath.Join(dir, "repo") },
		},
		{
			name:    "missing repository key",
			file:    ProjectFileName,
			content: "storage: local\n",
			wantErr: ErrNoRepository,
		},
		{
			name:    "unsupported scheme",
			file:    ProjectFileName,
			content: "repository: \"s3://bucket/keepsake\"\n",
			wantErr: ErrUnsupportedScheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeProjectFile(t, dir, tt.file, tt.content)

			got, err := LocateFromProject(dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(dir), got)
		})
	}
}

func TestLocateFromProject_NoFile(t *testing.T) {
	_, err := LocateFromProject(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestLocateFromProject_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ProjectFileName, "repository: [unterminated\n")

	_, err := LocateFromProject(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestParseLocation(t *testing.T) {
	got, err := ParseLocation("file:///tmp/repo/", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/repo", got)

	_, err = ParseLocation("", "/base")
	assert.ErrorIs(t, err, ErrNoRepository)

	_, err = ParseLocation("gs://bucket", "/base")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = ParseLocation("file://", "/base")
	assert.Error(t, err)
}
