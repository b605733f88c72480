package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	t.Run("package.json wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name":"my-web-app","version":"1.0.0"}`)
		writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/other\n")

		d, found, err := Load(dir)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "my-web-app", d.Name)
		assert.Equal(t, PackageJSON, d.Source)
	})

	t.Run("go.mod module name", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "go.mod"), "module git.example.com/team/site/v2\n\ngo 1.25\n")

		d, found, err := Load(dir)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "site", d.Name)
		assert.Equal(t, GoMod, d.Source)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, found, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed package.json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{`)
		_, _, err := Load(dir)
		require.Error(t, err)
	})
}

func TestFindRootAndDiscover(t *testing.T) {
	repo := t.TempDir()
	_, err := git.PlainInit(repo, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(repo, "package.json"), `{"name":"root-app"}`)
	nested := filepath.Join(repo, "assets", "img")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	root, err := FindRoot(nested)
	require.NoError(t, err)
	wantRoot, err := filepath.EvalSymlinks(repo)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)

	d, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, "root-app", d.Name)
}

func TestFindRootOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	root, err := FindRoot(dir)
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, root)

	d, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, d.Name)
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "faviconbuilder", moduleName([]byte("module git.home.luguber.info/inful/faviconbuilder\n")))
	assert.Equal(t, "single", moduleName([]byte("module single\n")))
	assert.Equal(t, "", moduleName([]byte("go 1.25\n")))
}
