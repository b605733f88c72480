// Package project reads the descriptor of the project being built so the
// generator can default the application name.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"golang.org/x/mod/modfile"
)

// Descriptor holds what the generator needs to know about the host project.
type Descriptor struct {
	// Name is the project name, empty when none could be determined.
	Name string
	// Root is the directory the descriptor was read from.
	Root string
	// Source is the descriptor file name, e.g. "package.json" or "go.mod".
	Source string
}

// Descriptor file names in lookup order.
const (
	PackageJSON = "package.json"
	GoMod       = "go.mod"
)

// FindRoot returns the top-level directory of the git work tree containing
// start. Outside a repository it returns start itself.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to anchor on.
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}

// Discover walks from start up to the project root and returns the first
// descriptor found. A missing descriptor is not an error: the returned
// Descriptor then has an empty Name.
func Discover(start string) (Descriptor, error) {
	root, err := FindRoot(start)
	if err != nil {
		return Descriptor{}, err
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return Descriptor{}, fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		d, found, err := Load(dir)
		if err != nil || found {
			return d, err
		}
		if dir == root {
			return Descriptor{Root: root}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Descriptor{Root: root}, nil
		}
		dir = parent
	}
}

// Load reads the descriptor in dir, preferring package.json over go.mod.
func Load(dir string) (Descriptor, bool, error) {
	if data, err := os.ReadFile(filepath.Join(dir, PackageJSON)); err == nil { // #nosec G304 -- fixed file name
		name, err := packageName(data)
		if err != nil {
			return Descriptor{}, false, fmt.Errorf("parse %s: %w", filepath.Join(dir, PackageJSON), err)
		}
		return Descriptor{Name: name, Root: dir, Source: PackageJSON}, true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Descriptor{}, false, fmt.Errorf("read %s: %w", PackageJSON, err)
	}

	if data, err := os.ReadFile(filepath.Join(dir, GoMod)); err == nil { // #nosec G304 -- fixed file name
		return Descriptor{Name: moduleName(data), Root: dir, Source: GoMod}, true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Descriptor{}, false, fmt.Errorf("read %s: %w", GoMod, err)
	}

	return Descriptor{}, false, nil
}

func packageName(data []byte) (string, error) {
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", err
	}
	return pkg.Name, nil
}

// moduleName returns the last element of the module path, without a major
// version suffix: "example.com/team/site/v2" becomes "site".
func moduleName(data []byte) string {
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return ""
	}
	base := path.Base(modPath)
	if len(base) > 1 && base[0] == 'v' && isDigits(base[1:]) {
		base = path.Base(path.Dir(modPath))
	}
	return base
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
