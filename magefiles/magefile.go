//go:build mage

// Package main contains Mage build targets for translation-compare developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the batch run expects.
var projectDirs = []string{
	"manga/ja2en",
	"manga/ja2zh",
}

// Init creates the default batch directories next to the binary.
func Init() error {
	for _, dir := range projectDirs {
		path := filepath.Join(binDir, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Batch directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "translation-compare"
	cmdPkg  = "./cmd/translation-compare"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Compare builds the binary and runs the batch comparison over the default
// directories under bin/.
func Compare() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "compare")
}

// Stats prints Go line counts and, per batch directory, how many engine
// files and reports it holds.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)

	for _, dir := range projectDirs {
		path := filepath.Join(binDir, dir)
		engines, _ := filepath.Glob(filepath.Join(path, "*.itp"))
		_, err := os.Stat(filepath.Join(path, "translation_comparison.md"))
		fmt.Printf("%-14s engines: %d, report: %t\n", dir, len(engines), err == nil)
	}
	return nil
}

// countGoLines counts non-blank lines in production and test Go files
// under root.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}
