package counter_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locstat/core/pkg/counter"
	"github.com/locstat/core/pkg/domain"
	"github.com/locstat/core/pkg/language"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func findTotal(t *testing.T, totals []domain.LanguageTotal, name string) domain.LanguageTotal {
	t.Helper()
	for _, total := range totals {
		if total.Language == name {
			return total
		}
	}
	t.Fatalf("no total for language %q in %+v", name, totals)
	return domain.LanguageTotal{}
}

func TestCount(t *testing.T) {
	t.Run("should return empty totals for empty directory", func(t *testing.T) {
		result, err := counter.Count(context.Background(), t.TempDir())
		require.NoError(t, err)

		assert.Empty(t, result.Totals)
		assert.Empty(t, result.Errors)
		assert.Zero(t, result.Stats.FilesScanned)
	})

	t.Run("should count files grouped by language", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "main.go", "// entry\n\npackage main\n")
		writeFile(t, tmpDir, "util.go", "package util\n")
		writeFile(t, tmpDir, "script.py", "# setup\nx = 1\n")

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		require.Len(t, result.Totals, 2)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, 2, goTotal.Files)
		assert.Equal(t, 2, goTotal.Code)
		assert.Equal(t, 1, goTotal.Comment)
		assert.Equal(t, 1, goTotal.Blank)

		pyTotal := findTotal(t, result.Totals, "Python")
		assert.Equal(t, 1, pyTotal.Files)
		assert.Equal(t, 1, pyTotal.Code)
		assert.Equal(t, 1, pyTotal.Comment)

		assert.Equal(t, 3, result.Stats.FilesScanned)
		assert.Equal(t, 3, result.Stats.FilesCounted)
		assert.Zero(t, result.Stats.FilesFailed)
	})

	t.Run("should record file size from metadata", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := "package main\n"
		writeFile(t, tmpDir, "main.go", content)

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, int64(len(content)), goTotal.Size)
	})

	t.Run("should skip unknown extensions", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "binary.bin", "\x00\x01")
		writeFile(t, tmpDir, "noext", "text")
		writeFile(t, tmpDir, "main.go", "package main\n")

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Stats.FilesScanned)
		assert.Empty(t, result.Errors)
	})

	t.Run("should skip default noise directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, filepath.Join("node_modules", "dep.js"), "var x = 1;\n")
		writeFile(t, tmpDir, filepath.Join(".git", "hook.sh"), "echo hi\n")
		writeFile(t, tmpDir, "main.go", "package main\n")

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		require.Len(t, result.Totals, 1)
		assert.Equal(t, "Go", result.Totals[0].Language)
	})

	t.Run("should respect exclude patterns", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, filepath.Join("gen", "zz_gen.go"), "package gen\n")
		writeFile(t, tmpDir, "main.go", "package main\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithExclude([]string{"gen/**"}))
		require.NoError(t, err)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, 1, goTotal.Files)
	})

	t.Run("should fail the run on a malformed include pattern", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "main.go", "package main\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithInclude([]string{"["}))

		// A bad glob must not degrade into an empty report.
		require.Error(t, err)
		assert.ErrorIs(t, err, doublestar.ErrBadPattern)
		assert.Nil(t, result)
	})

	t.Run("should fail the run on a malformed exclude pattern", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "main.go", "package main\n")

		_, err := counter.Count(context.Background(), tmpDir,
			counter.WithExclude([]string{"src/[a-"}))

		require.Error(t, err)
		assert.ErrorIs(t, err, doublestar.ErrBadPattern)
	})

	t.Run("should respect include patterns", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, filepath.Join("src", "a.go"), "package a\n")
		writeFile(t, tmpDir, "b.go", "package b\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithInclude([]string{"src/**"}))
		require.NoError(t, err)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, 1, goTotal.Files)
	})

	t.Run("should respect extension whitelist", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "a.go", "package a\n")
		writeFile(t, tmpDir, "b.py", "x = 1\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithExtensions([]string{"py"}))
		require.NoError(t, err)

		require.Len(t, result.Totals, 1)
		assert.Equal(t, "Python", result.Totals[0].Language)
	})

	t.Run("should skip files over the size limit", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "big.go", "package big // padded to exceed the limit\n")
		writeFile(t, tmpDir, "small.go", "package s\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithMaxFileSize(16))
		require.NoError(t, err)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, 1, goTotal.Files)
	})

	t.Run("should record non-utf8 files as read errors and continue", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "bad.go", "package \xff\xfe\n")
		writeFile(t, tmpDir, "good.go", "package good\n")

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, counter.PhaseRead, result.Errors[0].Phase)
		assert.ErrorIs(t, result.Errors[0], counter.ErrInvalidEncoding)

		goTotal := findTotal(t, result.Totals, "Go")
		assert.Equal(t, 1, goTotal.Files)
		assert.Equal(t, 1, result.Stats.FilesFailed)
		assert.Equal(t, 1, result.Stats.FilesCounted)
	})

	t.Run("should use a custom registry", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "build.zig", "// comment\nconst x = 1;\n")

		registry := language.Default().Merge([]domain.LanguageSpec{
			{Name: "Zig", Extensions: []string{"zig"}, SingleLine: []string{"//"}},
		})

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithRegistry(registry))
		require.NoError(t, err)

		zigTotal := findTotal(t, result.Totals, "Zig")
		assert.Equal(t, 1, zigTotal.Comment)
		assert.Equal(t, 1, zigTotal.Code)
	})

	t.Run("should sort totals by the configured key", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "a.py", "x = 1\n")
		writeFile(t, tmpDir, "b.go", "package b\n\nfunc main() {}\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithSortBy(domain.SortByCode))
		require.NoError(t, err)

		require.Len(t, result.Totals, 2)
		assert.Equal(t, "Go", result.Totals[0].Language)
	})

	t.Run("should return ErrCountCancelled on cancelled context", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "main.go", "package main\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := counter.Count(ctx, tmpDir)
		assert.ErrorIs(t, err, counter.ErrCountCancelled)
	})

	t.Run("should respect timeout option", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "main.go", "package main\n")

		result, err := counter.Count(context.Background(), tmpDir,
			counter.WithTimeout(30*time.Second))
		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("should compute the grand total", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, tmpDir, "a.go", "package a\n")
		writeFile(t, tmpDir, "b.py", "x = 1\n\n")

		result, err := counter.Count(context.Background(), tmpDir)
		require.NoError(t, err)

		sum := result.Sum()
		assert.Equal(t, 2, sum.Code)
		assert.Equal(t, 1, sum.Blank)
		assert.Equal(t, 2, sum.Files)
	})
}

func TestCountWorkerInvariance(t *testing.T) {
	tmpDir := t.TempDir()
	for i := 0; i < 40; i++ {
		writeFile(t, tmpDir, fmt.Sprintf("file%02d.go", i),
			fmt.Sprintf("// file %d\n\npackage p\n\nvar x = %d\n", i, i))
		writeFile(t, tmpDir, fmt.Sprintf("script%02d.py", i),
			fmt.Sprintf("# file %d\nx = %d\n", i, i))
	}

	baseline, err := counter.Count(context.Background(), tmpDir, counter.WithWorkers(1))
	require.NoError(t, err)
	require.NotEmpty(t, baseline.Totals)

	for _, workers := range []int{2, 4, 8, 32} {
		result, err := counter.Count(context.Background(), tmpDir, counter.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, baseline.Totals, result.Totals, "workers=%d", workers)
		assert.Equal(t, baseline.Stats.FilesCounted, result.Stats.FilesCounted, "workers=%d", workers)
	}
}
