// Package pack normalizes one-or-many files/directories into a single
// transferable artifact.
package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// Prepare resolves paths into one artifact on disk and its display name.
//
// A zip archive is produced when forceCompress is set, more than one path is
// given, or the single path is a directory. Otherwise the artifact is the
// input file itself. The returned cleanup removes any temporary archive and
// is a no-op for direct files; callers should defer it once the transfer is
// done.
func Prepare(paths []string, forceCompress bool) (artifactPath, displayName string, cleanup func(), err error) {
	noop := func() {}
	if len(paths) == 0 {
		return "", "", noop, fmt.Errorf("no paths given: %w", types.ErrInvalidInput)
	}
	infos := make([]os.FileInfo, len(paths))
	for i, p := range paths {
		info, statErr := os.Stat(p)
		if statErr != nil {
			return "", "", noop, fmt.Errorf("cannot read %q: %v", p, statErr)
		}
		infos[i] = info
	}

	if !forceCompress && len(paths) == 1 && !infos[0].IsDir() {
		return paths[0], filepath.Base(paths[0]), noop, nil
	}

	name := archiveName()
	archivePath := filepath.Join(os.TempDir(), name)
	if err := writeArchive(archivePath, paths, infos); err != nil {
		os.Remove(archivePath)
		return "", "", noop, err
	}
	return archivePath, name, func() {
		if rmErr := os.Remove(archivePath); rmErr != nil && !os.IsNotExist(rmErr) {
			tool.DefaultLogger.Warnf("Failed to remove temporary archive %s: %v", archivePath, rmErr)
		}
	}, nil
}

func archiveName() string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return "airshare-" + short + ".zip"
}

func writeArchive(archivePath string, paths []string, infos []os.FileInfo) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for i, p := range paths {
		if infos[i].IsDir() {
			if err := addDir(zw, p); err != nil {
				return err
			}
			continue
		}
		if err := addFile(zw, p, filepath.Base(p)); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %v", err)
	}
	return nil
}

// addDir archives every regular file under root, keeping paths relative to
// root's parent so the directory name itself survives in the archive.
func addDir(zw *zip.Writer, root string) error {
	parent := filepath.Dir(filepath.Clean(root))
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel))
	})
}

func addFile(zw *zip.Writer, path, entryName string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %v", path, err)
	}
	defer f.Close()

	w, err := zw.Create(entryName)
	if err != nil {
		return fmt.Errorf("failed to add %q to archive: %v", entryName, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to archive %q: %v", entryName, err)
	}
	return nil
}
