package batch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// gatherInputs expands the configured inputs into a flat list of PDF
// paths. Directories are walked, zip archives are unpacked into scratch,
// and anything else that is not a PDF is ignored.
func (o *Orchestrator) gatherInputs(ctx context.Context, dir string, files []string, scratch string) ([]string, error) {
	var inputs []string
	if dir != "" {
		found, err := o.walkDir(ctx, dir, scratch)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}
	for _, f := range files {
		expanded, err := o.expandOne(ctx, f, scratch)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, expanded...)
	}
	return inputs, nil
}

func (o *Orchestrator) walkDir(ctx context.Context, dir, scratch string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		expanded, err := o.expandOne(ctx, path, scratch)
		if err != nil {
			return err
		}
		found = append(found, expanded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return found, nil
}

// expandOne maps a single path to zero or more PDFs.
func (o *Orchestrator) expandOne(ctx context.Context, path, scratch string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return []string{path}, nil
	case ".zip":
		return o.extractArchive(ctx, path, scratch)
	default:
		return nil, nil
	}
}

// extractArchive unpacks the PDFs inside a zip into scratch. macOS
// resource-fork entries and directories are skipped, and member names are
// flattened to their base name so an archive cannot write outside scratch.
// An archive that cannot be opened contributes no files; the rest of the
// batch proceeds.
func (o *Orchestrator) extractArchive(ctx context.Context, zipPath, scratch string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		o.logger.Warn("batch.archive.unreadable", "archive", zipPath, "err", err)
		return nil, nil
	}
	defer r.Close()

	dest := filepath.Join(scratch, strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath)))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("archive scratch dir: %w", err)
	}

	var extracted []string
	for _, member := range r.File {
		if err := ctx.Err(); err != nil {
			return extracted, err
		}
		if member.FileInfo().IsDir() || strings.Contains(member.Name, "__MACOSX") {
			continue
		}
		if strings.ToLower(filepath.Ext(member.Name)) != ".pdf" {
			continue
		}
		out := filepath.Join(dest, filepath.Base(member.Name))
		if err := copyMember(member, out); err != nil {
			o.logger.Warn("batch.archive.member_skipped", "archive", zipPath, "member", member.Name, "err", err)
			continue
		}
		extracted = append(extracted, out)
	}

	o.logger.Info("batch.archive.ok", "archive", zipPath, "pdfs", len(extracted))
	return extracted, nil
}

func copyMember(member *zip.File, dest string) error {
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	w, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := io.Copy(w, rc); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}
