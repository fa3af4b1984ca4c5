package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"banditboard/internal/modules/hypothesis/domain"
	hypothesisout "banditboard/internal/modules/hypothesis/port/out"
	"banditboard/internal/platform/markdown"
	"banditboard/internal/platform/slug"
)

const defaultNoteBody = "## Notes\n\n## Next Actions\n"

type VaultNoteWriter struct{}

func NewVaultNoteWriter() hypothesisout.NoteWriter {
	return VaultNoteWriter{}
}

// Write keeps any text the user added outside the generated block.
func (VaultNoteWriter) Write(_ context.Context, dir string, item domain.Item, note domain.Note) (string, error) {
	name := slug.Truncate(slug.Make(item.IdeaTitle+" "+item.Hypothesis), 60)
	if len(item.ID) >= 8 {
		name += "-" + item.ID[:8]
	} else if item.ID != "" {
		name += "-" + item.ID
	}
	path := filepath.Join(dir, "hypotheses", name+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create note directory: %w", err)
	}

	body := defaultNoteBody
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		var previous domain.NoteMeta
		existingBody, _, splitErr := markdown.DecodeFrontmatter(string(existing), &previous)
		if splitErr != nil {
			return "", fmt.Errorf("parse %s: %w", path, splitErr)
		}
		if strings.TrimSpace(existingBody) != "" {
			body = strings.TrimPrefix(existingBody, "\n")
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	body = markdown.ReplaceBlock(body, domain.NoteBlockStart, domain.NoteBlockEnd, note.Block)
	rendered, err := markdown.RenderFrontmatter(note.Meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write hypothesis note: %w", err)
	}
	return path, nil
}
