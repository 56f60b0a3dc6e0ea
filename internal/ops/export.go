package ops

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
	"github.com/campusfest/memories/internal/gallery"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path     string            // optional, default: <base>/exports/moments-<timestamp>.jsonl
	Category *gallery.Category // optional filter
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the header line in a JSONL export file.
type ExportHeader struct {
	MemoriesExport bool   `json:"_memories_export"`
	SchemaVersion  string `json:"schema_version"`
	ExportedAt     int64  `json:"exported_at"`
}

// exportRecord is one moment line in a JSONL export, with its full
// comment thread inlined.
type exportRecord struct {
	gallery.Moment
	Comments []gallery.Comment `json:"comments,omitempty"`
}

// Export writes the combined catalog to a JSONL file: one header line, then
// one line per moment with its comment thread inlined.
func Export(g *Gallery, input ExportInput) (*ExportOutput, error) {
	now := g.now()
	exportedAt := now.Unix()

	exportPath := input.Path
	if exportPath == "" {
		name := fmt.Sprintf("moments-%s.jsonl", now.Format("2006-01-02-150405"))
		exportPath = filepath.Join(dbpkg.ExportsDir(g.BaseDir), name)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	moments, err := g.allMoments()
	if err != nil {
		return nil, err
	}
	if input.Category != nil {
		filtered := moments[:0]
		for _, m := range moments {
			if m.Category == *input.Category {
				filtered = append(filtered, m)
			}
		}
		moments = filtered
	}

	// Write to temp file first, then atomic rename to preserve any existing
	// file on failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	enc := json.NewEncoder(file)
	header := ExportHeader{
		MemoriesExport: true,
		SchemaVersion:  "1.0",
		ExportedAt:     exportedAt,
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}

	count := 0
	for _, m := range moments {
		thread, err := g.loadThread(m.ID)
		if err != nil {
			return nil, err
		}
		if err := enc.Encode(exportRecord{Moment: m, Comments: thread.Comments}); err != nil {
			return nil, errors.NewInternal(err)
		}
		count++
	}

	if err := file.Close(); err != nil {
		file = nil
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	file = nil
	if err := os.Rename(tempPath, exportPath); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	success = true

	return &ExportOutput{
		Path:       exportPath,
		Count:      count,
		ExportedAt: exportedAt,
	}, nil
}
