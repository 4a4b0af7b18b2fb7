package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ternarybob/salecaption/internal/interfaces"
	"github.com/ternarybob/salecaption/internal/services/extraction"
)

// LoadUploads reads media files from disk. A directory is one video upload whose
// image files, in name order, are its sampled frames.
func LoadUploads(paths []string) ([]extraction.Upload, error) {
	uploads := make([]extraction.Upload, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if info.IsDir() {
			frames, err := loadFrames(path)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, extraction.Upload{Name: filepath.Base(path), Frames: frames})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		uploads = append(uploads, extraction.Upload{Name: filepath.Base(path), Data: data})
	}
	return uploads, nil
}

func loadFrames(dir string) ([]interfaces.Media, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames in %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var frames []interfaces.Media
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", path, err)
		}
		mime := mimetype.Detect(data)
		if !strings.HasPrefix(mime.String(), "image/") {
			continue
		}
		frames = append(frames, interfaces.Media{Name: entry.Name(), MIMEType: mime.String(), Data: data})
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("no image frames found in %s", dir)
	}
	return frames, nil
}
