package gen

import (
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its directory, creating
// directories that don't exist.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if file.Dir != "" {
			if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path(), err)
		}

		log.Infof("wrote %s", file.Path())
	}

	return nil
}
