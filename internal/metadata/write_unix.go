//go:build !windows

package metadata

import (
	"github.com/google/renameio/v2"

	"github.com/mrz1836/postbuild/internal/constants"
)

// writeFile writes data to path atomically through a temp file and rename.
func writeFile(path string, data []byte) error {
	return renameio.WriteFile(path, data, constants.MetadataFilePerm)
}
