package static

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
)

// metadataETag derives a strong validator from file metadata. The digest
// covers size and modification time, so it changes whenever the file is
// rewritten without requiring a content read. Returns "" when the
// modification time is unknown and no usable digest can be computed.
func metadataETag(info fs.FileInfo) string {
	modTime := info.ModTime()
	if modTime.IsZero() {
		return ""
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%d/%d", info.Size(), modTime.UnixNano()))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}
