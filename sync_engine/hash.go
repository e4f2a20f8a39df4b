package sync_engine

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// ContentHash is the digest stored in the manifest for a file's bytes.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(content))
}
