package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// snappyExt marks snappy-framed files.
const snappyExt = ".sz"

// WriteDocument writes data to path. A path ending in .sz is written
// snappy-compressed; building-scale graph info documents shrink well and
// some deployments archive one per pipeline run.
func WriteDocument(path string, data []byte) error {
	if strings.HasSuffix(path, snappyExt) {
		data = snappy.Encode(nil, data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadDocument reads path, transparently decoding .sz files.
func ReadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.HasSuffix(path, snappyExt) {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return decoded, nil
	}
	return data, nil
}
