//go:build !ffmpeg_embedded

package ffmpeg

import "io"

// Builds without the ffmpeg_embedded tag carry no bundled archives.
func openEmbeddedAsset(string) (io.ReadCloser, bool, error) {
	return nil, false, nil
}
