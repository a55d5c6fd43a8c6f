package measure

import (
	"github.com/andybalholm/brotli"
)

// countWriter counts bytes written to it and discards them.
type countWriter struct{ n int }

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// compressedSize returns the length of data after brotli compression.
func compressedSize(data []byte, quality, window int) (int, error) {
	var cw countWriter
	w := brotli.NewWriterOptions(&cw, brotli.WriterOptions{
		Quality: quality,
		LGWin:   window,
	})
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}
