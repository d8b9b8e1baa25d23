package fileops

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a file's contents are encoded on disk.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Xz
	Bzip2
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	case Bzip2:
		return "bzip2"
	default:
		return "none"
	}
}

var magics = []struct {
	kind  Compression
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Bzip2, []byte{'B', 'Z', 'h'}},
}

// DetectCompression identifies the compression of header, the first bytes of a file.
func DetectCompression(header []byte) Compression {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.kind
		}
	}
	return None
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// Open opens path for reading and transparently decompresses gzip, zstd,
// xz and bzip2 contents. Plain files are returned as is.
func Open(path string) (io.ReadCloser, Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, None, err
	}

	br := bufio.NewReader(f)
	// Peek returns what it could read along with io.EOF for short files.
	header, _ := br.Peek(6)
	kind := DetectCompression(header)

	var r io.Reader
	closeAll := f.Close
	switch kind {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, kind, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		r = zr
		closeAll = func() error {
			zr.Close()
			return f.Close()
		}
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, kind, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		r = zr
		closeAll = func() error {
			zr.Close()
			return f.Close()
		}
	case Xz:
		xr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, kind, fmt.Errorf("failed to open xz stream: %w", err)
		}
		r = xr
	case Bzip2:
		r = bzip2.NewReader(br)
	default:
		r = br
	}

	return readCloser{Reader: r, close: closeAll}, kind, nil
}
