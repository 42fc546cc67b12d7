// Package codec gives the lz77 compressor and a set of well-known
// compressors a common interface, so they can be compared on the same input.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/andybalholm/lz77"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// A Codec compresses and decompresses whole buffers.
type Codec interface {
	// Name is a short identifier for reports.
	Name() string
	// Compress compresses the given buffer.
	Compress(src []byte) ([]byte, error)
	// Decompress decompresses the given buffer.
	Decompress(src []byte) ([]byte, error)
}

// All returns the lz77 codec configured by opts, followed by every reference
// codec.
func All(opts *lz77.CompressOptions) []Codec {
	return []Codec{
		&LZ77{Options: opts},
		Snappy{},
		S2{},
		&LZ4{},
		&Zstd{},
		&Gzip{Level: gzip.DefaultCompression},
		&Brotli{Level: brotli.DefaultCompression},
	}
}

// LZ77 is the native codec.
type LZ77 struct {
	Options           *lz77.CompressOptions
	DecompressOptions *lz77.DecompressOptions
}

func (c *LZ77) Name() string { return "lz77" }

func (c *LZ77) Compress(src []byte) ([]byte, error) {
	out, _ := lz77.Compress(src, c.Options)
	return out, nil
}

func (c *LZ77) Decompress(src []byte) ([]byte, error) {
	return lz77.DecompressWithOptions(src, c.DecompressOptions)
}

// Snappy uses the snappy block format.
type Snappy struct{}

func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (Snappy) Decompress(src []byte) ([]byte, error) {
	return snappy.Decode(nil, src)
}

// S2 uses the S2 block format, a snappy extension.
type S2 struct{}

func (S2) Name() string { return "s2" }

func (S2) Compress(src []byte) ([]byte, error) {
	return s2.Encode(nil, src), nil
}

func (S2) Decompress(src []byte) ([]byte, error) {
	return s2.Decode(nil, src)
}

// LZ4 uses the LZ4 frame format.
type LZ4 struct{}

func (*LZ4) Name() string { return "lz4" }

func (*LZ4) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (*LZ4) Decompress(src []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
}

// Zstd uses the zstd frame format. The encoder and decoder are created on
// first use and kept.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (*Zstd) Name() string { return "zstd" }

func (c *Zstd) Compress(src []byte) ([]byte, error) {
	if c.enc == nil {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		c.enc = enc
	}
	return c.enc.EncodeAll(src, nil), nil
}

func (c *Zstd) Decompress(src []byte) ([]byte, error) {
	if c.dec == nil {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		c.dec = dec
	}
	return c.dec.DecodeAll(src, nil)
}

// Gzip uses the gzip format.
type Gzip struct {
	Level int
}

func (*Gzip) Name() string { return "gzip" }

func (c *Gzip) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.Level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (*Gzip) Decompress(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Brotli uses the brotli format.
type Brotli struct {
	Level int
}

func (*Brotli) Name() string { return "brotli" }

func (c *Brotli) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, c.Level)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (*Brotli) Decompress(src []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
}

// RoundTrip compresses src with c, decompresses the result, and checks that
// it matches src. It returns the compressed form.
func RoundTrip(c Codec, src []byte) ([]byte, error) {
	compressed, err := c.Compress(src)
	if err != nil {
		return nil, fmt.Errorf("%s: compress: %w", c.Name(), err)
	}
	decompressed, err := c.Decompress(compressed)
	if err != nil {
		return compressed, fmt.Errorf("%s: decompress: %w", c.Name(), err)
	}
	if !bytes.Equal(decompressed, src) {
		return compressed, fmt.Errorf("%s: decompressed output doesn't match", c.Name())
	}
	return compressed, nil
}
