// Package driver runs a compress/decompress round trip over one input and
// reports timing, size, ratio and integrity, optionally alongside the
// reference codecs.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/andybalholm/lz77"
	"github.com/andybalholm/lz77/codec"
	"github.com/pierrec/xxHash/xxHash32"
)

// Config controls one run.
type Config struct {
	// Input is the file to compress. When empty, Generate bytes are
	// produced instead.
	Input string

	// Generate is the number of pseudo-random bytes, drawn from {'A','B'},
	// to compress when Input is empty.
	Generate int
	Seed     int64

	// Matcher names the match finder: "scan" (the default) or "chain".
	Matcher string

	MinMatchLength int
	TableSize      int
	Thorough       bool
	// SearchLen is how many links the chain matcher follows.
	SearchLen      int

	// Compare runs every reference codec on the same input.
	Compare bool
	// Dump writes the token listing of the compressed stream.
	Dump bool
}

// DefaultConfig returns the configuration of the classic demo run: 1024
// generated bytes, a 12-byte minimum match and a 512-slot table.
func DefaultConfig() Config {
	return Config{
		Generate:       1024,
		Seed:           time.Now().UnixNano(),
		Matcher:        MatcherScan,
		MinMatchLength: lz77.DefaultMinMatchLength,
		TableSize:      512,
	}
}

func (c Config) compressOptions() *lz77.CompressOptions {
	o := &lz77.CompressOptions{
		MinMatchLength: c.MinMatchLength,
		TableSize:      c.TableSize,
	}
	if c.Thorough {
		o.Mode = lz77.ModeThorough
	}
	return o
}

// Match finder names accepted in Config.Matcher.
const (
	MatcherScan  = "scan"
	MatcherChain = "chain"
)

func (c Config) newCompressor() (*lz77.Compressor, error) {
	switch c.Matcher {
	case "", MatcherScan:
		return lz77.NewCompressor(c.compressOptions()), nil
	case MatcherChain:
		return lz77.NewChainCompressor(c.compressOptions(), c.SearchLen), nil
	}
	return nil, fmt.Errorf("unknown matcher %q", c.Matcher)
}

// CodecResult is one row of a comparison.
type CodecResult struct {
	Name  string
	Size  int
	Ratio float64
	Time  time.Duration
	Err   error
}

// Report is the outcome of a run.
type Report struct {
	InputSize      int
	CompressedSize int
	Ratio          float64
	CompressTime   time.Duration
	DecompressTime time.Duration
	SizeOK         bool
	IntegrityOK    bool
	InputDigest    uint32
	OutputDigest   uint32
	Codecs         []CodecResult
}

// OK reports whether the round trip reproduced the input.
func (r *Report) OK() bool {
	return r.SizeOK && r.IntegrityOK
}

// LoadInput reads cfg.Input, or generates cfg.Generate bytes.
func LoadInput(cfg Config) ([]byte, error) {
	if cfg.Input != "" {
		return os.ReadFile(cfg.Input)
	}
	if cfg.Generate < 0 {
		return nil, errors.New("generate count must not be negative")
	}
	return Generate(cfg.Generate, cfg.Seed), nil
}

// Generate returns n bytes, each 'A' or 'B', chosen by a PRNG seeded with seed.
func Generate(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A' + byte(r.Intn(2))
	}
	return b
}

// Run loads the input described by cfg, round-trips it, and writes the
// report to w. A decompression error is returned; a mismatch is not, it is
// recorded in the report.
func Run(cfg Config, w io.Writer) (*Report, error) {
	data, err := LoadInput(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	return RunData(cfg, data, w)
}

// RunData is like Run, but uses data as the input.
func RunData(cfg Config, data []byte, w io.Writer) (*Report, error) {
	c, err := cfg.newCompressor()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	compressed, ratio := c.Compress(data)
	compressedAt := time.Now()
	decompressed, err := lz77.Decompress(compressed)
	done := time.Now()
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}

	rep := &Report{
		InputSize:      len(data),
		CompressedSize: len(compressed),
		Ratio:          ratio,
		CompressTime:   compressedAt.Sub(start),
		DecompressTime: done.Sub(compressedAt),
		SizeOK:         len(decompressed) == len(data),
		IntegrityOK:    bytes.Equal(decompressed, data),
		InputDigest:    xxHash32.Checksum(data, 0),
		OutputDigest:   xxHash32.Checksum(decompressed, 0),
	}

	if cfg.Compare {
		rep.Codecs = Compare(data, codec.All(cfg.compressOptions()))
	}

	if err := rep.Print(w); err != nil {
		return rep, err
	}
	if cfg.Dump {
		if err := lz77.Dump(w, compressed); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// Compare round-trips data through each codec.
func Compare(data []byte, codecs []codec.Codec) []CodecResult {
	results := make([]CodecResult, 0, len(codecs))
	for _, c := range codecs {
		start := time.Now()
		compressed, err := codec.RoundTrip(c, data)
		results = append(results, CodecResult{
			Name:  c.Name(),
			Size:  len(compressed),
			Ratio: lz77.Ratio(len(data), len(compressed)),
			Time:  time.Since(start),
			Err:   err,
		})
	}
	return results
}

// Print writes the report in the traditional line-per-metric layout.
func (r *Report) Print(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Compression Time: %v\n", r.CompressTime)
	fmt.Fprintf(&buf, "Decompression Time: %v\n", r.DecompressTime)
	fmt.Fprintf(&buf, "Compression Size: %d\n", r.CompressedSize)
	fmt.Fprintf(&buf, "Compression Ratio: %f\n", r.Ratio)
	fmt.Fprintf(&buf, "Size Check: %s\n", passFail(r.SizeOK))
	fmt.Fprintf(&buf, "Integrity Check: %s\n", passFail(r.IntegrityOK))
	fmt.Fprintf(&buf, "Digest: input %08x output %08x\n", r.InputDigest, r.OutputDigest)

	if len(r.Codecs) > 0 {
		fmt.Fprintf(&buf, "\n%-8s %10s %10s %12s  %s\n", "codec", "size", "ratio", "time", "round trip")
		for _, c := range r.Codecs {
			status := "PASS"
			if c.Err != nil {
				status = "FAIL: " + c.Err.Error()
			}
			fmt.Fprintf(&buf, "%-8s %10d %10.4f %12v  %s\n", c.Name, c.Size, c.Ratio, c.Time, status)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
