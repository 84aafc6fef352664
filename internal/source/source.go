// Package source reads cookie logs from disk into ordered cookie records.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// ErrUnsupportedFormat is returned for file names that are not a known log format.
var ErrUnsupportedFormat = errors.New("unsupported log format")

// Kind is the record encoding of a log file.
type Kind string

const (
	KindCSV   Kind = "csv"
	KindJSONL Kind = "jsonl"
)

// Compression is the container wrapped around a log file.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gz"
	CompressionZstd Compression = "zst"
)

// Header is the first row of a CSV cookie log.
var Header = []string{"cookie", "timestamp"}

// LineError reports a record that could not be read, with its 1-based line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Detect maps a file name such as "cookies.csv.zst" to its kind and compression.
func Detect(path string) (Kind, Compression, error) {
	name := strings.ToLower(filepath.Base(path))

	comp := CompressionNone
	switch ext := filepath.Ext(name); ext {
	case ".gz":
		comp = CompressionGzip
		name = strings.TrimSuffix(name, ext)
	case ".zst":
		comp = CompressionZstd
		name = strings.TrimSuffix(name, ext)
	}

	switch filepath.Ext(name) {
	case ".csv":
		return KindCSV, comp, nil
	case ".jsonl":
		return KindJSONL, comp, nil
	}
	return "", comp, fmt.Errorf("%w: %s (want .csv or .jsonl, optionally .gz or .zst)", ErrUnsupportedFormat, path)
}

// Load reads the log at path. Records keep file order; days are not
// validated here.
func Load(path string) ([]cookie.Record, error) {
	kind, comp, err := Detect(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r, closeFn, err := decompress(f, comp)
	if err != nil {
		return nil, fmt.Errorf("open %s stream: %w", comp, err)
	}
	defer closeFn()

	records, err := Read(r, kind)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func decompress(r io.Reader, comp Compression) (io.Reader, func(), error) {
	switch comp {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// Read decodes records of the given kind from r.
func Read(r io.Reader, kind Kind) ([]cookie.Record, error) {
	switch kind {
	case KindCSV:
		return readCSV(r)
	case KindJSONL:
		return readJSONL(r)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedFormat, kind)
	}
}

// readCSV accepts both two-column rows and single-column rows that hold a
// whole quoted "cookie,timestamp" line.
func readCSV(r io.Reader) ([]cookie.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	records := []cookie.Record{}
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// *csv.ParseError already names the line.
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}

		var rec cookie.Record
		switch len(row) {
		case 1:
			rec, err = cookie.ParseLine(row[0])
			if err != nil {
				return nil, &LineError{Line: line, Err: err}
			}
		case 2:
			rec = cookie.NewRecord(strings.TrimSpace(row[0]), strings.TrimSpace(row[1]))
		default:
			return nil, &LineError{Line: line, Err: fmt.Errorf("expected 2 fields, got %d", len(row))}
		}
		records = append(records, rec)
	}

	return records, nil
}

func isHeader(row []string) bool {
	if len(row) == 1 {
		row = strings.SplitN(row[0], ",", 2)
	}
	return len(row) == 2 &&
		strings.EqualFold(strings.TrimSpace(row[0]), Header[0]) &&
		strings.EqualFold(strings.TrimSpace(row[1]), Header[1])
}

// readJSONL reads one {"cookie": ..., "timestamp": ...} object per line.
func readJSONL(r io.Reader) ([]cookie.Record, error) {
	var p fastjson.Parser
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	records := []cookie.Record{}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		v, err := p.Parse(text)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		c := string(v.GetStringBytes(Header[0]))
		ts := string(v.GetStringBytes(Header[1]))
		if c == "" || ts == "" {
			return nil, &LineError{Line: line, Err: errors.New(`object needs string "cookie" and "timestamp" fields`)}
		}
		records = append(records, cookie.NewRecord(c, ts))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan jsonl: %w", err)
	}
	return records, nil
}
