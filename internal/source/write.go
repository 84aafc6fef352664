package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// Write stores records at path in the format its name implies. Only CSV is
// written; a .jsonl name is rejected.
func Write(path string, records []cookie.Record) (err error) {
	kind, comp, err := Detect(path)
	if err != nil {
		return err
	}
	if kind != KindCSV {
		return fmt.Errorf("%w: writing %s is not supported", ErrUnsupportedFormat, kind)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close log: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	w, closeFn, err := compress(bw, comp)
	if err != nil {
		return fmt.Errorf("open %s stream: %w", comp, err)
	}

	if err := WriteCSV(w, records); err != nil {
		return err
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("finish %s stream: %w", comp, err)
	}
	return bw.Flush()
}

func compress(w io.Writer, comp Compression) (io.Writer, func() error, error) {
	switch comp {
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		return zw, zw.Close, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

// WriteCSV writes a header row followed by one cookie,timestamp row per record.
func WriteCSV(w io.Writer, records []cookie.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Cookie, r.Timestamp}); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
