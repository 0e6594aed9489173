package index

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// Header is the first row of every class index file.
var Header = []string{"class_name", "file_path"}

// ErrBadHeader is returned by DecodeCSV when the first row is not Header.
var ErrBadHeader = errors.New("unexpected class index header")

// WriteCSV writes entries to path, replacing any existing file.
func WriteCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	buffered := bufio.NewWriter(f)
	if err := EncodeCSV(buffered, entries); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := buffered.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes the header and one row per entry, in order. Rows end in
// CRLF and fields are quoted only when they contain a comma, a quote or a
// line break. Line breaks inside a field are written unchanged.
func EncodeCSV(w io.Writer, entries []Entry) error {
	var row bytes.Buffer
	writer := csv.NewWriter(&row)

	writeRow := func(record []string) error {
		row.Reset()
		if err := writer.Write(record); err != nil {
			return err
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		// Only the record terminator becomes CRLF.
		line := bytes.TrimSuffix(row.Bytes(), []byte{'\n'})
		if _, err := w.Write(line); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\r\n")
		return err
	}

	if err := writeRow(Header); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writeRow([]string{entry.FullyQualifiedName, entry.FilePath}); err != nil {
			return err
		}
	}
	return nil
}

// ReadCSV loads a class index file written by WriteCSV.
func ReadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := DecodeCSV(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

// DecodeCSV parses a class index, checking the header row.
func DecodeCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrBadHeader
		}
		return nil, err
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, header)
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{FullyQualifiedName: record[0], FilePath: record[1]})
	}
}
