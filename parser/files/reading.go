package files

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pt "github.com/activecm/cowrie-analyzer/parser/parsetypes"

	jsoniter "github.com/json-iterator/go"
)

// maxLineLength bounds a single JSON record. Cowrie records holding SSH
// key exchange details or long command input can run to several kilobytes.
const maxLineLength = 1024 * 1024

// GatherLogFiles returns the files in dir whose names match the glob
// pattern. The order of the result carries no meaning.
func GatherLogFiles(dir string, pattern string) ([]string, error) {
	matches, err := filepath.Glob(SearchPattern(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad log file pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// SearchPattern joins the directory and the file glob
func SearchPattern(dir string, pattern string) string {
	return filepath.Join(dir, pattern)
}

// GetFileScanner returns a buffered line scanner for a cowrie log file and a
// function to close the underlying stream. Files ending in .gz are
// decompressed on the fly.
func GetFileScanner(fileHandle *os.File) (scanner *bufio.Scanner, closer func() error, err error) {
	// by default just close out the underlying file handle
	closer = fileHandle.Close

	if isGzipPath(fileHandle.Name()) {
		gzipReader, err := gzip.NewReader(fileHandle)
		if err != nil {
			return nil, closer, err
		}
		closer = func() error {
			errGzip := gzipReader.Close()
			errFile := fileHandle.Close()
			if errGzip != nil {
				return errGzip
			}
			return errFile
		}
		scanner = bufio.NewScanner(gzipReader)
	} else {
		scanner = bufio.NewScanner(fileHandle)
	}

	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner, closer, nil
}

// ParseJSONLine creates a new Event from a line of a cowrie JSON log
func ParseJSONLine(lineBuffer []byte) (pt.Event, error) {
	var ev pt.Event
	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(lineBuffer, &ev)
	return ev, err
}

// ReadFile parses every line of the file as a JSON record and hands each
// event to the callback in order. The first unparsable line aborts the read.
func ReadFile(path string, callback func(pt.Event)) (int, error) {
	fileHandle, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open log file: %w", err)
	}

	scanner, closeScanner, err := GetFileScanner(fileHandle)
	defer closeScanner()
	if err != nil {
		return 0, fmt.Errorf("could not read log file %s: %w", path, err)
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		ev, err := ParseJSONLine(scanner.Bytes())
		if err != nil {
			return lineNum - 1, fmt.Errorf("%s:%d: unparsable JSON in log: %w", path, lineNum, err)
		}
		callback(ev)
	}

	if err := scanner.Err(); err != nil {
		return lineNum, fmt.Errorf("could not read log file %s: %w", path, err)
	}
	return lineNum, nil
}

func isGzipPath(path string) bool {
	return strings.HasSuffix(path, ".gz")
}
