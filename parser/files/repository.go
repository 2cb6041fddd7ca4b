package files

import "time"

//IndexedFile describes a log file which matched the search pattern
type IndexedFile struct {
	Path    string
	Length  int64
	ModTime time.Time
}

//IsGzip returns whether the file is gzip compressed
func (i *IndexedFile) IsGzip() bool {
	return isGzipPath(i.Path)
}
