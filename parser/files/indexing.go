package files

import (
	"fmt"
	"os"
)

//IndexFiles stats each of the given paths. A file which cannot be
//stat'ed is an error since every matched file must be read.
func IndexFiles(paths []string) ([]*IndexedFile, error) {
	indexed := make([]*IndexedFile, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("could not stat log file: %w", err)
		}
		if info.IsDir() {
			continue
		}
		indexed = append(indexed, &IndexedFile{
			Path:    path,
			Length:  info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return indexed, nil
}

//TotalLength sums the on-disk size of the files
func TotalLength(indexed []*IndexedFile) int64 {
	var total int64
	for _, file := range indexed {
		total += file.Length
	}
	return total
}
