package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/parser/files"
	"github.com/activecm/cowrie-analyzer/parser/parsetypes"
	"github.com/activecm/cowrie-analyzer/resources"
	"github.com/activecm/cowrie-analyzer/util"
	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

type (
	//FSImporter loads cowrie JSON logs from the file system
	FSImporter struct {
		log    *log.Entry
		config *config.Config

		out      io.Writer // status lines
		progress io.Writer // progress bar, nil disables it

		memoryLimit uint64
	}
)

//NewFSImporter creates a new file system importer
func NewFSImporter(res *resources.Resources) *FSImporter {
	return &FSImporter{
		log:         res.Logger(),
		config:      res.Config,
		out:         os.Stdout,
		progress:    os.Stdout,
		memoryLimit: memory.TotalMemory() / 2, // every event is held in memory until the run ends
	}
}

//SetOutput redirects status lines and the progress bar. A nil progress
//writer disables the progress bar.
func (fs *FSImporter) SetOutput(out io.Writer, progress io.Writer) {
	fs.out = out
	fs.progress = progress
}

//SearchPattern returns the glob used to find the log files in logDir
func (fs *FSImporter) SearchPattern(logDir string) string {
	return files.SearchPattern(fs.config.S.ResolvePath(logDir), fs.config.S.Paths.FilePattern)
}

//CollectFileDetails finds and stats the log files in logDir
func (fs *FSImporter) CollectFileDetails(logDir string) ([]*files.IndexedFile, error) {
	pattern := fs.SearchPattern(logDir)
	fmt.Fprintf(fs.out, "[-] Searching for log files: %s\n", pattern)

	if dir := fs.config.S.ResolvePath(logDir); !util.IsDir(dir) {
		return nil, fmt.Errorf("log directory %s does not exist: %w", dir, os.ErrNotExist)
	}

	paths, err := files.GatherLogFiles(fs.config.S.ResolvePath(logDir), fs.config.S.Paths.FilePattern)
	if err != nil {
		return nil, err
	}

	indexedFiles, err := files.IndexFiles(paths)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(fs.out, "[-] Analyzing %d files\n", len(indexedFiles))
	fs.log.WithFields(log.Fields{
		"pattern": pattern,
		"files":   len(indexedFiles),
	}).Info("Collected log files")

	total := uint64(files.TotalLength(indexedFiles))
	if fs.memoryLimit > 0 && total > fs.memoryLimit {
		fmt.Fprintf(fs.out, "\t[!] Log files total %d bytes, more than half of system memory\n", total)
		fs.log.WithFields(log.Fields{
			"bytes": total,
			"limit": fs.memoryLimit,
		}).Warn("Log files may not fit in memory")
	}

	return indexedFiles, nil
}

//Run reads every file in order and returns all of the parsed events.
//The first unreadable file or unparsable line aborts the run.
func (fs *FSImporter) Run(indexedFiles []*files.IndexedFile) ([]parsetypes.Event, error) {
	start := time.Now()
	var events []parsetypes.Event

	var p *mpb.Progress
	var bar *mpb.Bar
	if fs.progress != nil && len(indexedFiles) > 0 {
		// progress bar for troubleshooting
		p = mpb.New(mpb.WithWidth(20), mpb.WithOutput(fs.progress))
		bar = p.AddBar(int64(len(indexedFiles)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Parsing Logs:", decor.WC{W: 30, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	var runErr error
	done := 0
	for _, indexedFile := range indexedFiles {
		lines, err := files.ReadFile(indexedFile.Path, func(ev parsetypes.Event) {
			events = append(events, ev)
		})
		if err != nil {
			fs.log.WithFields(log.Fields{
				"path":  indexedFile.Path,
				"error": err.Error(),
			}).Error("Failed to parse log file")
			runErr = err
			break
		}

		fs.log.WithFields(log.Fields{
			"path":  indexedFile.Path,
			"gzip":  indexedFile.IsGzip(),
			"lines": lines,
		}).Debug("Parsed log file")

		done++
		if bar != nil {
			bar.IncrBy(1)
		}
	}

	if p != nil {
		// finish the bar so Wait returns even when the run was aborted
		if remaining := len(indexedFiles) - done; remaining > 0 {
			bar.IncrBy(remaining)
		}
		p.Wait()
	}

	if runErr != nil {
		return nil, runErr
	}

	fs.log.WithFields(log.Fields{
		"current_time": time.Now().Format(util.TimeFormat),
		"total_time":   time.Since(start).String(),
		"events":       len(events),
	}).Info("Finished parsing log files")
	return events, nil
}

//Load finds, reads and parses every log file in logDir
func (fs *FSImporter) Load(logDir string) ([]parsetypes.Event, error) {
	indexedFiles, err := fs.CollectFileDetails(logDir)
	if err != nil {
		return nil, err
	}
	return fs.Run(indexedFiles)
}
