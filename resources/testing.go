package resources

import (
	"testing"

	"github.com/activecm/cowrie-analyzer/config"
)

// InitTestResources creates a default testing resource bundle rooted at a
// temporary directory
func InitTestResources(t *testing.T) *Resources {
	t.Helper()

	conf, err := config.LoadTestingConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewResources(conf)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
