package resources

import (
	"fmt"
	"os"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config *config.Config
		Log    *log.Logger
		RunID  string
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) *Resources {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to config: %s\n", err.Error())
		os.Exit(-1)
	}

	res, err := NewResources(conf)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to set up logging: %s\n", err.Error())
		os.Exit(-1)
	}
	return res
}

// NewResources bundles a loaded config with a logger and a fresh run id
func NewResources(conf *config.Config) (*Resources, error) {
	// Fire up the logging system
	logger := initLogger(&conf.S.Log)

	if conf.S.Log.LogToFile {
		if _, err := addFileLogger(logger, conf.S.Log.LogPath); err != nil {
			return nil, err
		}
	}

	//bundle up the system resources
	r := &Resources{
		Config: conf,
		Log:    logger,
		RunID:  uuid.New().String(),
	}

	r.Log.WithFields(log.Fields{
		"run":     r.RunID,
		"version": conf.S.ExactVersion,
	}).Info("Initialized resources")
	return r, nil
}

// Logger returns a log entry tagged with the run id
func (r *Resources) Logger() *log.Entry {
	return r.Log.WithField("run", r.RunID)
}
