package pyroscope

import (
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
)

// Run starts continuous profiling. It is a no-op without a server address.
func Run(logger *logrus.Logger, config Config, tags map[string]string) error {
	if !config.Enabled() {
		return nil
	}

	runtime.SetMutexProfileFraction(config.MutexProfileFraction)
	runtime.SetBlockProfileRate(config.BlockProfileRate)

	allTags := map[string]string{"hostname": os.Getenv("HOSTNAME")}
	for k, v := range tags {
		allTags[k] = v
	}

	pyroscopeConfig := pyroscope.Config{
		ApplicationName: config.ApplicationName,
		ServerAddress:   config.ServerAddress,
		Tags:            allTags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,

			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	}

	if config.ApiKey != "" {
		pyroscopeConfig.AuthToken = config.ApiKey
	}

	_, err := pyroscope.Start(pyroscopeConfig)
	if err == nil {
		logger.Infof("pyroscope profiling to '%s' as '%s'", config.ServerAddress, config.ApplicationName)
	}
	return err
}
