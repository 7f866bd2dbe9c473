package main

import (
	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/tparks5/ntpsec/internal/config"
)

// startProfiling connects to a pyroscope server. The returned func stops it.
func startProfiling(cfg config.ProfilingConfig) (func(), error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            cfg.Tags,
		Logger:          profileLogger{},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "start pyroscope")
	}

	logs.Infof("profiling to %s as %s", cfg.ServerAddress, cfg.ApplicationName)
	return func() {
		if err := profiler.Stop(); err != nil {
			logs.Errorf("stop pyroscope, err: %+v", err)
		}
	}, nil
}

// profileLogger forwards pyroscope messages to logs and drops debug output.
type profileLogger struct{}

func (profileLogger) Infof(format string, args ...interface{})  { logs.Infof(format, args...) }
func (profileLogger) Debugf(_ string, _ ...interface{})         {}
func (profileLogger) Errorf(format string, args ...interface{}) { logs.Errorf(format, args...) }
