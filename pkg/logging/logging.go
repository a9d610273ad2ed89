// Package logging configures the process-wide logrus logger sad's
// packages log through. Grounded on the teacher's own use of logrus:
// call sites reach for the package-level logrus.Errorf/Infof/Debugf
// directly rather than threading a *logrus.Logger through every
// function (see cmd/zeta-serve/command_httpd.go, pkg/serve/odb/unpack.go).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the default logrus logger for a sad run. verbose
// raises the level to Debug (surfacing per-file skip/engine-miss
// traces); otherwise only Warn and above are printed, since sad's
// normal output is the diff/patch stream on stdout, not log noise.
func Init(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    false,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.WarnLevel)
}
