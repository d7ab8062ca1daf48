/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package logging provides a thin shared wrapper around logrus for the
// network packages, mirroring the per-component logger names the original
// Python implementation creates via logging.getLogger(f"MessagingClient.{id}").
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base     = logrus.New()
	initOnce sync.Once
)

func configure() {
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel sets the level of the shared base logger, e.g. for tests that
// want debug-level [SENT]/[RECEIVED] tracing.
func SetLevel(level logrus.Level) {
	initOnce.Do(configure)
	base.SetLevel(level)
}

// For returns a logger scoped to a component, analogous to
// logging.getLogger(f"{component}.{id}") in the Python reference.
func For(component, id string) *logrus.Entry {
	initOnce.Do(configure)
	return base.WithFields(logrus.Fields{"component": component, "id": id})
}
