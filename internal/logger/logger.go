// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger wraps zerolog with a single package-level logger, the way
// gnark's own logger package does, so that the components that log (setup's
// timing lines, kzg's pairing-failure warnings) report through one sink.
package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerLock sync.RWMutex
	log        zerolog.Logger
)

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	Disable()
}

// Logger returns the package-wide logger. Callers should treat the returned
// value as read-only configuration; use SetOutput / SetLevel to reconfigure.
func Logger() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return log
}

// SetOutput redirects every future log line to w.
func SetOutput(w zerolog.ConsoleWriter) {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	log = log.Output(w)
}

// SetLevel adjusts the minimum logged severity.
func SetLevel(level zerolog.Level) {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	log = log.Level(level)
}

// Disable silences the logger. Tests and library embedders that don't want
// console noise call this; callers that want progress output call SetLevel.
func Disable() {
	SetLevel(zerolog.Disabled)
}
