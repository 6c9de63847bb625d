// Copyright 2024-2026 Arclight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"sync"

	"github.com/petermattis/goid"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

func logg() *zap.Logger {
	loggerOnce.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// SetLogger swaps the package-level logger, used by cmd/planner to install
// a development logger when the debug.printPlan config option is set.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}

func gfield() zap.Field {
	return zap.Int64("goid", goid.Get())
}

func Info(msg string, fields ...zap.Field) {
	logg().Info(msg, append(fields, gfield())...)
}

func Warn(msg string, fields ...zap.Field) {
	logg().Warn(msg, append(fields, gfield())...)
}

func Error(msg string, fields ...zap.Field) {
	logg().Error(msg, append(fields, gfield())...)
}

func Debug(msg string, fields ...zap.Field) {
	logg().Debug(msg, append(fields, gfield())...)
}
