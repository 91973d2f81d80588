/*
 *     Copyright 2024 The esconnector Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithProbe(t *testing.T) {
	coreLogger, probeLogger := CoreLogger, ProbeLogger
	defer func() {
		SetCoreLogger(coreLogger)
		SetProbeLogger(probeLogger)
	}()

	coreCore, coreLogs := observer.New(zapcore.DebugLevel)
	probeCore, probeLogs := observer.New(zapcore.DebugLevel)
	SetCoreLogger(zap.New(coreCore).Sugar())
	SetProbeLogger(zap.New(probeCore).Sugar())

	WithProbe("search", "http://localhost:9200", "foo").Warnf("probe cluster health failed: %s", "bar")

	assert := assert.New(t)
	assert.Equal(0, coreLogs.Len())
	assert.Equal(1, probeLogs.Len())

	entry := probeLogs.All()[0]
	assert.Equal("probe cluster health failed: bar", entry.Message)
	assert.Equal(map[string]any{
		"clusterID": "search",
		"url":       "http://localhost:9200",
		"opaqueID":  "foo",
	}, entry.ContextMap())
}
