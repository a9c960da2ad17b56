// Copyright 2022 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package services

import (
	"github.com/DataDog/datadog-go/statsd"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// testStatsdClient returns a real statsd.Client pointed at a loopback address
// with nothing listening. UDP writes never block or error on a missing
// listener, so this exercises the real Timer/Incr codepaths safely in tests.
func testStatsdClient() *statsd.Client {
	c, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		panic(err)
	}
	return c
}
