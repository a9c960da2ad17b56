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

// Package construction implements the eight /construction/* endpoints:
// derive, preprocess, metadata, payloads, parse, combine, hash, submit.
package construction

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/coinbase/rosetta-sdk-go/types"
	"go.uber.org/zap"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// APIService implements /construction/* endpoints.
type APIService struct {
	config       *configuration.Configuration
	types        *sdkTypes.Types
	errors       []*types.Error
	client       Client
	logger       *zap.Logger
	statsdClient *statsd.Client
}

// NewAPIService creates a new instance of a APIService.
func NewAPIService(
	cfg *configuration.Configuration,
	loadedTypes *sdkTypes.Types,
	errs []*types.Error,
	client Client,
	logger *zap.Logger,
	statsdClient *statsd.Client,
) *APIService {
	return &APIService{
		config:       cfg,
		types:        loadedTypes,
		errors:       errs,
		client:       client,
		logger:       logger,
		statsdClient: statsdClient,
	}
}
