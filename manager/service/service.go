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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/esconnector/esconnector/manager/cache"
	"github.com/esconnector/esconnector/manager/probe"
	"github.com/esconnector/esconnector/manager/store"
	"github.com/esconnector/esconnector/manager/types"
)

type Service interface {
	CreateCluster(context.Context, types.ClusterForm) (*types.SaveClusterResponse, error)
	UpdateCluster(context.Context, string, types.ClusterForm) (*types.SaveClusterResponse, error)
	GetCluster(context.Context, string) (*types.ClusterResponse, error)
	GetClusters(context.Context, types.GetClustersQuery) ([]types.ClusterResponse, int64, error)
	SetDefaultCluster(context.Context, string) (*types.ClusterResponse, error)
	GetDefaultCluster(context.Context) (*types.ClusterResponse, error)
	GetClusterInfo(context.Context, string) (*types.ClusterInfoTable, error)
	GetClusterForm(context.Context, string) (*types.ClusterFormSchema, error)
}

type service struct {
	store  *store.Store
	prober probe.Prober
	cache  *cache.Cache

	// healthCacheTTL is the ttl of cached cluster health, zero disables caching.
	healthCacheTTL time.Duration
	probeGroup     singleflight.Group

	// healthGenerations counts the saves of each cluster, health probed
	// before the latest save is not cached.
	healthGenerationsMu sync.Mutex
	healthGenerations   map[string]uint64
}

// Option is a functional option for service
type Option func(s *service)

// WithStore set the cluster store
func WithStore(store *store.Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithProber set the cluster health prober
func WithProber(prober probe.Prober) Option {
	return func(s *service) {
		s.prober = prober
	}
}

// WithCache set the cache client and the ttl of cached cluster health,
// a non positive ttl falls back to the ttl of the cache client
func WithCache(cache *cache.Cache, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = cache
		s.healthCacheTTL = ttl
		if ttl <= 0 {
			s.healthCacheTTL = cache.TTL
		}
	}
}

// New returns a new Service instence
func New(options ...Option) Service {
	s := &service{
		prober:            probe.New(),
		healthGenerations: map[string]uint64{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}
