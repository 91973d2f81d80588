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

package service

import (
	"context"
	"strconv"

	gocache "github.com/go-redis/cache/v8"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/cache"
	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/types"
)

const (
	clusterInfoTableID    = "cluster-info"
	clusterInfoTableClass = "admin-elasticsearch"
)

var clusterInfoHeader = []string{"Cluster name", "Status", "Number of nodes"}

// unavailableClusterInfoRow is shown when the cluster health cannot be read.
var unavailableClusterInfoRow = []string{"Unknown", "Unavailable", ""}

func (s *service) GetClusterInfo(ctx context.Context, id string) (*types.ClusterInfoTable, error) {
	cluster, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.clusterInfo(ctx, cluster), nil
}

// clusterInfo renders the status table of a cluster. Probe failures
// degrade to the unavailable row and are never returned.
func (s *service) clusterInfo(ctx context.Context, cluster *models.Cluster) *types.ClusterInfoTable {
	table := &types.ClusterInfoTable{
		ID:    clusterInfoTableID,
		Class: clusterInfoTableClass,
	}

	if cluster.URL == "" {
		return table
	}

	table.Header = clusterInfoHeader
	health, err := s.clusterHealth(ctx, cluster)
	if err != nil {
		logger.WithCluster(cluster.ClusterID, cluster.URL).Warnf("cluster info is unavailable: %s", err.Error())
		table.Rows = [][]string{unavailableClusterInfoRow}
		return table
	}

	table.Available = true
	table.Rows = [][]string{{health.ClusterName, health.Status, strconv.Itoa(health.NumberOfNodes)}}
	return table
}

func (s *service) clusterHealth(ctx context.Context, cluster *models.Cluster) (*types.ClusterHealth, error) {
	key := cache.MakeClusterHealthCacheKey(cluster.ClusterID)
	if s.cache != nil && s.healthCacheTTL > 0 {
		var health types.ClusterHealth
		if err := s.cache.Get(ctx, key, &health); err == nil {
			logger.WithCluster(cluster.ClusterID, cluster.URL).Debug("cluster health hit cache")
			return &health, nil
		}
	}

	// The probe outlives the request that started it, waiting requests
	// share its result and each one gives up on its own context.
	generation := s.healthGeneration(cluster.ClusterID)
	ch := s.probeGroup.DoChan(key+"@"+cluster.URL, func() (any, error) {
		health, err := s.prober.Health(context.Background(), cluster)
		if err != nil {
			return nil, err
		}

		s.cacheClusterHealth(cluster, generation, health)
		return health, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*types.ClusterHealth), nil
	}
}

// cacheClusterHealth caches health unless the cluster was saved after
// the probe started.
func (s *service) cacheClusterHealth(cluster *models.Cluster, generation uint64, health *types.ClusterHealth) {
	if s.cache == nil || s.healthCacheTTL <= 0 {
		return
	}

	log := logger.WithCluster(cluster.ClusterID, cluster.URL)
	if s.healthGeneration(cluster.ClusterID) != generation {
		log.Debug("cluster changed during probe, skip caching health")
		return
	}

	if err := s.cache.Set(&gocache.Item{
		Ctx:   context.Background(),
		Key:   cache.MakeClusterHealthCacheKey(cluster.ClusterID),
		Value: health,
		TTL:   s.healthCacheTTL,
	}); err != nil {
		log.Warnf("cache cluster health failed: %s", err.Error())
	}
}

func (s *service) healthGeneration(id string) uint64 {
	s.healthGenerationsMu.Lock()
	defer s.healthGenerationsMu.Unlock()

	return s.healthGenerations[id]
}
