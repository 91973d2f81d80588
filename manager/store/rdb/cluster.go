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

package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/store"
)

const (
	// ClustersKey is the hash holding every cluster keyed by id.
	ClustersKey = "manager:clusters"

	// DefaultClusterIDKey holds the id of the default cluster.
	DefaultClusterIDKey = "manager:settings:" + models.DefaultClusterIDKey
)

type clusterStore struct {
	rdb redis.UniversalClient
}

// New returns a repository persisting clusters and the default pointer
// in redis.
func New(rdb redis.UniversalClient) store.Repository {
	return &clusterStore{rdb: rdb}
}

func (s *clusterStore) Get(ctx context.Context, id string) (*models.Cluster, error) {
	data, err := s.rdb.HGet(ctx, ClustersKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrRecordNotFound
		}

		return nil, err
	}

	cluster := models.Cluster{}
	if err := json.Unmarshal([]byte(data), &cluster); err != nil {
		return nil, err
	}

	return &cluster, nil
}

func (s *clusterStore) List(ctx context.Context) ([]models.Cluster, error) {
	values, err := s.rdb.HGetAll(ctx, ClustersKey).Result()
	if err != nil {
		return nil, err
	}

	clusters := make([]models.Cluster, 0, len(values))
	for _, data := range values {
		cluster := models.Cluster{}
		if err := json.Unmarshal([]byte(data), &cluster); err != nil {
			return nil, err
		}

		clusters = append(clusters, cluster)
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].ClusterID < clusters[j].ClusterID
	})
	return clusters, nil
}

func (s *clusterStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.rdb.HExists(ctx, ClustersKey, id).Result()
}

func (s *clusterStore) DefaultID(ctx context.Context) (string, error) {
	id, err := s.rdb.Get(ctx, DefaultClusterIDKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return "", err
	}

	return id, nil
}

func (s *clusterStore) SetDefaultID(ctx context.Context, id string) error {
	return s.rdb.Set(ctx, DefaultClusterIDKey, id, 0).Err()
}

// Upsert writes the cluster and the default pointer in one MULTI/EXEC.
func (s *clusterStore) Upsert(ctx context.Context, cluster *models.Cluster, defaultID string) error {
	now := time.Now()
	if cluster.CreatedAt.IsZero() {
		cluster.CreatedAt = now
	}
	cluster.UpdatedAt = now

	data, err := json.Marshal(cluster)
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, ClustersKey, cluster.ClusterID, data)
		pipe.Set(ctx, DefaultClusterIDKey, defaultID, 0)
		return nil
	})
	return err
}
