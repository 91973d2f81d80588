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

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/esconnector/esconnector/manager/models"
)

// memoryRepository is an in-memory Repository used by tests.
type memoryRepository struct {
	mu        sync.Mutex
	clusters  map[string]models.Cluster
	defaultID string
	upserts   int
	failNext  error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{clusters: map[string]models.Cluster{}}
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*models.Cluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cluster, ok := r.clusters[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return &cluster, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]models.Cluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clusters := make([]models.Cluster, 0, len(r.clusters))
	for _, cluster := range r.clusters {
		clusters = append(clusters, cluster)
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].ClusterID < clusters[j].ClusterID
	})
	return clusters, nil
}

func (r *memoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.clusters[id]
	return ok, nil
}

func (r *memoryRepository) DefaultID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.defaultID, nil
}

func (r *memoryRepository) SetDefaultID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultID = id
	return nil
}

func (r *memoryRepository) Upsert(ctx context.Context, cluster *models.Cluster, defaultID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}

	if cluster.ClusterID == "" {
		return errors.New("empty cluster id")
	}

	now := time.Now()
	if existing, ok := r.clusters[cluster.ClusterID]; ok {
		cluster.CreatedAt = existing.CreatedAt
	} else if cluster.CreatedAt.IsZero() {
		cluster.CreatedAt = now
	}
	cluster.UpdatedAt = now

	r.clusters[cluster.ClusterID] = *cluster
	r.defaultID = defaultID
	r.upserts++
	return nil
}
