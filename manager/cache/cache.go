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

package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"github.com/esconnector/esconnector/manager/config"
)

const (
	// ClusterHealthNamespace prefixes cached cluster health results.
	ClusterHealthNamespace = "cluster-health"
)

// Cache is cache client.
type Cache struct {
	*cache.Cache
	TTL time.Duration
}

// New cache instance backed by rdb and a local TinyLFU cache.
func New(cfg *config.Config, rdb redis.UniversalClient) *Cache {
	var localCache cache.LocalCache
	if cfg.Cache.Local.Size > 0 {
		localCache = cache.NewTinyLFU(cfg.Cache.Local.Size, cfg.Cache.Local.TTL)
	}

	return &Cache{
		Cache: cache.New(&cache.Options{
			Redis:      rdb,
			LocalCache: localCache,
		}),
		TTL: cfg.Cache.Redis.TTL,
	}
}

// Make cache key.
func MakeCacheKey(namespace string, id string) string {
	return fmt.Sprintf("manager:%s:%s", namespace, id)
}

// Make cache key for the health of a cluster.
func MakeClusterHealthCacheKey(clusterID string) string {
	return MakeCacheKey(ClusterHealthNamespace, clusterID)
}
