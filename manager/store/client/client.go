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

package client

import (
	"fmt"

	"github.com/esconnector/esconnector/manager/config"
	"github.com/esconnector/esconnector/manager/database"
	"github.com/esconnector/esconnector/manager/store"
	"github.com/esconnector/esconnector/manager/store/orm"
	"github.com/esconnector/esconnector/manager/store/rdb"
)

type repositorySetup func(db *database.Database) (store.Repository, error)

var repositoryPlugins = map[string]repositorySetup{
	config.DatabaseTypeMysql:    newOrmRepository,
	config.DatabaseTypePostgres: newOrmRepository,
	config.DatabaseTypeRedis:    newRedisRepository,
}

// NewRepository returns the cluster repository of the configured
// database type.
func NewRepository(cfg *config.Config, db *database.Database) (store.Repository, error) {
	p, ok := repositoryPlugins[cfg.Database.Type]
	if !ok {
		return nil, fmt.Errorf("not support database type %s", cfg.Database.Type)
	}

	return p(db)
}

func newOrmRepository(db *database.Database) (store.Repository, error) {
	if db.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	return orm.New(db.DB), nil
}

func newRedisRepository(db *database.Database) (store.Repository, error) {
	if db.RDB == nil {
		return nil, fmt.Errorf("redis is not initialized")
	}

	return rdb.New(db.RDB), nil
}
