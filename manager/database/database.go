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

package database

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/esconnector/esconnector/manager/config"
	"github.com/esconnector/esconnector/manager/models"
)

type Database struct {
	// DB is set when clusters are stored in mysql or postgres.
	DB *gorm.DB

	// RDB backs the cache and, for the redis database type, the clusters.
	RDB redis.UniversalClient
}

func New(cfg *config.Config) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Type {
	case config.DatabaseTypeMysql:
		db, err = newMysql(cfg)
	case config.DatabaseTypePostgres:
		db, err = newPostgres(cfg)
	case config.DatabaseTypeRedis:
	default:
		return nil, fmt.Errorf("invalid database type %s", cfg.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	rdb, err := NewRedis(&cfg.Database.Redis)
	if err != nil {
		return nil, err
	}

	return &Database{
		DB:  db,
		RDB: rdb,
	}, nil
}

// Close releases the sql connection pool and the redis client.
func (d *Database) Close() error {
	var result *multierror.Error
	if d.DB != nil {
		sqlDB, err := d.DB.DB()
		if err != nil {
			result = multierror.Append(result, err)
		} else if err := sqlDB.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if d.RDB != nil {
		if err := d.RDB.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Cluster{},
		&models.Settings{},
	)
}
