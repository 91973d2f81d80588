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

package orm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/store"
)

var clusterUpdateColumns = []string{"name", "url", "status", "options", "updated_at"}

type clusterStore struct {
	db *gorm.DB
}

// New returns a repository persisting clusters and the default pointer
// through gorm.
func New(db *gorm.DB) store.Repository {
	return &clusterStore{db: db}
}

func (s *clusterStore) Get(ctx context.Context, id string) (*models.Cluster, error) {
	cluster := models.Cluster{}
	if err := s.db.WithContext(ctx).First(&cluster, models.Cluster{ClusterID: id}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrRecordNotFound
		}

		return nil, err
	}

	return &cluster, nil
}

func (s *clusterStore) List(ctx context.Context) ([]models.Cluster, error) {
	var clusters []models.Cluster
	if err := s.db.WithContext(ctx).Order("cluster_id").Find(&clusters).Error; err != nil {
		return nil, err
	}

	return clusters, nil
}

func (s *clusterStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Cluster{}).Where("cluster_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *clusterStore) DefaultID(ctx context.Context) (string, error) {
	settings := models.Settings{}
	if err := s.db.WithContext(ctx).First(&settings, models.Settings{Key: models.DefaultClusterIDKey}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", err
	}

	return settings.Value, nil
}

func (s *clusterStore) SetDefaultID(ctx context.Context, id string) error {
	return setDefaultID(s.db.WithContext(ctx), id)
}

// Upsert writes the cluster and the default pointer in one transaction.
func (s *clusterStore) Upsert(ctx context.Context, cluster *models.Cluster, defaultID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cluster_id"}},
			DoUpdates: clause.AssignmentColumns(clusterUpdateColumns),
		}).Create(cluster).Error; err != nil {
			return err
		}

		return setDefaultID(tx, defaultID)
	})
}

func setDefaultID(tx *gorm.DB, id string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Settings{
		Key:   models.DefaultClusterIDKey,
		Value: id,
	}).Error
}
