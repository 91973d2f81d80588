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

//go:generate mockgen -destination mocks/repository_mock.go -source repository.go -package mocks

package store

import (
	"context"

	"github.com/esconnector/esconnector/manager/models"
)

// Repository persists clusters and the default cluster pointer.
type Repository interface {
	// Get returns the cluster, or ErrRecordNotFound.
	Get(ctx context.Context, id string) (*models.Cluster, error)

	// List returns all clusters ordered by id.
	List(ctx context.Context) ([]models.Cluster, error)

	// Exists reports whether a cluster with id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// DefaultID returns the default cluster id, empty when unset.
	DefaultID(ctx context.Context) (string, error)

	// SetDefaultID stores the default cluster id.
	SetDefaultID(ctx context.Context, id string) error

	// Upsert inserts or overwrites the cluster keyed by its id and stores
	// defaultID as the default pointer, both or neither.
	Upsert(ctx context.Context, cluster *models.Cluster, defaultID string) error
}
