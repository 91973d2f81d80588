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
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/esconnector/esconnector/manager/models"
)

// Store owns the cluster configurations and the default cluster pointer.
type Store struct {
	repo     Repository
	validate *validator.Validate

	// mu serializes read-modify-write of the default pointer.
	mu sync.RWMutex
}

// SaveResult describes the outcome of Save.
type SaveResult struct {
	Cluster *models.Cluster

	// DefaultClusterID is the default cluster after the save.
	DefaultClusterID string

	// PreviousDefaultClusterID is the default cluster before the save,
	// empty when there was none.
	PreviousDefaultClusterID string

	// KeptDefault is set when the cluster was made or kept default
	// although the submission did not ask for it, because no other
	// cluster could take the role.
	KeptDefault bool
}

// New returns a cluster store backed by repo.
func New(repo Repository) *Store {
	return &Store{
		repo:     repo,
		validate: newValidator(),
	}
}

// ResolveDefaultOnSave decides the default cluster after submitted is
// saved. A cluster becomes default when none exists yet or when the
// submission asks for it, otherwise the current default is kept.
func ResolveDefaultOnSave(currentDefaultID string, submitted *models.Cluster, requestedDefault bool) string {
	if currentDefaultID == "" || requestedDefault {
		return submitted.ClusterID
	}

	return currentDefaultID
}

// Create stores a new cluster and the resulting default pointer in one
// repository write. The id is checked again under the store lock, a
// cluster stored since validation is reported as a ValidationErrors.
func (s *Store) Create(ctx context.Context, cluster *models.Cluster, requestedDefault bool) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx, cluster.ClusterID)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup cluster", Err: err}
	}

	if exists {
		return nil, ValidationErrors{{Field: "cluster_id", Reason: reasonExists}}
	}

	return s.save(ctx, cluster, requestedDefault)
}

// Save upserts the cluster and the resulting default pointer in one
// repository write.
func (s *Store) Save(ctx context.Context, cluster *models.Cluster, requestedDefault bool) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, cluster, requestedDefault)
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context, cluster *models.Cluster, requestedDefault bool) (*SaveResult, error) {
	currentDefaultID, err := s.currentDefaultID(ctx, cluster.ClusterID)
	if err != nil {
		return nil, err
	}

	defaultID := ResolveDefaultOnSave(currentDefaultID, cluster, requestedDefault)
	if err := s.repo.Upsert(ctx, cluster, defaultID); err != nil {
		return nil, &PersistenceError{Op: "save cluster", Err: err}
	}

	return &SaveResult{
		Cluster:                  cluster,
		DefaultClusterID:         defaultID,
		PreviousDefaultClusterID: currentDefaultID,
		KeptDefault:              !requestedDefault && defaultID == cluster.ClusterID,
	}, nil
}

// SetDefault makes the cluster with id the default one.
func (s *Store) SetDefault(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return &PersistenceError{Op: "lookup cluster", Err: err}
	}

	if !exists {
		return &NotFoundError{ClusterID: id}
	}

	if err := s.repo.SetDefaultID(ctx, id); err != nil {
		return &PersistenceError{Op: "set default cluster", Err: err}
	}

	return nil
}

// DefaultID returns the default cluster id, empty when no cluster exists.
func (s *Store) DefaultID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := s.repo.DefaultID(ctx)
	if err != nil {
		return "", &PersistenceError{Op: "get default cluster", Err: err}
	}

	return id, nil
}

// Get returns the cluster with id.
func (s *Store) Get(ctx context.Context, id string) (*models.Cluster, error) {
	cluster, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, &NotFoundError{ClusterID: id}
		}

		return nil, &PersistenceError{Op: "get cluster", Err: err}
	}

	return cluster, nil
}

// List returns all clusters ordered by id.
func (s *Store) List(ctx context.Context) ([]models.Cluster, error) {
	clusters, err := s.repo.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list clusters", Err: err}
	}

	return clusters, nil
}

// currentDefaultID reads the default pointer, treating a pointer to a
// cluster that no longer exists as unset.
func (s *Store) currentDefaultID(ctx context.Context, savingID string) (string, error) {
	id, err := s.repo.DefaultID(ctx)
	if err != nil {
		return "", &PersistenceError{Op: "get default cluster", Err: err}
	}

	if id == "" || id == savingID {
		return id, nil
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return "", &PersistenceError{Op: "lookup cluster", Err: err}
	}

	if !exists {
		return "", nil
	}

	return id, nil
}
