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
	"fmt"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/store/mocks"
)

func newTestCluster(id string) *models.Cluster {
	return &models.Cluster{
		ClusterID: id,
		Name:      id,
		URL:       "http://localhost:9200",
		Status:    models.ClusterStatusActive,
		Options: models.ClusterOptions{
			AuthenticationType: models.AuthenticationTypeDigest,
			TimeoutSeconds:     models.DefaultTimeoutSeconds,
		},
	}
}

func TestResolveDefaultOnSave(t *testing.T) {
	tests := []struct {
		name             string
		currentDefaultID string
		submittedID      string
		requestedDefault bool
		expect           string
	}{
		{
			name:             "bootstrap without request",
			currentDefaultID: "",
			submittedID:      "a",
			requestedDefault: false,
			expect:           "a",
		},
		{
			name:             "bootstrap with request",
			currentDefaultID: "",
			submittedID:      "a",
			requestedDefault: true,
			expect:           "a",
		},
		{
			name:             "explicit override",
			currentDefaultID: "a",
			submittedID:      "b",
			requestedDefault: true,
			expect:           "b",
		},
		{
			name:             "keep existing default",
			currentDefaultID: "a",
			submittedID:      "b",
			requestedDefault: false,
			expect:           "a",
		},
		{
			name:             "sole default cannot be unset",
			currentDefaultID: "a",
			submittedID:      "a",
			requestedDefault: false,
			expect:           "a",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ResolveDefaultOnSave(tc.currentDefaultID, newTestCluster(tc.submittedID), tc.requestedDefault))
		})
	}
}

func TestStore_Save(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, s *Store, repo *memoryRepository)
	}{
		{
			name: "first cluster becomes default regardless of the flag",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				result, err := s.Save(context.Background(), newTestCluster("a"), false)
				assert.NoError(err)
				assert.Equal("a", result.DefaultClusterID)
				assert.True(result.KeptDefault)
				assert.Equal("a", repo.defaultID)
			},
		},
		{
			name: "explicit default overrides the previous one",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				_, err := s.Save(context.Background(), newTestCluster("a"), true)
				assert.NoError(err)

				result, err := s.Save(context.Background(), newTestCluster("b"), true)
				assert.NoError(err)
				assert.Equal("b", result.DefaultClusterID)
				assert.False(result.KeptDefault)

				id, err := s.DefaultID(context.Background())
				assert.NoError(err)
				assert.Equal("b", id)
			},
		},
		{
			name: "sole default stays default when unset",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				_, err := s.Save(context.Background(), newTestCluster("a"), true)
				assert.NoError(err)

				result, err := s.Save(context.Background(), newTestCluster("a"), false)
				assert.NoError(err)
				assert.Equal("a", result.DefaultClusterID)
				assert.True(result.KeptDefault)
				assert.Equal("a", repo.defaultID)
			},
		},
		{
			name: "non default save keeps the existing default",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				_, err := s.Save(context.Background(), newTestCluster("a"), true)
				assert.NoError(err)

				result, err := s.Save(context.Background(), newTestCluster("b"), false)
				assert.NoError(err)
				assert.Equal("a", result.DefaultClusterID)
				assert.False(result.KeptDefault)
			},
		},
		{
			name: "dangling default pointer is treated as unset",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				repo.defaultID = "deleted"

				result, err := s.Save(context.Background(), newTestCluster("b"), false)
				assert.NoError(err)
				assert.Equal("b", result.DefaultClusterID)
			},
		},
		{
			name: "failed save leaves records and default untouched",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				_, err := s.Save(context.Background(), newTestCluster("a"), true)
				assert.NoError(err)

				repo.failNext = errors.New("connection reset")
				_, err = s.Save(context.Background(), newTestCluster("b"), true)

				var persistenceErr *PersistenceError
				assert.True(errors.As(err, &persistenceErr))
				assert.Equal("a", repo.defaultID)

				_, err = s.Get(context.Background(), "b")
				var notFoundErr *NotFoundError
				assert.True(errors.As(err, &notFoundErr))
			},
		},
		{
			name: "update keeps creation time",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				first, err := s.Save(context.Background(), newTestCluster("a"), true)
				assert.NoError(err)
				createdAt := first.Cluster.CreatedAt

				updated := newTestCluster("a")
				updated.Name = "renamed"
				_, err = s.Save(context.Background(), updated, true)
				assert.NoError(err)

				cluster, err := s.Get(context.Background(), "a")
				assert.NoError(err)
				assert.Equal("renamed", cluster.Name)
				assert.Equal(createdAt, cluster.CreatedAt)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryRepository()
			tc.run(t, New(repo), repo)
		})
	}
}

func TestStore_SaveConcurrently(t *testing.T) {
	repo := newMemoryRepository()
	s := New(repo)

	const n = 64
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		bootstraps int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cluster := newTestCluster(fmt.Sprintf("cluster_%d", i))
			result, err := s.Save(context.Background(), cluster, false)
			if !assert.NoError(t, err) {
				return
			}
			if result.DefaultClusterID == cluster.ClusterID {
				mu.Lock()
				bootstraps++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert := assert.New(t)
	assert.Equal(1, bootstraps)
	assert.Equal(n, repo.upserts)

	id, err := s.DefaultID(context.Background())
	assert.NoError(err)
	exists, err := repo.Exists(context.Background(), id)
	assert.NoError(err)
	assert.True(exists)
}

func TestStore_Create(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, s *Store, repo *memoryRepository)
	}{
		{
			name: "create new cluster",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				result, err := s.Create(context.Background(), newTestCluster("a"), false)
				assert.NoError(err)
				assert.Equal("a", result.DefaultClusterID)
				assert.Equal(1, repo.upserts)
			},
		},
		{
			name: "two creates of one id after validating both",
			run: func(t *testing.T, s *Store, repo *memoryRepository) {
				assert := assert.New(t)
				firstForm := newTestForm()
				firstForm.ClusterID = "prod"
				firstForm.Name = "first"
				secondForm := newTestForm()
				secondForm.ClusterID = "prod"
				secondForm.Name = "second"

				first, err := s.ValidateAndPrepare(context.Background(), firstForm, nil)
				assert.NoError(err)
				second, err := s.ValidateAndPrepare(context.Background(), secondForm, nil)
				assert.NoError(err)

				_, err = s.Create(context.Background(), first, false)
				assert.NoError(err)

				_, err = s.Create(context.Background(), second, false)
				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.Equal(ValidationErrors{{Field: "cluster_id", Reason: reasonExists}}, errs)

				cluster, err := s.Get(context.Background(), "prod")
				assert.NoError(err)
				assert.Equal("first", cluster.Name)
				assert.Equal(1, repo.upserts)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryRepository()
			tc.run(t, New(repo), repo)
		})
	}
}

func TestStore_CreateConcurrently(t *testing.T) {
	repo := newMemoryRepository()
	s := New(repo)

	const n = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cluster := newTestCluster("prod")
			cluster.Name = fmt.Sprintf("cluster %d", i)
			if _, err := s.Create(context.Background(), cluster, false); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert := assert.New(t)
	assert.Equal(1, created)
	assert.Equal(1, repo.upserts)
}

func TestStore_CreateLookupFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	repo := mocks.NewMockRepository(ctl)
	repo.EXPECT().Exists(gomock.Any(), gomock.Eq("a")).Return(false, errors.New("foo")).Times(1)

	_, err := New(repo).Create(context.Background(), newTestCluster("a"), false)
	var persistenceErr *PersistenceError
	assert.True(t, errors.As(err, &persistenceErr))
}

func TestStore_SetDefault(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(mr *mocks.MockRepositoryMockRecorder)
		expect func(t *testing.T, err error)
	}{
		{
			name: "set default",
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				gomock.InOrder(
					mr.Exists(gomock.Any(), gomock.Eq("a")).Return(true, nil).Times(1),
					mr.SetDefaultID(gomock.Any(), gomock.Eq("a")).Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "cluster not found",
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("a")).Return(false, nil).Times(1)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var notFoundErr *NotFoundError
				assert.True(errors.As(err, &notFoundErr))
				assert.Equal("a", notFoundErr.ClusterID)
			},
		},
		{
			name: "lookup fails",
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("a")).Return(false, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var persistenceErr *PersistenceError
				assert.True(errors.As(err, &persistenceErr))
				assert.EqualError(persistenceErr.Err, "foo")
			},
		},
		{
			name: "write fails",
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("a")).Return(true, nil).Times(1)
				mr.SetDefaultID(gomock.Any(), gomock.Eq("a")).Return(errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var persistenceErr *PersistenceError
				assert.True(errors.As(err, &persistenceErr))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			repo := mocks.NewMockRepository(ctl)
			tc.mock(repo.EXPECT())

			tc.expect(t, New(repo).SetDefault(context.Background(), "a"))
		})
	}
}

func TestStore_Get(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	repo := mocks.NewMockRepository(ctl)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq("missing")).Return(nil, ErrRecordNotFound).Times(1)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq("broken")).Return(nil, errors.New("foo")).Times(1)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq("a")).Return(newTestCluster("a"), nil).Times(1)

	s := New(repo)
	assert := assert.New(t)

	_, err := s.Get(context.Background(), "missing")
	var notFoundErr *NotFoundError
	assert.True(errors.As(err, &notFoundErr))

	_, err = s.Get(context.Background(), "broken")
	var persistenceErr *PersistenceError
	assert.True(errors.As(err, &persistenceErr))

	cluster, err := s.Get(context.Background(), "a")
	assert.NoError(err)
	assert.Equal("a", cluster.ClusterID)
}
