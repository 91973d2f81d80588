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
	"errors"
	"fmt"
	"strings"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/cache"
	"github.com/esconnector/esconnector/manager/metrics"
	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/store"
	"github.com/esconnector/esconnector/manager/types"
)

const (
	operationCreate = "create"
	operationUpdate = "update"
)

func (s *service) CreateCluster(ctx context.Context, form types.ClusterForm) (*types.SaveClusterResponse, error) {
	return s.saveCluster(ctx, operationCreate, form, nil)
}

func (s *service) UpdateCluster(ctx context.Context, id string, form types.ClusterForm) (*types.SaveClusterResponse, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.saveCluster(ctx, operationUpdate, form, current)
}

func (s *service) saveCluster(ctx context.Context, operation string, form types.ClusterForm, current *models.Cluster) (*types.SaveClusterResponse, error) {
	metrics.ClusterSaveCount.WithLabelValues(operation).Inc()

	cluster, err := s.store.ValidateAndPrepare(ctx, form, current)
	if err != nil {
		metrics.ClusterSaveFailureCount.WithLabelValues(operation, failureReason(err)).Inc()
		return nil, err
	}

	requestedDefault, _ := store.ParseCheckbox(string(form.Default))
	var result *store.SaveResult
	if current == nil {
		result, err = s.store.Create(ctx, cluster, requestedDefault)
	} else {
		result, err = s.store.Save(ctx, cluster, requestedDefault)
	}
	if err != nil {
		metrics.ClusterSaveFailureCount.WithLabelValues(operation, failureReason(err)).Inc()
		logger.WithCluster(cluster.ClusterID, cluster.URL).Errorf("%s cluster failed: %s", operation, err.Error())
		return nil, err
	}

	if result.DefaultClusterID != result.PreviousDefaultClusterID {
		metrics.DefaultClusterChangeCount.Inc()
	}

	s.forgetClusterHealth(ctx, cluster.ClusterID)

	resp := &types.SaveClusterResponse{
		Cluster: makeClusterResponse(result.Cluster, result.DefaultClusterID),
		Message: fmt.Sprintf("Cluster %s has been updated.", cluster.Name),
	}

	if result.KeptDefault {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"There must be a default connection. %s is still the default connection. "+
				"Please change the default setting on the cluster you wish to set as default.", cluster.Name))
	}

	logger.WithCluster(cluster.ClusterID, cluster.URL).Infof("%s cluster, default cluster is %s", operation, result.DefaultClusterID)
	return resp, nil
}

func (s *service) GetCluster(ctx context.Context, id string) (*types.ClusterResponse, error) {
	cluster, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	defaultID, err := s.store.DefaultID(ctx)
	if err != nil {
		return nil, err
	}

	resp := makeClusterResponse(cluster, defaultID)
	return &resp, nil
}

func (s *service) GetClusters(ctx context.Context, q types.GetClustersQuery) ([]types.ClusterResponse, int64, error) {
	clusters, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	defaultID, err := s.store.DefaultID(ctx)
	if err != nil {
		return nil, 0, err
	}

	var matched []models.Cluster
	for _, cluster := range clusters {
		if q.Name != "" && !strings.Contains(strings.ToLower(cluster.Name), strings.ToLower(q.Name)) {
			continue
		}

		if q.Status != "" && cluster.Status != q.Status {
			continue
		}

		matched = append(matched, cluster)
	}

	resp := []types.ClusterResponse{}
	for _, cluster := range paginate(matched, q.Page, q.PerPage) {
		cluster := cluster
		resp = append(resp, makeClusterResponse(&cluster, defaultID))
	}

	return resp, int64(len(matched)), nil
}

func (s *service) SetDefaultCluster(ctx context.Context, id string) (*types.ClusterResponse, error) {
	previousDefaultID, err := s.store.DefaultID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetDefault(ctx, id); err != nil {
		return nil, err
	}

	if previousDefaultID != id {
		metrics.DefaultClusterChangeCount.Inc()
		logger.WithClusterID(id).Infof("default cluster changed from %q", previousDefaultID)
	}

	cluster, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := makeClusterResponse(cluster, id)
	return &resp, nil
}

func (s *service) GetDefaultCluster(ctx context.Context) (*types.ClusterResponse, error) {
	defaultID, err := s.store.DefaultID(ctx)
	if err != nil {
		return nil, err
	}

	if defaultID == "" {
		return nil, store.ErrNoDefaultCluster
	}

	cluster, err := s.store.Get(ctx, defaultID)
	if err != nil {
		var notFoundErr *store.NotFoundError
		if errors.As(err, &notFoundErr) {
			return nil, store.ErrNoDefaultCluster
		}

		return nil, err
	}

	resp := makeClusterResponse(cluster, defaultID)
	return &resp, nil
}

func (s *service) forgetClusterHealth(ctx context.Context, id string) {
	s.healthGenerationsMu.Lock()
	s.healthGenerations[id]++
	s.healthGenerationsMu.Unlock()

	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.MakeClusterHealthCacheKey(id)); err != nil {
		logger.WithClusterID(id).Warnf("delete cluster health cache failed: %s", err.Error())
	}
}

func makeClusterResponse(cluster *models.Cluster, defaultID string) types.ClusterResponse {
	return types.ClusterResponse{
		ClusterID: cluster.ClusterID,
		Name:      cluster.Name,
		URL:       cluster.URL,
		Status:    cluster.Status,
		Options: types.ClusterOptionsResponse{
			MultipleNodesConnection: cluster.Options.MultipleNodesConnection,
			UseAuthentication:       cluster.Options.UseAuthentication,
			AuthenticationType:      cluster.Options.AuthenticationType,
			Username:                cluster.Options.Username,
			HasPassword:             cluster.Options.Password != "",
			TimeoutSeconds:          cluster.Options.TimeoutSeconds,
		},
		IsDefault: cluster.ClusterID == defaultID,
		CreatedAt: cluster.CreatedAt,
		UpdatedAt: cluster.UpdatedAt,
	}
}

func paginate(clusters []models.Cluster, page, perPage int) []models.Cluster {
	if page <= 0 || perPage <= 0 {
		return clusters
	}

	start := (page - 1) * perPage
	if start >= len(clusters) {
		return nil
	}

	end := start + perPage
	if end > len(clusters) {
		end = len(clusters)
	}

	return clusters[start:end]
}

func failureReason(err error) string {
	var (
		validationErrs store.ValidationErrors
		notFoundErr    *store.NotFoundError
		persistenceErr *store.PersistenceError
	)
	switch {
	case errors.As(err, &validationErrs):
		return "validation"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &persistenceErr):
		return "persistence"
	default:
		return "unknown"
	}
}
