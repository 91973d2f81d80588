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
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/store/mocks"
	"github.com/esconnector/esconnector/manager/types"
)

func newTestForm() types.ClusterForm {
	return types.ClusterForm{
		Name:   "Search Primary",
		URL:    "http://localhost:9200",
		Status: "active",
		Options: types.ClusterFormOptions{
			TimeoutSeconds: "30",
		},
	}
}

func TestStore_ValidateAndPrepare(t *testing.T) {
	tests := []struct {
		name    string
		form    func() types.ClusterForm
		current *models.Cluster
		mock    func(mr *mocks.MockRepositoryMockRecorder)
		expect  func(t *testing.T, cluster *models.Cluster, err error)
	}{
		{
			name: "create with defaults",
			form: newTestForm,
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("search_primary")).Return(false, nil).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("search_primary", cluster.ClusterID)
				assert.Equal("Search Primary", cluster.Name)
				assert.Equal(models.ClusterStatusActive, cluster.Status)
				assert.Equal(models.AuthenticationTypeDigest, cluster.Options.AuthenticationType)
				assert.Equal(float64(30), cluster.Options.TimeoutSeconds)
				assert.False(cluster.Options.UseAuthentication)
				assert.False(cluster.Options.MultipleNodesConnection)
			},
		},
		{
			name: "create with explicit options",
			form: func() types.ClusterForm {
				form := newTestForm()
				form.ClusterID = "primary"
				form.Status = "0"
				form.Options = types.ClusterFormOptions{
					MultipleNodesConnection: "1",
					UseAuthentication:       "on",
					AuthenticationType:      "basic",
					Username:                "elastic",
					Password:                "changeme",
					TimeoutSeconds:          "2.5",
				}
				return form
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("primary")).Return(false, nil).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("primary", cluster.ClusterID)
				assert.Equal(models.ClusterStatusInactive, cluster.Status)
				assert.EqualValues(models.ClusterOptions{
					MultipleNodesConnection: true,
					UseAuthentication:       true,
					AuthenticationType:      models.AuthenticationTypeBasic,
					Username:                "elastic",
					Password:                "changeme",
					TimeoutSeconds:          2.5,
				}, cluster.Options)
			},
		},
		{
			name: "every missing field is reported",
			form: func() types.ClusterForm {
				return types.ClusterForm{Status: "ACTIVE"}
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.Nil(cluster)

				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.True(errs.Has("name"))
				assert.True(errs.Has("cluster_id"))
				assert.True(errs.Has("url"))
				assert.True(errs.Has("options.timeout_seconds"))
				assert.False(errs.Has("status"))
			},
		},
		{
			name: "every invalid value is reported",
			form: func() types.ClusterForm {
				return types.ClusterForm{
					Name:      "Search",
					ClusterID: "Bad-ID",
					URL:       "localhost:9200",
					Status:    "paused",
					Default:   "maybe",
					Options: types.ClusterFormOptions{
						AuthenticationType: "KERBEROS",
						TimeoutSeconds:     "-5",
					},
				}
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.Len(errs, 6)
				assert.Contains(errs, ValidationError{Field: "cluster_id", Reason: reasonMachineName})
				assert.Contains(errs, ValidationError{Field: "url", Reason: reasonBaseURL})
				assert.Contains(errs, ValidationError{Field: "status", Reason: "must be one of ACTIVE, INACTIVE"})
				assert.Contains(errs, ValidationError{Field: "default", Reason: reasonCheckbox})
				assert.Contains(errs, ValidationError{Field: "options.authentication_type", Reason: "must be one of DIGEST, BASIC, NTLM"})
				assert.Contains(errs, ValidationError{Field: "options.timeout_seconds", Reason: reasonTimeout})
			},
		},
		{
			name: "timeout above the cap",
			form: func() types.ClusterForm {
				form := newTestForm()
				form.Options.TimeoutSeconds = "1e12"
				return form
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("search_primary")).Return(false, nil).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.Nil(cluster)
				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.Equal(ValidationErrors{{Field: "options.timeout_seconds", Reason: reasonTimeout}}, errs)
			},
		},
		{
			name: "timeout at the cap",
			form: func() types.ClusterForm {
				form := newTestForm()
				form.Options.TimeoutSeconds = "86400"
				return form
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("search_primary")).Return(false, nil).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(24*time.Hour, cluster.Options.Timeout())
			},
		},
		{
			name: "cluster id too long",
			form: func() types.ClusterForm {
				form := newTestForm()
				form.ClusterID = strings.Repeat("a", 126)
				return form
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.Equal(ValidationErrors{{Field: "cluster_id", Reason: "must be at most 125 characters"}}, errs)
			},
		},
		{
			name: "cluster id already in use",
			form: newTestForm,
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Eq("search_primary")).Return(true, nil).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				var errs ValidationErrors
				assert.True(errors.As(err, &errs))
				assert.Equal(ValidationErrors{{Field: "cluster_id", Reason: reasonExists}}, errs)
			},
		},
		{
			name: "uniqueness lookup fails",
			form: newTestForm,
			mock: func(mr *mocks.MockRepositoryMockRecorder) {
				mr.Exists(gomock.Any(), gomock.Any()).Return(false, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				var persistenceErr *PersistenceError
				assert.True(errors.As(err, &persistenceErr))
			},
		},
		{
			name: "update ignores the submitted cluster id",
			form: func() types.ClusterForm {
				form := newTestForm()
				form.ClusterID = "other"
				form.Name = "Renamed"
				return form
			},
			current: &models.Cluster{
				ClusterID: "search_primary",
				Name:      "Search Primary",
				Options: models.ClusterOptions{
					Password: "changeme",
				},
				CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			},
			mock: func(mr *mocks.MockRepositoryMockRecorder) {},
			expect: func(t *testing.T, cluster *models.Cluster, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("search_primary", cluster.ClusterID)
				assert.Equal("Renamed", cluster.Name)
				assert.Equal("changeme", cluster.Options.Password)
				assert.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), cluster.CreatedAt)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			repo := mocks.NewMockRepository(ctl)
			tc.mock(repo.EXPECT())

			cluster, err := New(repo).ValidateAndPrepare(context.Background(), tc.form(), tc.current)
			tc.expect(t, cluster, err)
		})
	}
}

func TestParseCheckbox(t *testing.T) {
	tests := []struct {
		value   string
		checked bool
		ok      bool
	}{
		{value: "", checked: false, ok: true},
		{value: "0", checked: false, ok: true},
		{value: "false", checked: false, ok: true},
		{value: "1", checked: true, ok: true},
		{value: "On", checked: true, ok: true},
		{value: "true", checked: true, ok: true},
		{value: "maybe", checked: false, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			checked, ok := ParseCheckbox(tc.value)
			assert.Equal(t, tc.checked, checked)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
