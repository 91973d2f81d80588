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

package probe

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-http-utils/headers"
	"github.com/icholy/digest"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/esconnector/esconnector/manager/models"
)

func TestProberTestSuite(t *testing.T) {
	suite.Run(t, new(ProberTestSuite))
}

type ProberTestSuite struct {
	suite.Suite
	client *http.Client
	prober Prober
}

var (
	normalURL       = "http://normal.com:9200"
	basicURL        = "http://basic.com:9200"
	digestURL       = "http://digest.com:9200"
	unavailableURL  = "http://unavailable.com:9200"
	malformedURL    = "http://malformed.com:9200"
	incompleteURL   = "http://incomplete.com:9200"
	unreachableURL  = "http://unreachable.com:9200"
	testUsername    = "elastic"
	testPassword    = "changeme"
	testRealm       = "elasticsearch"
	testNonce       = "dcd98b7102dd2f0e8b11d0f600bfb0c093"
	testOpaque      = "5ccc069c403ebaf9f0171e9517f40e41"
	healthyResponse = `{"cluster_name":"search","status":"green","timed_out":false,"number_of_nodes":3,"number_of_data_nodes":2,"active_shards":10}`
)

func (suite *ProberTestSuite) SetupSuite() {
	suite.client = &http.Client{}
	suite.prober = New(WithHTTPClient(suite.client))
	httpmock.ActivateNonDefault(suite.client)
}

func (suite *ProberTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *ProberTestSuite) SetupTest() {
	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodGet, normalURL+HealthPath, func(request *http.Request) (*http.Response, error) {
		if request.Header.Get(OpaqueIDHeader) == "" {
			return httpmock.NewStringResponse(http.StatusBadRequest, "{}"), nil
		}

		return httpmock.NewStringResponse(http.StatusOK, healthyResponse), nil
	})
	httpmock.RegisterResponder(http.MethodGet, unavailableURL+HealthPath, httpmock.NewStringResponder(http.StatusServiceUnavailable, "{}"))
	httpmock.RegisterResponder(http.MethodGet, malformedURL+HealthPath, httpmock.NewStringResponder(http.StatusOK, "<html>"))
	httpmock.RegisterResponder(http.MethodGet, incompleteURL+HealthPath, httpmock.NewStringResponder(http.StatusOK, `{"number_of_nodes":3}`))
	httpmock.RegisterResponder(http.MethodGet, unreachableURL+HealthPath, httpmock.NewErrorResponder(errors.New("connection refused")))

	httpmock.RegisterResponder(http.MethodGet, basicURL+HealthPath, func(request *http.Request) (*http.Response, error) {
		username, password, ok := request.BasicAuth()
		if !ok || username != testUsername || password != testPassword {
			return httpmock.NewStringResponse(http.StatusUnauthorized, "{}"), nil
		}

		return httpmock.NewStringResponse(http.StatusOK, healthyResponse), nil
	})

	httpmock.RegisterResponder(http.MethodGet, digestURL+HealthPath, func(request *http.Request) (*http.Response, error) {
		authorization := request.Header.Get(headers.Authorization)
		if authorization == "" {
			resp := httpmock.NewStringResponse(http.StatusUnauthorized, "{}")
			resp.Header.Set(headers.WWWAuthenticate, fmt.Sprintf(`Digest realm="%s", qop="auth,auth-int", nonce="%s", opaque="%s"`, testRealm, testNonce, testOpaque))
			return resp, nil
		}

		credentials, err := digest.ParseCredentials(authorization)
		if err != nil {
			return httpmock.NewStringResponse(http.StatusBadRequest, "{}"), nil
		}

		ha1 := md5Hex(fmt.Sprintf("%s:%s:%s", testUsername, testRealm, testPassword))
		ha2 := md5Hex(fmt.Sprintf("%s:%s", request.Method, credentials.URI))
		expected := md5Hex(fmt.Sprintf("%s:%s:%08x:%s:%s:%s", ha1, testNonce, credentials.Nc, credentials.Cnonce, credentials.QOP, ha2))
		if credentials.Response != expected || credentials.Opaque != testOpaque || credentials.URI != HealthPath {
			return httpmock.NewStringResponse(http.StatusUnauthorized, "{}"), nil
		}

		return httpmock.NewStringResponse(http.StatusOK, healthyResponse), nil
	})
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newTestCluster(url string) *models.Cluster {
	return &models.Cluster{
		ClusterID: "search",
		Name:      "Search",
		URL:       url,
		Status:    models.ClusterStatusActive,
		Options: models.ClusterOptions{
			AuthenticationType: models.AuthenticationTypeDigest,
			TimeoutSeconds:     1,
		},
	}
}

func newAuthenticatedTestCluster(url, authenticationType string) *models.Cluster {
	cluster := newTestCluster(url)
	cluster.Options.UseAuthentication = true
	cluster.Options.AuthenticationType = authenticationType
	cluster.Options.Username = testUsername
	cluster.Options.Password = testPassword
	return cluster
}

func (suite *ProberTestSuite) TestHealth() {
	health, err := suite.prober.Health(context.Background(), newTestCluster(normalURL))
	suite.Nil(err)
	suite.Equal("search", health.ClusterName)
	suite.Equal("green", health.Status)
	suite.Equal(3, health.NumberOfNodes)
	suite.Equal(2, health.NumberOfDataNodes)
	suite.Equal(10, health.ActiveShards)

	health, err = suite.prober.Health(context.Background(), newTestCluster(normalURL+"/"))
	suite.Nil(err)
	suite.Equal("search", health.ClusterName)
}

func (suite *ProberTestSuite) TestHealthWithBasicAuthentication() {
	health, err := suite.prober.Health(context.Background(), newAuthenticatedTestCluster(basicURL, models.AuthenticationTypeBasic))
	suite.Nil(err)
	suite.Equal("green", health.Status)

	cluster := newAuthenticatedTestCluster(basicURL, models.AuthenticationTypeBasic)
	cluster.Options.Password = "wrong"
	_, err = suite.prober.Health(context.Background(), cluster)
	suite.ErrorContains(err, "unexpected status code 401")
}

func (suite *ProberTestSuite) TestHealthWithDigestAuthentication() {
	health, err := suite.prober.Health(context.Background(), newAuthenticatedTestCluster(digestURL, models.AuthenticationTypeDigest))
	suite.Nil(err)
	suite.Equal("green", health.Status)
	suite.Equal(2, httpmock.GetCallCountInfo()["GET "+digestURL+HealthPath])

	cluster := newAuthenticatedTestCluster(digestURL, models.AuthenticationTypeDigest)
	cluster.Options.Password = "wrong"
	_, err = suite.prober.Health(context.Background(), cluster)
	suite.ErrorContains(err, "unexpected status code 401")
}

func (suite *ProberTestSuite) TestHealthWithNTLMAuthentication() {
	_, err := suite.prober.Health(context.Background(), newAuthenticatedTestCluster(normalURL, models.AuthenticationTypeNTLM))

	var probeErr *ProbeError
	suite.True(errors.As(err, &probeErr))
	suite.ErrorIs(err, ErrUnsupportedAuthentication)
	suite.Equal(0, httpmock.GetTotalCallCount())
}

func (suite *ProberTestSuite) TestHealthFailures() {
	tests := []struct {
		name   string
		url    string
		expect string
	}{
		{
			name:   "non 2xx status",
			url:    unavailableURL,
			expect: "unexpected status code 503",
		},
		{
			name:   "malformed body",
			url:    malformedURL,
			expect: "decode health response",
		},
		{
			name:   "missing fields",
			url:    incompleteURL,
			expect: "misses cluster_name or status",
		},
		{
			name:   "connection refused",
			url:    unreachableURL,
			expect: "connection refused",
		},
		{
			name:   "missing url",
			url:    "",
			expect: ErrMissingURL.Error(),
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			health, err := suite.prober.Health(context.Background(), newTestCluster(tc.url))
			suite.Nil(health)

			var probeErr *ProbeError
			suite.True(errors.As(err, &probeErr))
			suite.ErrorContains(err, tc.expect)
		})
	}
}
