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

//go:generate mockgen -destination mocks/probe_mock.go -source probe.go -package mocks

package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/google/uuid"
	"github.com/icholy/digest"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/metrics"
	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/types"
)

const (
	// HealthPath is the cluster health api path.
	HealthPath = "/_cluster/health"

	// DefaultTimeout is used when a cluster carries no timeout option.
	DefaultTimeout = models.DefaultTimeoutSeconds * time.Second

	// OpaqueIDHeader tags the probe request in the cluster task and
	// slow logs.
	OpaqueIDHeader = "X-Opaque-Id"

	// maxBodySize limits the health response read.
	maxBodySize = 1 << 20
)

var (
	// ErrUnsupportedAuthentication is returned for authentication types
	// the prober cannot speak.
	ErrUnsupportedAuthentication = errors.New("unsupported authentication type")

	// ErrMissingURL is returned for clusters without a url.
	ErrMissingURL = errors.New("cluster has no url")
)

// ProbeError is returned when the health of a cluster cannot be read.
type ProbeError struct {
	URL string
	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober reads the health of a search cluster.
type Prober interface {
	// Health queries the cluster health api within the cluster timeout.
	Health(context.Context, *models.Cluster) (*types.ClusterHealth, error)
}

type prober struct {
	client         *http.Client
	defaultTimeout time.Duration
}

// Option is a functional option for configuring the prober.
type Option func(p *prober)

// WithHTTPClient sets the http client used for probes.
func WithHTTPClient(client *http.Client) Option {
	return func(p *prober) {
		p.client = client
	}
}

// WithDefaultTimeout sets the timeout of clusters without a timeout option.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(p *prober) {
		p.defaultTimeout = timeout
	}
}

// New returns a health prober.
func New(options ...Option) Prober {
	p := &prober{
		client:         &http.Client{},
		defaultTimeout: DefaultTimeout,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

func (p *prober) Health(ctx context.Context, cluster *models.Cluster) (*types.ClusterHealth, error) {
	if cluster.URL == "" {
		return nil, &ProbeError{Err: ErrMissingURL}
	}

	endpoint := strings.TrimRight(cluster.URL, "/") + HealthPath
	opaqueID := uuid.NewString()
	log := logger.WithProbe(cluster.ClusterID, cluster.URL, opaqueID)

	timeout := p.defaultTimeout
	if cluster.Options.TimeoutSeconds > 0 {
		timeout = cluster.Options.Timeout()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	metrics.ClusterHealthProbeCount.WithLabelValues(cluster.ClusterID).Inc()
	start := time.Now()
	health, err := p.health(ctx, endpoint, opaqueID, cluster.Options)
	metrics.ClusterHealthProbeDuration.WithLabelValues(cluster.ClusterID).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ClusterHealthProbeFailureCount.WithLabelValues(cluster.ClusterID).Inc()
		log.Warnf("probe cluster health failed: %s", err.Error())
		return nil, &ProbeError{URL: endpoint, Err: err}
	}

	log.Debugf("cluster health is %s", health.Status)
	return health, nil
}

func (p *prober) health(ctx context.Context, endpoint, opaqueID string, options models.ClusterOptions) (*types.ClusterHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set(headers.Accept, "application/json")
	req.Header.Set(OpaqueIDHeader, opaqueID)

	client := p.client
	if options.UseAuthentication {
		switch strings.ToUpper(options.AuthenticationType) {
		case models.AuthenticationTypeBasic:
			req.SetBasicAuth(options.Username, options.Password)
		case models.AuthenticationTypeDigest, "":
			client = p.digestClient(options.Username, options.Password)
		default:
			return nil, fmt.Errorf("%w %s", ErrUnsupportedAuthentication, options.AuthenticationType)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	health := &types.ClusterHealth{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(health); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}

	if health.ClusterName == "" || health.Status == "" {
		return nil, errors.New("health response misses cluster_name or status")
	}

	return health, nil
}

// digestClient returns a copy of the prober client that answers digest
// challenges with the cluster credentials.
func (p *prober) digestClient(username, password string) *http.Client {
	client := *p.client
	client.Transport = &digest.Transport{
		Username:  username,
		Password:  password,
		Transport: p.client.Transport,
	}

	return &client
}
