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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/esconnector/esconnector/version"
)

const (
	// Namespace of the metrics.
	Namespace = "esconnector"

	// Subsystem of the manager metrics.
	Subsystem = "manager"
)

// Variables declared for metrics.
var (
	ClusterSaveCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "cluster_save_total",
		Help:      "Counter of the number of the cluster saves.",
	}, []string{"operation"})

	ClusterSaveFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "cluster_save_failure_total",
		Help:      "Counter of the number of failed of the cluster saves.",
	}, []string{"operation", "reason"})

	DefaultClusterChangeCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "default_cluster_change_total",
		Help:      "Counter of the number of the default cluster changes.",
	})

	ClusterHealthProbeCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "cluster_health_probe_total",
		Help:      "Counter of the number of the cluster health probes.",
	}, []string{"cluster_id"})

	ClusterHealthProbeFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "cluster_health_probe_failure_total",
		Help:      "Counter of the number of failed of the cluster health probes.",
	}, []string{"cluster_id"})

	ClusterHealthProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "cluster_health_probe_duration_seconds",
		Help:      "Histogram of the cluster health probe duration.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{"cluster_id"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

// SetVersion publishes the build information.
func SetVersion() {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)
}
