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

package idgen

import (
	"regexp"
	"strings"
)

const (
	// ClusterIDMaxLength is the max length of a cluster id.
	ClusterIDMaxLength = 125
)

var (
	clusterIDReplacePattern = regexp.MustCompile(`[^a-z0-9_]+`)
	clusterIDPattern        = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// ClusterIDV1 generates v1 version of cluster id from the cluster name.
// Runs of characters outside [a-z0-9_] collapse into a single underscore.
func ClusterIDV1(name string) string {
	id := clusterIDReplacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	id = strings.Trim(id, "_")
	if len(id) > ClusterIDMaxLength {
		id = strings.TrimRight(id[:ClusterIDMaxLength], "_")
	}

	return id
}

// IsClusterID reports whether id is a well formed cluster id.
func IsClusterID(id string) bool {
	return len(id) <= ClusterIDMaxLength && clusterIDPattern.MatchString(id)
}
