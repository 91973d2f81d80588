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

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	// ClusterStatusActive means the cluster is in use.
	ClusterStatusActive = "ACTIVE"

	// ClusterStatusInactive means the cluster is disabled.
	ClusterStatusInactive = "INACTIVE"
)

const (
	// AuthenticationTypeDigest is http digest authentication.
	AuthenticationTypeDigest = "DIGEST"

	// AuthenticationTypeBasic is http basic authentication.
	AuthenticationTypeBasic = "BASIC"

	// AuthenticationTypeNTLM is ntlm authentication.
	AuthenticationTypeNTLM = "NTLM"
)

const (
	// DefaultTimeoutSeconds is the connection timeout of a cluster
	// when none is configured.
	DefaultTimeoutSeconds = 30

	// MaxTimeoutSeconds is the largest accepted connection timeout.
	MaxTimeoutSeconds = 86400
)

type Cluster struct {
	ClusterID string         `gorm:"column:cluster_id;type:varchar(125);primaryKey;comment:machine readable id" json:"cluster_id"`
	Name      string         `gorm:"column:name;type:varchar(256);not null;comment:administrative name" json:"name"`
	URL       string         `gorm:"column:url;type:varchar(1024);not null;comment:node url" json:"url"`
	Status    string         `gorm:"column:status;type:varchar(32);not null;default:ACTIVE;comment:status" json:"status"`
	Options   ClusterOptions `gorm:"column:options;not null;comment:connection options" json:"options"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updated_at"`
}

// IsActive reports whether the cluster is enabled.
func (c *Cluster) IsActive() bool {
	return c.Status == ClusterStatusActive
}

type ClusterOptions struct {
	MultipleNodesConnection bool    `json:"multiple_nodes_connection"`
	UseAuthentication       bool    `json:"use_authentication"`
	AuthenticationType      string  `json:"authentication_type"`
	Username                string  `json:"username,omitempty"`
	Password                string  `json:"password,omitempty"`
	TimeoutSeconds          float64 `json:"timeout_seconds"`
}

// Timeout returns the connection timeout, falling back to
// DefaultTimeoutSeconds when none is set and capped at MaxTimeoutSeconds.
func (o ClusterOptions) Timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}

	if o.TimeoutSeconds > MaxTimeoutSeconds {
		return MaxTimeoutSeconds * time.Second
	}

	return time.Duration(o.TimeoutSeconds * float64(time.Second))
}

func (o ClusterOptions) Value() (driver.Value, error) {
	ba, err := json.Marshal(o)
	return string(ba), err
}

func (o *ClusterOptions) Scan(val any) error {
	var ba []byte
	switch v := val.(type) {
	case []byte:
		ba = v
	case string:
		ba = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", val))
	}

	return json.Unmarshal(ba, o)
}

func (ClusterOptions) GormDataType() string {
	return "clusteroptions"
}

func (ClusterOptions) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return "text"
}
