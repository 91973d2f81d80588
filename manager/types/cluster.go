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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type ClusterParams struct {
	ID string `uri:"id" binding:"required"`
}

// ClusterForm holds the raw field values of a submitted cluster form.
// Values are strings exactly as collected, they are validated and
// converted by the cluster store.
type ClusterForm struct {
	Name      string             `json:"name" form:"name" validate:"required"`
	ClusterID string             `json:"cluster_id" form:"cluster_id" validate:"required,max=125,machine_name"`
	URL       string             `json:"url" form:"url" validate:"required,base_url"`
	Status    string             `json:"status" form:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Default   FormValue          `json:"default" form:"default" validate:"omitempty,checkbox"`
	Options   ClusterFormOptions `json:"options"`
}

// FormValue is a raw form value. Decoded from json it also accepts
// numbers and booleans, kept in their literal text form.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = FormValue(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("form value must be a string, number or boolean: %w", err)
		}
		*v = FormValue(n)
	}

	return nil
}

type ClusterFormOptions struct {
	MultipleNodesConnection FormValue `json:"multiple_nodes_connection" form:"options[multiple_nodes_connection]" validate:"omitempty,checkbox"`
	UseAuthentication       FormValue `json:"use_authentication" form:"options[use_authentication]" validate:"omitempty,checkbox"`
	AuthenticationType      string    `json:"authentication_type" form:"options[authentication_type]" validate:"omitempty,oneof=DIGEST BASIC NTLM"`
	Username                string    `json:"username" form:"options[username]"`
	Password                string    `json:"password" form:"options[password]"`
	TimeoutSeconds          FormValue `json:"timeout_seconds" form:"options[timeout_seconds]" validate:"required,timeout_seconds"`
}

type GetClustersQuery struct {
	Name    string `form:"name" binding:"omitempty"`
	Status  string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page    int    `form:"page" binding:"omitempty,gte=1"`
	PerPage int    `form:"per_page" binding:"omitempty,gte=1,lte=50"`
}

type ClusterResponse struct {
	ClusterID string                 `json:"cluster_id"`
	Name      string                 `json:"name"`
	URL       string                 `json:"url"`
	Status    string                 `json:"status"`
	Options   ClusterOptionsResponse `json:"options"`
	IsDefault bool                   `json:"is_default"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type ClusterOptionsResponse struct {
	MultipleNodesConnection bool    `json:"multiple_nodes_connection"`
	UseAuthentication       bool    `json:"use_authentication"`
	AuthenticationType      string  `json:"authentication_type"`
	Username                string  `json:"username,omitempty"`
	HasPassword             bool    `json:"has_password"`
	TimeoutSeconds          float64 `json:"timeout_seconds"`
}

type SaveClusterResponse struct {
	Cluster  ClusterResponse `json:"cluster"`
	Message  string          `json:"message"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ClusterHealth is the subset of the cluster health api the manager reads.
type ClusterHealth struct {
	ClusterName       string `json:"cluster_name"`
	Status            string `json:"status"`
	TimedOut          bool   `json:"timed_out"`
	NumberOfNodes     int    `json:"number_of_nodes"`
	NumberOfDataNodes int    `json:"number_of_data_nodes"`
	ActiveShards      int    `json:"active_shards"`
}

type ClusterInfoTable struct {
	ID        string     `json:"id"`
	Class     string     `json:"class"`
	Header    []string   `json:"header,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
	Available bool       `json:"available"`
}
