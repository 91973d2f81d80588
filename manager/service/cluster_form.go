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
	"fmt"
	"strconv"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/types"
	"github.com/esconnector/esconnector/pkg/idgen"
)

const (
	checkboxChecked   = "1"
	checkboxUnchecked = "0"
)

// useAuthenticationVisible shows authentication fields only while
// authentication is enabled.
var useAuthenticationVisible = &types.FormCondition{
	Field:   "options[use_authentication]",
	Checked: true,
}

func (s *service) GetClusterForm(ctx context.Context, id string) (*types.ClusterFormSchema, error) {
	cluster := &models.Cluster{
		Status: models.ClusterStatusActive,
		Options: models.ClusterOptions{
			AuthenticationType: models.AuthenticationTypeDigest,
			TimeoutSeconds:     models.DefaultTimeoutSeconds,
		},
	}

	isNew := id == ""
	if !isNew {
		var err error
		if cluster, err = s.store.Get(ctx, id); err != nil {
			return nil, err
		}
	}

	defaultID, err := s.store.DefaultID(ctx)
	if err != nil {
		return nil, err
	}

	schema := &types.ClusterFormSchema{
		IsNew:  isNew,
		Fields: clusterFormFields(cluster, defaultID),
	}

	if isNew {
		schema.Title = "Add Elasticsearch Cluster"
	} else {
		schema.Title = fmt.Sprintf("Edit Elasticsearch Cluster %s", cluster.Name)
		schema.Info = s.clusterInfo(ctx, cluster)
	}

	return schema, nil
}

func clusterFormFields(cluster *models.Cluster, defaultID string) []types.FormField {
	// The default box is ticked when no default exists yet, so the
	// first cluster saved becomes the default one.
	isDefault := defaultID == "" || (cluster.ClusterID != "" && cluster.ClusterID == defaultID)

	return []types.FormField{
		{
			Name:        "name",
			Type:        types.FormFieldTypeTextfield,
			Title:       "Administrative cluster name",
			Description: "Enter the administrative cluster name that will be your Elasticsearch cluster unique identifier.",
			Required:    true,
			Value:       cluster.Name,
		},
		{
			Name:        "cluster_id",
			Type:        types.FormFieldTypeMachineName,
			Title:       "Cluster id",
			Description: "A unique machine-readable name for this Elasticsearch cluster.",
			Required:    true,
			Disabled:    cluster.ClusterID != "",
			MaxLength:   idgen.ClusterIDMaxLength,
			Source:      "name",
			Value:       cluster.ClusterID,
		},
		{
			Name:  "url",
			Type:  types.FormFieldTypeTextfield,
			Title: "Server URL",
			Description: "URL and port of a server (node) in the cluster. " +
				"Please, always enter the port even if it is default one. " +
				"Nodes will be automatically discovered. " +
				"Examples: http://localhost:9200 or https://localhost:443.",
			Required: true,
			Value:    cluster.URL,
		},
		{
			Name:        "default",
			Type:        types.FormFieldTypeCheckbox,
			Title:       "Make this cluster default connection",
			Description: "If the cluster connection is not specified the API will use the default connection.",
			Value:       checkbox(isDefault),
		},
		{
			Name:  "options[multiple_nodes_connection]",
			Type:  types.FormFieldTypeCheckbox,
			Title: "Use multiple nodes connection",
			Description: "Automatically discover all nodes and use them in the cluster connection. " +
				"Then the Elasticsearch client can distribute the query execution on random base between nodes.",
			Value: checkbox(cluster.Options.MultipleNodesConnection),
		},
		{
			Name:     "status",
			Type:     types.FormFieldTypeRadios,
			Title:    "Status",
			Required: true,
			Value:    cluster.Status,
			Options: []types.FormOption{
				{Value: models.ClusterStatusActive, Label: "Active"},
				{Value: models.ClusterStatusInactive, Label: "Inactive"},
			},
		},
		{
			Name:        "options[use_authentication]",
			Type:        types.FormFieldTypeCheckbox,
			Title:       "Use authentication",
			Description: "Use HTTP authentication method to connect to Elasticsearch.",
			Value:       checkbox(cluster.Options.UseAuthentication),
		},
		{
			Name:        "options[authentication_type]",
			Type:        types.FormFieldTypeRadios,
			Title:       "Authentication type",
			Description: "Select the http authentication type.",
			Value:       cluster.Options.AuthenticationType,
			Options: []types.FormOption{
				{Value: models.AuthenticationTypeDigest, Label: "Digest"},
				{Value: models.AuthenticationTypeBasic, Label: "Basic"},
				{Value: models.AuthenticationTypeNTLM, Label: "NTLM"},
			},
			VisibleWhen: useAuthenticationVisible,
		},
		{
			Name:        "options[username]",
			Type:        types.FormFieldTypeTextfield,
			Title:       "Username",
			Description: "The username for authentication.",
			Value:       cluster.Options.Username,
			VisibleWhen: useAuthenticationVisible,
		},
		{
			Name:        "options[password]",
			Type:        types.FormFieldTypePassword,
			Title:       "Password",
			Description: "The password for authentication.",
			VisibleWhen: useAuthenticationVisible,
		},
		{
			Name:        "options[timeout_seconds]",
			Type:        types.FormFieldTypeNumber,
			Title:       "Connection timeout",
			Description: "After how many seconds the connection should timeout if there is no connection to Elasticsearch.",
			Required:    true,
			Size:        20,
			Value:       strconv.FormatFloat(cluster.Options.TimeoutSeconds, 'f', -1, 64),
		},
	}
}

func checkbox(checked bool) string {
	if checked {
		return checkboxChecked
	}

	return checkboxUnchecked
}
