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

const (
	// DefaultClusterIDKey is the settings key of the default cluster.
	DefaultClusterIDKey = "default_cluster_id"
)

type Settings struct {
	ID    uint   `gorm:"primarykey;comment:id" json:"id"`
	Key   string `gorm:"column:key;type:varchar(256);index:uk_settings_key,unique;not null;comment:setting key" json:"key"`
	Value string `gorm:"column:value;type:varchar(256);not null;comment:setting value" json:"value"`
}
