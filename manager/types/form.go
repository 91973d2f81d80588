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

const (
	FormFieldTypeTextfield   = "textfield"
	FormFieldTypePassword    = "password"
	FormFieldTypeMachineName = "machine_name"
	FormFieldTypeCheckbox    = "checkbox"
	FormFieldTypeRadios      = "radios"
	FormFieldTypeNumber      = "number"
)

// ClusterFormSchema is a declarative description of the cluster form,
// rendered by whatever ui consumes the api.
type ClusterFormSchema struct {
	Title  string            `json:"title"`
	IsNew  bool              `json:"is_new"`
	Fields []FormField       `json:"fields"`
	Info   *ClusterInfoTable `json:"info,omitempty"`
}

type FormField struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Required    bool           `json:"required"`
	Disabled    bool           `json:"disabled,omitempty"`
	MaxLength   int            `json:"max_length,omitempty"`
	Size        int            `json:"size,omitempty"`
	Source      string         `json:"source,omitempty"`
	Value       string         `json:"value"`
	Options     []FormOption   `json:"options,omitempty"`
	VisibleWhen *FormCondition `json:"visible_when,omitempty"`
}

type FormOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormCondition makes a field visible only while another checkbox field
// has the given state.
type FormCondition struct {
	Field   string `json:"field"`
	Checked bool   `json:"checked"`
}
