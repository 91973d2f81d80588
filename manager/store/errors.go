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
	"errors"
	"fmt"
	"strings"
)

// ErrRecordNotFound is returned by a Repository when no cluster
// matches the requested id.
var ErrRecordNotFound = errors.New("record not found")

// ErrNoDefaultCluster is returned when no cluster has been saved yet.
var ErrNoDefaultCluster = errors.New("no default cluster")

// ValidationError is a field scoped failure of a submitted cluster form.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing constraint of one submission.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}

	return false
}

// NotFoundError is returned when a cluster id does not exist.
type NotFoundError struct {
	ClusterID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cluster %q not found", e.ClusterID)
}

// PersistenceError wraps a failure of the backing repository. The
// submission may be retried unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
