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
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/esconnector/esconnector/manager/models"
	"github.com/esconnector/esconnector/manager/types"
	"github.com/esconnector/esconnector/pkg/idgen"
)

const (
	reasonRequired    = "field is required"
	reasonMachineName = "must contain only lowercase letters, numbers, and underscores"
	reasonBaseURL     = "must be an http or https url with a host"
	reasonTimeout     = "must be a positive number of seconds, at most 86400"
	reasonCheckbox    = "must be a checkbox value"
	reasonExists      = "the machine-readable name is already in use, it must be unique"
)

var formValidations = map[string]validator.Func{
	"machine_name":    isMachineName,
	"base_url":        isBaseURL,
	"timeout_seconds": isTimeoutSeconds,
	"checkbox":        isCheckbox,
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	for tag, fn := range formValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

// ValidateAndPrepare checks every constraint of the submitted form and
// returns the cluster it describes with defaults applied. current is the
// stored cluster when editing and nil when creating; its id always wins
// over the submitted one. All violations are returned together as
// ValidationErrors. Nothing is written.
func (s *Store) ValidateAndPrepare(ctx context.Context, form types.ClusterForm, current *models.Cluster) (*models.Cluster, error) {
	form = normalizeForm(form)
	if current != nil {
		form.ClusterID = current.ClusterID
	} else if form.ClusterID == "" {
		form.ClusterID = idgen.ClusterIDV1(form.Name)
	}

	var errs ValidationErrors
	if err := s.validate.StructCtx(ctx, form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}

		for _, fieldErr := range fieldErrs {
			errs = append(errs, newValidationError(fieldErr))
		}
	}

	if current == nil && !errs.Has("cluster_id") {
		exists, err := s.repo.Exists(ctx, form.ClusterID)
		if err != nil {
			return nil, &PersistenceError{Op: "lookup cluster", Err: err}
		}

		if exists {
			errs = append(errs, ValidationError{Field: "cluster_id", Reason: reasonExists})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Parsing cannot fail past validation.
	timeout, _ := strconv.ParseFloat(string(form.Options.TimeoutSeconds), 64)
	multipleNodes, _ := ParseCheckbox(string(form.Options.MultipleNodesConnection))
	useAuthentication, _ := ParseCheckbox(string(form.Options.UseAuthentication))

	authenticationType := form.Options.AuthenticationType
	if authenticationType == "" {
		authenticationType = models.AuthenticationTypeDigest
	}

	cluster := &models.Cluster{
		ClusterID: form.ClusterID,
		Name:      form.Name,
		URL:       form.URL,
		Status:    form.Status,
		Options: models.ClusterOptions{
			MultipleNodesConnection: multipleNodes,
			UseAuthentication:       useAuthentication,
			AuthenticationType:      authenticationType,
			Username:                form.Options.Username,
			Password:                form.Options.Password,
			TimeoutSeconds:          timeout,
		},
	}

	if current != nil {
		cluster.CreatedAt = current.CreatedAt

		// Passwords are never echoed back to the form, an empty one keeps
		// the stored password.
		if cluster.Options.Password == "" {
			cluster.Options.Password = current.Options.Password
		}
	}

	return cluster, nil
}

// ParseCheckbox parses a checkbox value, an empty value is unchecked.
func ParseCheckbox(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "off", "no":
		return false, true
	case "1", "true", "on", "yes":
		return true, true
	default:
		return false, false
	}
}

func normalizeForm(form types.ClusterForm) types.ClusterForm {
	form.Name = strings.TrimSpace(form.Name)
	form.ClusterID = strings.TrimSpace(form.ClusterID)
	form.URL = strings.TrimSpace(form.URL)
	form.Default = types.FormValue(strings.TrimSpace(string(form.Default)))

	form.Status = strings.ToUpper(strings.TrimSpace(form.Status))
	switch form.Status {
	case "1":
		form.Status = models.ClusterStatusActive
	case "0":
		form.Status = models.ClusterStatusInactive
	}

	form.Options.AuthenticationType = strings.ToUpper(strings.TrimSpace(form.Options.AuthenticationType))
	form.Options.TimeoutSeconds = types.FormValue(strings.TrimSpace(string(form.Options.TimeoutSeconds)))
	return form
}

func newValidationError(fieldErr validator.FieldError) ValidationError {
	field := fieldErr.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var reason string
	switch fieldErr.Tag() {
	case "required":
		reason = reasonRequired
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		reason = fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fieldErr.Param()), ", "))
	case "machine_name":
		reason = reasonMachineName
	case "base_url":
		reason = reasonBaseURL
	case "timeout_seconds":
		reason = reasonTimeout
	case "checkbox":
		reason = reasonCheckbox
	default:
		reason = fmt.Sprintf("failed on the %q rule", fieldErr.Tag())
	}

	return ValidationError{Field: field, Reason: reason}
}

func isMachineName(fl validator.FieldLevel) bool {
	return idgen.IsClusterID(fl.Field().String())
}

func isBaseURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isTimeoutSeconds(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}

	return v > 0 && v <= models.MaxTimeoutSeconds
}

func isCheckbox(fl validator.FieldLevel) bool {
	_, ok := ParseCheckbox(fl.Field().String())
	return ok
}
