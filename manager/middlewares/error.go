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


package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/store"
	"github.com/esconnector/esconnector/manager/types"
)

type ErrorResponse struct {
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"errors,omitempty"`
	Fields  store.ValidationErrors `json:"fields,omitempty"`

	// Form is the submission of a failed save, sent back so it can be
	// submitted again.
	Form *types.ClusterForm `json:"form,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Gin bind error handler
		if err.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		// Form validation handler
		var validationErrs store.ValidationErrors
		if errors.As(err.Err, &validationErrs) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   validationErrs.Error(),
				Fields:  validationErrs,
			})
			return
		}

		// Cluster not found handler
		var notFoundErr *store.NotFoundError
		if errors.As(err.Err, &notFoundErr) || errors.Is(err.Err, store.ErrNoDefaultCluster) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Message: http.StatusText(http.StatusNotFound),
				Error:   err.Error(),
			})
			return
		}

		// Repository failure handler, a failed save echoes the submission.
		var persistenceErr *store.PersistenceError
		if errors.As(err.Err, &persistenceErr) {
			logger.Errorf("%s failed: %v", persistenceErr.Op, persistenceErr.Err)
			resp := ErrorResponse{
				Message: http.StatusText(http.StatusServiceUnavailable),
				Error:   "the cluster store is unavailable, please try again",
			}

			if form, ok := err.Meta.(types.ClusterForm); ok {
				resp.Error = "the cluster could not be saved, please try again"
				resp.Form = &form
			}

			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}

		// Unknown error
		logger.Errorf("unknown error: %v", err.Err)
		c.JSON(http.StatusInternalServerError, nil)
	}
}
