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


package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esconnector/esconnector/manager/types"
)

// @Summary Create Cluster
// @Description Create by json or form config
// @Tags Cluster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param Cluster body types.ClusterForm true "Cluster"
// @Success 200 {object} types.SaveClusterResponse
// @Failure 400
// @Failure 422
// @Failure 500
// @Failure 503
// @Router /clusters [post]
func (h *Handlers) CreateCluster(ctx *gin.Context) {
	var form types.ClusterForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.CreateCluster(ctx.Request.Context(), form)
	if err != nil {
		ctx.Error(err).SetMeta(submittedForm(form))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// @Summary Update Cluster
// @Description Update by json or form config, the cluster id is immutable
// @Tags Cluster
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "id"
// @Param Cluster body types.ClusterForm true "Cluster"
// @Success 200 {object} types.SaveClusterResponse
// @Failure 400
// @Failure 404
// @Failure 422
// @Failure 500
// @Failure 503
// @Router /clusters/{id} [patch]
func (h *Handlers) UpdateCluster(ctx *gin.Context) {
	var params types.ClusterParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var form types.ClusterForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.UpdateCluster(ctx.Request.Context(), params.ID, form)
	if err != nil {
		ctx.Error(err).SetMeta(submittedForm(form))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// @Summary Get Cluster
// @Description Get Cluster by id
// @Tags Cluster
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ClusterResponse
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /clusters/{id} [get]
func (h *Handlers) GetCluster(ctx *gin.Context) {
	var params types.ClusterParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	cluster, err := h.service.GetCluster(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, cluster)
}

// @Summary Get Clusters
// @Description Get Clusters
// @Tags Cluster
// @Accept json
// @Produce json
// @Param page query int true "current page" default(0)
// @Param per_page query int true "return max item count, default 10, max 50" default(10) minimum(2) maximum(50)
// @Success 200 {object} []types.ClusterResponse
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /clusters [get]
func (h *Handlers) GetClusters(ctx *gin.Context) {
	var query types.GetClustersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	h.setPaginationDefault(&query.Page, &query.PerPage)
	clusters, count, err := h.service.GetClusters(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	h.setPaginationLinkHeader(ctx, query.Page, query.PerPage, int(count))
	ctx.JSON(http.StatusOK, clusters)
}

// @Summary Set Default Cluster
// @Description Make the cluster the default connection
// @Tags Cluster
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ClusterResponse
// @Failure 400
// @Failure 404
// @Failure 500
// @Failure 503
// @Router /clusters/{id}/default [put]
func (h *Handlers) SetDefaultCluster(ctx *gin.Context) {
	var params types.ClusterParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	cluster, err := h.service.SetDefaultCluster(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, cluster)
}

// @Summary Get Default Cluster
// @Description Get the default connection
// @Tags Cluster
// @Accept json
// @Produce json
// @Success 200 {object} types.ClusterResponse
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /default-cluster [get]
func (h *Handlers) GetDefaultCluster(ctx *gin.Context) {
	cluster, err := h.service.GetDefaultCluster(ctx.Request.Context())
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, cluster)
}

// @Summary Get Cluster Info
// @Description Get the status table of the live cluster
// @Tags Cluster
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ClusterInfoTable
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /clusters/{id}/info [get]
func (h *Handlers) GetClusterInfo(ctx *gin.Context) {
	var params types.ClusterParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	info, err := h.service.GetClusterInfo(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// @Summary Get Cluster Form
// @Description Get the form schema of a new cluster
// @Tags Cluster
// @Accept json
// @Produce json
// @Success 200 {object} types.ClusterFormSchema
// @Failure 400
// @Failure 500
// @Router /cluster-form [get]
func (h *Handlers) GetNewClusterForm(ctx *gin.Context) {
	form, err := h.service.GetClusterForm(ctx.Request.Context(), "")
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// @Summary Get Cluster Form
// @Description Get the form schema of a stored cluster
// @Tags Cluster
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ClusterFormSchema
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /clusters/{id}/form [get]
func (h *Handlers) GetClusterForm(ctx *gin.Context) {
	var params types.ClusterParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	form, err := h.service.GetClusterForm(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// submittedForm is the form echoed back after a failed save, the password
// is never echoed.
func submittedForm(form types.ClusterForm) types.ClusterForm {
	form.Options.Password = ""
	return form
}
