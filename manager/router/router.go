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


package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/config"
	"github.com/esconnector/esconnector/manager/handlers"
	"github.com/esconnector/esconnector/manager/middlewares"
	"github.com/esconnector/esconnector/manager/service"
)

const (
	PrometheusSubsystemName = "esconnector_manager"
	OtelServiceName         = "esconnector-manager"
)

func Init(cfg *config.Config, service service.Service) (*gin.Engine, error) {
	// Set mode
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// Prometheus metrics need to reduce label,
	// refer to https://prometheus.io/docs/practices/instrumentation/#do-not-overuse-labels.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	p.Use(r)

	// Opentelemetry
	if cfg.Telemetry.Jaeger != "" {
		r.Use(otelgin.Middleware(OtelServiceName))
	}

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(gin.Recovery())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Router
	apiv1 := r.Group("/api/v1")

	// Cluster
	c := apiv1.Group("/clusters")
	c.POST("", h.CreateCluster)
	c.PATCH(":id", h.UpdateCluster)
	c.GET(":id", h.GetCluster)
	c.GET("", h.GetClusters)
	c.PUT(":id/default", h.SetDefaultCluster)
	c.GET(":id/info", h.GetClusterInfo)
	c.GET(":id/form", h.GetClusterForm)

	// Cluster form
	apiv1.GET("/cluster-form", h.GetNewClusterForm)

	// Default cluster
	apiv1.GET("/default-cluster", h.GetDefaultCluster)

	// Health Check
	r.GET("/healthy", h.GetHealth)

	return r, nil
}
