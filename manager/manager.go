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


package manager

import (
	"context"
	"net/http"
	"time"

	logger "github.com/esconnector/esconnector/internal/eslog"
	"github.com/esconnector/esconnector/manager/cache"
	"github.com/esconnector/esconnector/manager/config"
	"github.com/esconnector/esconnector/manager/database"
	"github.com/esconnector/esconnector/manager/metrics"
	"github.com/esconnector/esconnector/manager/probe"
	"github.com/esconnector/esconnector/manager/router"
	"github.com/esconnector/esconnector/manager/service"
	"github.com/esconnector/esconnector/manager/store"
	"github.com/esconnector/esconnector/manager/store/client"
)

const (
	gracefulStopTimeout = 10 * time.Second
)

type Server struct {
	// Server configuration
	config *config.Config

	// Database clients
	db *database.Database

	// REST server
	restServer *http.Server
}

func New(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize cluster store
	repo, err := client.NewRepository(cfg, db)
	if err != nil {
		return nil, err
	}

	options := []service.Option{
		service.WithStore(store.New(repo)),
		service.WithProber(probe.New(probe.WithDefaultTimeout(cfg.Probe.Timeout))),
	}

	// Initialize cache
	if cfg.Probe.EnableCache {
		options = append(options, service.WithCache(cache.New(cfg, db.RDB), cfg.Probe.CacheTTL))
	}

	// Initialize REST server
	router, err := router.Init(cfg, service.New(options...))
	if err != nil {
		return nil, err
	}
	restServer := &http.Server{
		Addr:    cfg.Server.REST.Addr,
		Handler: router,
	}

	metrics.SetVersion()

	return &Server{
		config:     cfg,
		db:         db,
		restServer: restServer,
	}, nil
}

func (s *Server) Serve() error {
	logger.Infof("started rest server at %s", s.restServer.Addr)
	if err := s.restServer.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			return nil
		}

		logger.Errorf("rest server closed unexpect: %+v", err)
		return err
	}

	return nil
}

func (s *Server) Stop() {
	// Stop REST server
	ctx, cancel := context.WithTimeout(context.Background(), gracefulStopTimeout)
	defer cancel()
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %+v", err)
	}
	logger.Info("rest server closed under request")

	// Close database
	if err := s.db.Close(); err != nil {
		logger.Errorf("database failed to close: %+v", err)
	}
	logger.Info("database closed under request")
}
