package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/cargo"
	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/adapters/fetch"
	"go.trai.ch/depot/internal/adapters/git"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app"

// Components bundles what the entry point needs from the object graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			cargo.ExecutorNodeID,
			cargo.MetadataNodeID,
			git.NodeID,
			fetch.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			defaults, err := graft.Dep[ports.DefaultsLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.BuildExecutor](ctx)
			if err != nil {
				return nil, err
			}
			metadata, err := graft.Dep[ports.MetadataReader](ctx)
			if err != nil {
				return nil, err
			}
			vcs, err := graft.Dep[ports.StatusQuerier](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.ArchiveFetcher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(defaults, metadata, executor, vcs, fetcher, tracer, log),
				Logger: log,
			}, nil
		},
	})
}
