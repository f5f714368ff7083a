package cargo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/core/ports"
)

const (
	// ExecutorNodeID is the unique identifier for the build executor Graft node.
	ExecutorNodeID graft.ID = "adapter.build_executor"

	// MetadataNodeID is the unique identifier for the metadata reader Graft node.
	MetadataNodeID graft.ID = "adapter.metadata_reader"
)

func init() {
	graft.Register(graft.Node[ports.BuildExecutor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildExecutor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        MetadataNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.MetadataReader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMetadataReader(log), nil
		},
	})
}
