package util

import (
	"context"
	"errors"

	"github.com/genie-oss/genie/pkg/node"
)

// NewNode builds a node from the configuration loaded by the root command.
func NewNode(ctx context.Context) (*node.Node, error) {
	cfg, ok := GetConfig(ctx)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return node.NewNode(ctx, cfg, node.NodeDependencyInjector{})
}
