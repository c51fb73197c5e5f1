// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/palemoky/mybridge/internal/ui/model"
	"github.com/palemoky/mybridge/internal/ui/view"
)

// NewLocalModel creates a local table model with the default view renderer.
func NewLocalModel(opts model.Options) (*model.LocalModel, error) {
	opts.Renderer = view.Render
	return model.NewLocalModel(opts)
}
