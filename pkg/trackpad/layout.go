package trackpad

import (
	"io"

	"github.com/charmbracelet/log"
)

// Generator renders one validated configuration. It keeps no state between runs.
type Generator struct {
	cfg    Config
	grid   grid
	logger *log.Logger
}

// Option customizes a Generator
type Option func(*Generator)

// WithLogger sends per-edge debug output to l
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator validates cfg and returns a generator for it.
// The only error it returns is a *ConfigError.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:    cfg,
		grid:   newGrid(cfg),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the footprint display name
func (g *Generator) Name() string {
	return g.cfg.DisplayName()
}

// Run emits every primitive into sink. Order is fixed: top, right, bottom,
// left, outline, then the labels.
func (g *Generator) Run(sink PrimitiveSink) {
	opts := g.cfg.Options
	taper, base := g.cfg.Debug.Taper, g.cfg.Debug.TaperAngle

	// Only the border ring, unless the whole grid is filled
	depthX, depthY := 1, 1
	if opts.FillGrid {
		depthX, depthY = g.grid.segX, g.grid.segY
	}

	// Top: column pads, vias and back connectors
	for i := 0; i < g.grid.segX; i++ {
		for j := 0; j < depthY; j++ {
			c := g.grid.cell(EdgeTop, i, j)
			sink.AddPad(g.grid.pad(c, taper, base))
			if opts.DrillHole {
				sink.AddVia(g.grid.via(c))
			}
			if opts.AddBackWiring {
				sink.AddTrace(g.grid.backConnector(c))
			}
		}
	}
	g.logger.Debug("edge generated", "edge", EdgeTop, "cells", g.grid.segX*depthY)

	// Right: row pads only
	for i := 0; i < g.grid.segY; i++ {
		for j := 0; j < depthX; j++ {
			sink.AddPad(g.grid.pad(g.grid.cell(EdgeRight, i, j), taper, base))
		}
	}
	g.logger.Debug("edge generated", "edge", EdgeRight, "cells", g.grid.segY*depthX)

	// Bottom: column pads and vias
	for i := 0; i < g.grid.segX; i++ {
		for j := 0; j < depthY; j++ {
			c := g.grid.cell(EdgeBottom, i, j)
			sink.AddPad(g.grid.pad(c, taper, base))
			if opts.DrillHole {
				sink.AddVia(g.grid.via(c))
			}
		}
	}
	g.logger.Debug("edge generated", "edge", EdgeBottom, "cells", g.grid.segX*depthY)

	// Left: one front bus per row, then the row pads
	for i := 0; i < g.grid.segY; i++ {
		if opts.AddFrontWiring {
			sink.AddTrace(g.grid.frontBus(i))
		}
		for j := 0; j < depthX; j++ {
			sink.AddPad(g.grid.pad(g.grid.cell(EdgeLeft, i, j), taper, base))
		}
	}
	g.logger.Debug("edge generated", "edge", EdgeLeft, "cells", g.grid.segY*depthX)

	if opts.AddLines {
		for _, t := range g.grid.outline() {
			sink.AddTrace(t)
		}
	}

	sink.SetLabels(g.labels())
}

// labels places the reference above and the value below the sensor,
// each offset by half the text height plus the stroke thickness
func (g *Generator) labels() (reference, value Label) {
	t := g.grid.textSize
	w := float64(g.grid.silkWidth)
	offset := g.grid.height/2 + t/2 + w

	reference = Label{
		Position:  g.grid.round.point(0, -offset),
		Size:      int64(t),
		Thickness: g.grid.silkWidth,
	}
	value = Label{
		Position:  g.grid.round.point(0, offset),
		Size:      int64(t),
		Thickness: g.grid.silkWidth,
	}
	return reference, value
}

// Generate validates cfg and drives sink. Nothing reaches sink when cfg is invalid.
func Generate(cfg Config, sink PrimitiveSink, opts ...Option) error {
	g, err := NewGenerator(cfg, opts...)
	if err != nil {
		return err
	}
	g.Run(sink)
	return nil
}

// Build returns a freshly generated footprint owned by the caller
func Build(cfg Config, opts ...Option) (*Footprint, error) {
	g, err := NewGenerator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	fp := &Footprint{Name: g.Name()}
	g.Run(fp)
	return fp, nil
}
