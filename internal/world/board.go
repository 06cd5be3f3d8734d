package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexclash/internal/hex"
	"github.com/samdwyer/hexclash/internal/telemetry"
)

const (
	// Default board dimensions
	DefaultWidth  = 12
	DefaultHeight = 9

	// Feature placement parameters
	minFeatureRadius = 0
	maxFeatureRadius = 2
	spawnMargin      = 1   // Columns kept clear at the left and right edges
	featureDensity   = 18  // One feature per this many cells
	maxPlacementTry  = 100 // Attempts per feature before giving up
)

// Board is a generated grid plus the features carved into it.
type Board struct {
	Grid     *Grid
	Features []Region
	rng      *rand.Rand
}

// NewBoard creates a board of open ground. rng drives feature placement;
// pass a seeded source for reproducible boards.
func NewBoard(width, height int, rng *rand.Rand) *Board {
	return &Board{
		Grid:     NewGrid(width, height),
		Features: make([]Region, 0),
		rng:      rng,
	}
}

// Generate scatters water, currents and voids over the board, keeping
// the spawn columns at both edges clear.
func (b *Board) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	g := b.Grid
	want := g.Width() * g.Height() / featureDensity
	voids, currents := 0, 0
	for n := 0; n < want; n++ {
		region, ok := b.placeFeature()
		if !ok {
			break
		}
		b.Features = append(b.Features, region)

		terrain := b.pickTerrain()
		switch terrain.Kind {
		case TerrainVoid:
			voids++
		case TerrainWaterCurrent:
			currents++
		}
		for _, pos := range region.Cells() {
			if b.inPlayArea(pos) {
				g.SetTerrain(pos, terrain)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("board.width", g.Width()),
		attribute.Int("board.height", g.Height()),
		attribute.Int("board.feature_count", len(b.Features)),
		attribute.Int("board.void_count", voids),
		attribute.Int("board.current_count", currents),
		attribute.Int64("board.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// inPlayArea reports whether pos is on the board and outside the spawn margin.
func (b *Board) inPlayArea(pos hex.Position) bool {
	return b.Grid.InBounds(pos) && pos.X >= spawnMargin && pos.X < b.Grid.Width()-spawnMargin
}

// placeFeature picks a region that does not touch any earlier feature.
func (b *Board) placeFeature() (Region, bool) {
	g := b.Grid
	span := g.Width() - 2*spawnMargin
	if span <= 0 {
		return Region{}, false
	}

	for i := 0; i < maxPlacementTry; i++ {
		candidate := Region{
			Center: hex.Pos(spawnMargin+b.rng.Intn(span), b.rng.Intn(g.Height())),
			Radius: minFeatureRadius + b.rng.Intn(maxFeatureRadius-minFeatureRadius+1),
		}
		clear := true
		for _, f := range b.Features {
			if candidate.Intersects(f) {
				clear = false
				break
			}
		}
		if clear {
			return candidate, true
		}
	}
	return Region{}, false
}

// pickTerrain chooses the terrain of a feature. Voids are rarer than water.
func (b *Board) pickTerrain() Terrain {
	switch roll := b.rng.Intn(6); {
	case roll < 3:
		return StillWater()
	case roll < 5:
		dir := hex.Directions[b.rng.Intn(len(hex.Directions))]
		return Current(dir.Vec())
	default:
		return Void()
	}
}
