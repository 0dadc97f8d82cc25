// Package texcache implements the per-sampler texture cache: a 4-way
// set-associative cache of decoded 4x4 texel blocks, filled on miss by a
// format-dependent burst read from SDRAM.
package texcache

import (
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

const (
	numSets = 256
	numWays = 4
)

// Mem is the cache's view of the memory collaborator.
type Mem interface {
	Burst(addr, n int) []uint16
}

type entry struct {
	valid         bool
	bx, by, level uint16
	texels        [16]regs.RGBA
}

type fillState uint8

const (
	fillIdle fillState = iota
	fillFetch
	fillDecompress
	fillWriteBanks
)

// Stats counts cache traffic for inspection by tests and perf counters.
type Stats struct {
	Hits, Misses int
	Bursts       []int // length of every issued burst, in words
}

// Cache is one sampler's texture cache. It is private to its sampler, only
// the fill state machine mutates the entries.
type Cache struct {
	mem        Mem
	cfg        regs.TexConfig
	mipOffsets []int

	sets [numSets][numWays]entry
	next [numSets]uint8 // round-robin eviction cursor

	state fillState
	burst []uint16
	fill  entry

	Stats Stats
}

func New(mem Mem) *Cache {
	return &Cache{mem: mem}
}

// Configure latches a TEXn_CFG write. Any descriptor write invalidates the
// whole cache, there is no selective eviction.
func (c *Cache) Configure(cfg regs.TexConfig) {
	c.cfg = cfg
	c.mipOffsets = cfg.Format.MipOffsets(int(cfg.WidthLog2), int(cfg.HeightLog2), int(cfg.MipLevels))
	c.Invalidate()
}

func (c *Cache) Config() regs.TexConfig { return c.cfg }

func (c *Cache) Invalidate() {
	for s := range c.sets {
		for w := range c.sets[s] {
			c.sets[s][w].valid = false
		}
	}
}

// setIndex folds the block coordinates so that horizontally and vertically
// adjacent blocks never alias to the same set.
func setIndex(bx, by int) int { return (bx ^ by) & (numSets - 1) }

// Lookup returns the decoded block containing block coordinates (bx, by) of
// the given mip level, filling the cache on a miss.
func (c *Cache) Lookup(bx, by, level int) *[16]regs.RGBA {
	set := setIndex(bx, by)
	for w := range c.sets[set] {
		e := &c.sets[set][w]
		if e.valid && int(e.bx) == bx && int(e.by) == by && int(e.level) == level {
			c.Stats.Hits++
			return &e.texels
		}
	}
	c.Stats.Misses++

	// Miss: run the fill state machine to completion. The stalled lookup
	// is satisfied once the filled way is committed.
	c.state = fillFetch
	c.fill = entry{bx: uint16(bx), by: uint16(by), level: uint16(level)}
	for c.state != fillIdle {
		c.step()
	}
	e := &c.sets[set][(c.next[set]+numWays-1)%numWays]
	return &e.texels
}

func (c *Cache) step() {
	switch c.state {
	case fillFetch:
		n := c.cfg.Format.BurstWords()
		addr := c.blockAddr(int(c.fill.bx), int(c.fill.by), int(c.fill.level))
		c.burst = c.mem.Burst(addr, n)
		c.Stats.Bursts = append(c.Stats.Bursts, n)
		c.state = fillDecompress
	case fillDecompress:
		c.fill.texels = decode(c.cfg.Format, c.burst)
		c.fill.valid = true
		c.state = fillWriteBanks
	case fillWriteBanks:
		set := setIndex(int(c.fill.bx), int(c.fill.by))
		way := c.next[set]
		c.sets[set][way] = c.fill
		c.next[set] = (way + 1) % numWays
		c.state = fillIdle
	}
}

// blockAddr returns the word address of a block within the tiled mip chain.
func (c *Cache) blockAddr(bx, by, level int) int {
	w := texture.LevelDim(int(c.cfg.WidthLog2), level)
	blocksPerRow := w / texture.BlockDim
	block := by*blocksPerRow + bx
	return c.cfg.BaseWords() + c.mipOffsets[level] + block*c.cfg.Format.BurstWords()
}
