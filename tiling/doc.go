// Package tiling plans how a tensor operator's work is split across the
// parallel cores of an accelerator and into buffer-sized tiles on each core.
//
// Planning is pure arithmetic over two value inputs:
//   - HardwareProfile: core count, per-core scratch buffer and DMA alignment
//   - WorkloadDescriptor: element count and width, optional row length,
//     temporary-buffer multiplier and buffering factor
//
// and produces a TilingPlan consumed by the kernel dispatcher.
//
// # Algorithm
//
// Partition rounds the workload up to whole aligned blocks and deals them
// across at most CoreCount cores. When the blocks do not divide evenly, the
// first BigCoreCount cores receive one extra block ("big" cores), the rest
// form the "small" class.
//
// SizeTile then fits each class into the scratch buffer: a tile is the
// largest aligned (and, for row-structured ops, whole-row) element count
// that fits once the buffer is divided by the buffering factor and the
// temporary-buffer multiplier. Every tile is full except the last one, the
// tail.
//
// Finally a tiling key folds a few small axes (dtype class, schedule,
// has-big-core, double buffering) into one dispatch integer.
//
// # Errors
//
// Planning either returns a fully validated plan or one of:
//   - *ConfigError (ErrConfig): invalid profile, workload or key schema
//   - *InsufficientBufferError (ErrInsufficientBuffer): not even one
//     aligned chunk fits the buffer
//   - *EncodingOverflowError (ErrEncodingOverflow): the key does not fit
//
// None are retried. Zero divisors are always reported, never replaced by 1.
//
// # Example Usage
//
//	hw := tiling.ProfileNPUA2()
//	wl := tiling.WorkloadDescriptor{
//	    TotalElements:        1 << 20,
//	    ElementBytes:         4,
//	    TempBufferMultiplier: 3,
//	    BufferingFactor:      tiling.DoubleBuffer,
//	}
//	plan, err := tiling.BuildPlan(hw, wl, tiling.KeyFields{Schedule: tiling.ScheduleElementwise})
//
// All functions are safe for concurrent use; PlanBatch plans many operator
// instances in parallel.
package tiling
