// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ajroetker/go-tiling/tiling"
	"github.com/ajroetker/go-tiling/tiling/ops"
	"github.com/ajroetker/go-tiling/tiling/tilingdata"
)

type classJSON struct {
	ElementsPerCore  uint64 `json:"elements_per_core"`
	TileElementCount uint64 `json:"tile_elements"`
	TileCount        uint64 `json:"tiles"`
	TailElementCount uint64 `json:"tail_elements"`
}

type planJSON struct {
	Name      string    `json:"name,omitempty"`
	Op        string    `json:"op"`
	Output    ops.Shape `json:"output"`
	DType     string    `json:"dtype"`
	Elements  uint64    `json:"elements"`
	UsedCores uint32    `json:"used_cores"`
	BigCores  uint32    `json:"big_cores"`
	Big       classJSON `json:"big"`
	Small     classJSON `json:"small"`
	Key       uint64    `json:"key"`
	Axes      string    `json:"axes"`
	Variant   string    `json:"variant"`
	FillBits  *uint64   `json:"fill_bits,omitempty"`
}

func newPlanJSON(name string, res ops.Result) planJSON {
	p := planJSON{
		Name:      name,
		Op:        res.Op,
		Output:    res.Output,
		DType:     res.DType.String(),
		Elements:  res.Workload.TotalElements,
		UsedCores: res.Plan.UsedCoreCount,
		BigCores:  res.Plan.BigCoreCount,
		Big:       classJSON(res.Plan.Big),
		Small:     classJSON(res.Plan.Small),
		Key:       res.Plan.TilingKey,
		Axes:      describeKey(res.Plan.TilingKey),
		Variant:   res.Variant,
	}
	if res.Op == "pad" {
		p.FillBits = &res.FillBits
	}
	return p
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(w io.Writer, hw tiling.HardwareProfile, label string, res ops.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "op:\t%s\n", label)
	fmt.Fprintf(tw, "profile:\t%s\n", hw)
	fmt.Fprintf(tw, "output:\t%s %s\n", res.Output, res.DType)
	fmt.Fprintf(tw, "workload:\t%s\n", res.Workload)
	fmt.Fprintf(tw, "cores:\t%d used, %d big\n", res.Plan.UsedCoreCount, res.Plan.BigCoreCount)
	writeClasses(tw, res.Plan)
	fmt.Fprintf(tw, "key:\t%d (%s)\n", res.Plan.TilingKey, describeKey(res.Plan.TilingKey))
	fmt.Fprintf(tw, "variant:\t%s\n", res.Variant)
	fmt.Fprintf(tw, "block dim:\t%d\n", tilingdata.BlockDim(res.Plan))
	if res.Op == "pad" {
		fmt.Fprintf(tw, "fill bits:\t%#x\n", res.FillBits)
	}
	return tw.Flush()
}

func writeRecord(w io.Writer, plan tiling.TilingPlan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "cores:\t%d used, %d big\n", plan.UsedCoreCount, plan.BigCoreCount)
	writeClasses(tw, plan)
	fmt.Fprintf(tw, "key:\t%d (%s)\n", plan.TilingKey, describeKey(plan.TilingKey))
	fmt.Fprintf(tw, "block dim:\t%d\n", tilingdata.BlockDim(plan))
	return tw.Flush()
}

// writeClasses prints the big class only when some core carries the extra
// block; otherwise both classes are identical.
func writeClasses(w io.Writer, plan tiling.TilingPlan) {
	if plan.BigCoreCount > 0 {
		writeClass(w, "big", plan.Big)
	}
	writeClass(w, "small", plan.Small)
}

func writeClass(w io.Writer, name string, c tiling.CoreClassPlan) {
	if c.IsEmpty() {
		fmt.Fprintf(w, "%s:\tidle\n", name)
		return
	}
	fmt.Fprintf(w, "%s:\t%d elements/core, %d tiles of %d, tail %d\n",
		name, c.ElementsPerCore, c.TileCount, c.TileElementCount, c.TailElementCount)
}

// describeKey decodes key with the default schema, or "?" for keys from a
// custom schema.
func describeKey(key uint64) string {
	desc, err := tiling.DefaultKeySchema.Describe(key)
	if err != nil {
		return "?"
	}
	return desc
}
