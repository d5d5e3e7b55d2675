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

// Command tilegen builds multi-core tiling plans for tensor operators and
// writes them as text, JSON or the binary launch record.
//
// Usage:
//
//	tilegen plan --op reduce_sum --shape 32,4096 --dtype fp16 --keepdims
//	tilegen plan --op add --shape 8,1000 --shape 8,1000 --format bin > add.tld
//	tilegen batch --file requests.yaml --jobs 4 --format json
//	tilegen inspect add.tld
//	tilegen decode-key 1120
//	tilegen ops
//	tilegen profiles
//
// The hardware profile is the --profile preset (npu-a2 by default), or the
// YAML file given by --profile-file. --cores, --buffer and --align override
// single fields of either. Logging verbosity is set with -v.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := newRootCmd().Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilegen: %v\n", err)
		os.Exit(1)
	}
}
