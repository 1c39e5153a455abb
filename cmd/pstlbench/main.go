// Copyright 2025 go-pstl Authors
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

// Command pstlbench runs the parallel algorithms under each execution
// policy, checks them against the sequential result and reports timings.
//
// Usage:
//
//	pstlbench caps
//	pstlbench run --algo copy_if --mode par_unseq --n 1000000 --threads 8
//	pstlbench all --n 100000
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pstlbench",
		Short:         "Benchmark and cross-check go-pstl algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCapsCmd(), newRunCmd(), newAllCmd())
	return root
}
