// SPDX-License-Identifier: MIT

// Command polysolve runs, benchmarks and verifies the dense solver kernels.
//
// Typical usage:
//
//	polysolve list
//	polysolve run all --size small --strategy pool --workers 8
//	polysolve bench lu --size medium --iterations 10
//	polysolve verify cholesky durbin --type float32 --dump 2>dump.txt
//	polysolve info
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd := makePolysolveCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "polysolve: %v\n", err)
		os.Exit(1)
	}
}
