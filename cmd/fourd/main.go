// Command fourd lays out graphs in 3D with a multilevel force-directed
// hierarchy.
//
// Usage:
//
//	fourd [flags] [edge-list files...]
//
// Every input (edge-list file or -gen spec) is laid out by its own hierarchy,
// in parallel. The final root snapshot of each input is written as JSON to
// -out/<name>.json, or to stdout when -out is "-".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/plan-systems/klog"
)

func main() {
	klog.InitFlags(flag.CommandLine)
	flag.CommandLine.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, opts, os.Stdout)
	stop()

	if err != nil {
		klog.Errorf("fourd: %v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
