package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/ctl"
)

func main() {
	if err := ctl.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
