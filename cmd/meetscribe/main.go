package main

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/meetscribe/internal/cli"
	"github.com/nguyentantai21042004/meetscribe/internal/output"
)

func main() {
	deps := &cli.Dependencies{
		In:  os.Stdin,
		Out: os.Stdout,
	}

	if err := cli.NewRootCmd(deps).ExecuteContext(context.Background()); err != nil {
		output.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}
