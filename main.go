// main is the entry point for the cofail CLI.
package main

import (
	"github.com/huangsam/cofail/cmd"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/internal/runstore"
)

func main() {
	defer runstore.CloseStore()

	cmd.SetStoreManager(runstore.Manager)

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogFatal("Failed to stop profiling", err)
	}
}
