package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "localcart",
	Short: "LocalCart - storefront API for locally made products",
	Long:  "Serves the LocalCart catalog, seller listings and onboarding over HTTP and websockets.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
