// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"
	"os"

	"github.com/sentia/azdeploy/cmd/azdeploytool/command/deploy"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "azdeploytool",
	Version: version,
	Short:   "Deploys ARM templates and assigns an allowed-resource-types policy",
	Long: `azdeploytool orchestrates a single sequential deployment run against Azure:

- ensures the target resource group exists and carries the default tags,
- validates and then executes an ARM template deployment,
- upserts an allowed-resource-types policy definition and assigns it at
  subscription scope.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(&deploy.DeployCmd)
}
