// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package deploy

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/sentia/azdeploy"
	"github.com/sentia/azdeploy/internal/auth"
	"github.com/spf13/cobra"
)

var cfg azdeploy.Config

var debug bool

// DeployCmd runs the whole deployment flow against the selected subscription.
var DeployCmd = cobra.Command{
	Use:   "deploy",
	Short: "Validates and deploys an ARM template, then assigns the allowed-resource-types policy.",
	Long: `Validates and deploys an ARM template into the target resource group, creating
the group with default tags if needed, then upserts the allowed-resource-types
policy definition and assigns it at subscription scope.

Template and parameter files may be local paths or URLs. The run halts on the
first fatal error; a failed policy upsert or assignment only skips the
assignment step.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(debug)

		cred, err := auth.NewCredential()
		if err != nil {
			cmd.PrintErrf("%s could not create Azure credential: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
		subs, err := azdeploy.NewSubscriptionsClient(cred, nil)
		if err != nil {
			cmd.PrintErrf("%s could not create subscriptions client: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
		chooser := &promptChooser{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
		factory := func(subscriptionID string) (*azdeploy.Clients, error) {
			return azdeploy.NewAzureClients(subscriptionID, cred, nil)
		}

		runner := azdeploy.NewRunner(cfg, subs, chooser, factory, logger)
		result, err := runner.Run(cmd.Context())
		if err != nil {
			cmd.PrintErrf("%s run failed at stage %s: %v\n", cmd.ErrPrefix(), result.Stage, err)
			os.Exit(1)
		}
		if result.PolicyAssignmentSkipped {
			cmd.PrintErrf("warning: policy assignment skipped: %v\n", result.SkipReason)
		}
		cmd.Printf("completed in %s\n", azdeploy.FormatElapsed(result.Elapsed))
	},
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func init() {
	f := DeployCmd.Flags()
	f.StringVarP(&cfg.ResourceGroupName, "resource-group", "g", "", "Name of the target resource group.")
	f.StringVarP(&cfg.DeploymentName, "deployment-name", "n", "", "Name of the deployment record.")
	f.StringVarP(&cfg.TemplateFile, "template-file", "t", "", "Path or URL of the ARM template.")
	f.StringVarP(&cfg.TemplateParameterFile, "template-parameter-file", "p", "", "Path or URL of the template parameter file.")
	f.StringVarP(&cfg.Location, "location", "l", azdeploy.DefaultLocation, "Region used when the resource group has to be created.")
	f.StringVar(&cfg.PolicyTemplateFile, "policy-template-file", "", "Path or URL of the policy rule template.")
	f.StringVar(&cfg.PolicyTemplateParameterFile, "policy-template-parameter-file", "", "Path or URL of the policy parameter schema.")
	f.StringVar(&cfg.PolicyDefinitionName, "policy-name", azdeploy.DefaultPolicyDefinitionName, "Name of the policy definition to upsert.")
	f.StringVar(&cfg.PolicyAssignmentName, "assignment-name", azdeploy.DefaultPolicyAssignmentName, "Name of the policy assignment.")
	f.StringSliceVar(&cfg.ProviderNamespaces, "namespaces", azdeploy.DefaultProviderNamespaces(), "Provider namespaces whose resource types are allowed by the policy.")
	f.BoolVar(&debug, "debug", false, "Enable debug logging.")

	for _, name := range []string{"resource-group", "deployment-name", "template-file", "template-parameter-file", "policy-template-file"} {
		_ = DeployCmd.MarkFlagRequired(name)
	}
}
