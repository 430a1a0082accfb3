// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

// Package auth creates the Azure token credential for a deployment run.
//
// The default chain (environment, workload identity, managed identity, Azure
// CLI) covers automation; setting AZDEPLOY_INTERACTIVE or ARM_USE_INTERACTIVE
// switches to an interactive browser login for operators without a cached CLI
// session. Cloud selection follows ARM_ENVIRONMENT / AZURE_ENVIRONMENT.
package auth

import (
	"os"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// environmentToCloud maps environment names to their corresponding cloud configurations.
var environmentToCloud = map[string]cloud.Configuration{
	"public":       cloud.AzurePublic,
	"usgovernment": cloud.AzureGovernment,
	"china":        cloud.AzureChina,
}

// NewCredential creates a token credential for the Azure management plane.
func NewCredential() (azcore.TokenCredential, error) {
	cld := cloud.AzurePublic
	if env := getFirstSetEnvVar("ARM_ENVIRONMENT", "AZURE_ENVIRONMENT"); env != "" {
		if cfg, ok := environmentToCloud[strings.ToLower(env)]; ok {
			cld = cfg
		}
	}

	clientOpts := azcore.ClientOptions{Cloud: cld}
	tenant := getFirstSetEnvVar("ARM_TENANT_ID", "AZURE_TENANT_ID")

	if anyTrue("AZDEPLOY_INTERACTIVE", "ARM_USE_INTERACTIVE") {
		return azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
			ClientOptions: clientOpts,
			TenantID:      tenant,
		})
	}

	return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: clientOpts,
		TenantID:      tenant,
	})
}

func getFirstSetEnvVar(vars ...string) string {
	for _, v := range vars {
		if val := os.Getenv(v); val != "" {
			return val
		}
	}

	return ""
}

func anyTrue(vars ...string) bool {
	for _, v := range vars {
		if val := os.Getenv(v); val != "" {
			b, _ := strconv.ParseBool(val)
			if b {
				return true
			}
		}
	}

	return false
}
