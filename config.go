// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

// Defaults used when the corresponding Config field or flag is not supplied.
const (
	DefaultLocation             = "westeurope"
	DefaultPolicyDefinitionName = "allowed-resource-types"
	DefaultPolicyAssignmentName = "allowed-resource-types-assignment"
)

// DefaultProviderNamespaces are the provider namespaces whose resource types
// are collected into the allowed-resource-types policy parameter.
func DefaultProviderNamespaces() []string {
	return []string{"Microsoft.Compute", "Microsoft.Storage"}
}

// Config carries every input of a deployment run. It is populated by the CLI
// from flags and passed to NewRunner; there is no other configuration source.
type Config struct {
	ResourceGroupName           string
	DeploymentName              string
	TemplateFile                string // local path or URL
	TemplateParameterFile       string // local path or URL
	PolicyTemplateFile          string // local path or URL
	PolicyTemplateParameterFile string // local path or URL, may be empty
	Location                    string
	PolicyDefinitionName        string
	PolicyAssignmentName        string
	ProviderNamespaces          []string
}

// Validate checks that all required fields are set and applies defaults to
// the optional ones.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"ResourceGroupName", c.ResourceGroupName},
		{"DeploymentName", c.DeploymentName},
		{"TemplateFile", c.TemplateFile},
		{"TemplateParameterFile", c.TemplateParameterFile},
		{"PolicyTemplateFile", c.PolicyTemplateFile},
	}
	for _, r := range required {
		if r.value == "" {
			return NewErrPropertyMustNotBeEmpty(r.name)
		}
	}
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.PolicyDefinitionName == "" {
		c.PolicyDefinitionName = DefaultPolicyDefinitionName
	}
	if c.PolicyAssignmentName == "" {
		c.PolicyAssignmentName = DefaultPolicyAssignmentName
	}
	if len(c.ProviderNamespaces) == 0 {
		c.ProviderNamespaces = DefaultProviderNamespaces()
	}
	return nil
}
