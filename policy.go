// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	"github.com/sentia/azdeploy/to"
)

const (
	// allowedTypesParameterName is the parameter of the allowed-resource-types
	// policy rule that the assignment binds the collected type list to.
	allowedTypesParameterName = "listOfResourceTypesAllowed"

	subscriptionScopeFmt = "/subscriptions/%s"
)

// SubscriptionScope returns the scope string for a subscription root.
func SubscriptionScope(subscriptionID string) string {
	return fmt.Sprintf(subscriptionScopeFmt, subscriptionID)
}

// UpsertPolicyDefinition looks up the named definition and creates or updates
// it in place from the supplied definition body. The same name is always
// used, so an existing definition is overwritten rather than duplicated.
// The bool reports whether the definition was created (true) or updated.
// All failures are returned as *PolicyUpsertError, which the caller treats as
// non-fatal.
func UpsertPolicyDefinition(ctx context.Context, api PolicyDefinitionsAPI, name string, definition armpolicy.Definition) (armpolicy.Definition, bool, error) {
	_, found, err := api.Get(ctx, name)
	if err != nil {
		return armpolicy.Definition{}, false, &PolicyUpsertError{Name: name, err: fmt.Errorf("lookup: %w", err)}
	}
	upserted, err := api.CreateOrUpdate(ctx, name, definition)
	if err != nil {
		return armpolicy.Definition{}, false, &PolicyUpsertError{Name: name, err: err}
	}
	return upserted, !found, nil
}

// NewAllowedTypesAssignment builds the assignment payload binding the
// collected allowed resource types to the definition's parameter.
func NewAllowedTypesAssignment(definition armpolicy.Definition, displayName string, allowedTypes []string) armpolicy.Assignment {
	values := make([]any, len(allowedTypes))
	for i, typeName := range allowedTypes {
		values[i] = typeName
	}
	return armpolicy.Assignment{
		Properties: &armpolicy.AssignmentProperties{
			DisplayName:        to.Ptr(displayName),
			PolicyDefinitionID: definition.ID,
			Parameters: map[string]*armpolicy.ParameterValuesValue{
				allowedTypesParameterName: {Value: values},
			},
		},
	}
}

// ApplyPolicyAssignment creates the assignment at the given scope.
func ApplyPolicyAssignment(ctx context.Context, api PolicyAssignmentsAPI, scope, name string, assignment armpolicy.Assignment) (armpolicy.Assignment, error) {
	created, err := api.Create(ctx, scope, name, assignment)
	if err != nil {
		return armpolicy.Assignment{}, fmt.Errorf("create policy assignment %q at %q: %w", name, scope, err)
	}
	return created, nil
}
