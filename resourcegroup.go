// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/sentia/azdeploy/to"
)

// EnsureResourceGroup returns the named resource group, creating it in the
// given location if it does not exist. An existing group is returned
// unmodified; its location is never changed and it is never recreated.
// The bool reports whether a create call was issued.
func EnsureResourceGroup(ctx context.Context, api ResourceGroupsAPI, name, location string) (armresources.ResourceGroup, bool, error) {
	exists, err := api.CheckExistence(ctx, name)
	if err != nil {
		return armresources.ResourceGroup{}, false, fmt.Errorf("check existence of resource group %q: %w", name, err)
	}
	if exists {
		group, err := api.Get(ctx, name)
		if err != nil {
			return armresources.ResourceGroup{}, false, fmt.Errorf("get resource group %q: %w", name, err)
		}
		return group, false, nil
	}
	group, err := api.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	})
	if err != nil {
		return armresources.ResourceGroup{}, false, fmt.Errorf("create resource group %q in %q: %w", name, location, err)
	}
	return group, true, nil
}
