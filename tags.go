// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/brunoga/deep"
	"github.com/sentia/azdeploy/to"
)

// DefaultTags are merged into every ensured resource group. Existing keys are
// never overwritten.
func DefaultTags() map[string]string {
	return map[string]string{
		"Environment": "Test",
		"Company":     "Sentia",
	}
}

// MergeTags returns a new tag map containing every entry of existing plus
// every default key that existing does not already have. Existing values are
// preserved verbatim and the input map is never mutated. The operation is
// idempotent.
func MergeTags(existing map[string]*string, defaults map[string]string) (map[string]*string, error) {
	merged, err := deep.Copy(existing)
	if err != nil {
		return nil, fmt.Errorf("copy existing tags: %w", err)
	}
	if merged == nil {
		merged = make(map[string]*string, len(defaults))
	}
	for key, value := range defaults {
		if _, ok := merged[key]; ok {
			continue
		}
		merged[key] = to.Ptr(value)
	}
	return merged, nil
}

// ApplyDefaultTags merges defaults into the group's tags and patches the
// group when the merge added anything. Already-merged groups are left
// untouched, so re-running is a no-op.
func ApplyDefaultTags(ctx context.Context, api ResourceGroupsAPI, group armresources.ResourceGroup, defaults map[string]string) (armresources.ResourceGroup, error) {
	merged, err := MergeTags(group.Tags, defaults)
	if err != nil {
		return group, err
	}
	if tagsEqual(group.Tags, merged) {
		return group, nil
	}
	name := to.ValOrZero(group.Name)
	updated, err := api.Update(ctx, name, armresources.ResourceGroupPatchable{Tags: merged})
	if err != nil {
		return group, fmt.Errorf("update tags on resource group %q: %w", name, err)
	}
	return updated, nil
}

func tagsEqual(a, b map[string]*string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, av := range a {
		bv, ok := b[key]
		if !ok || to.ValOrZero(av) != to.ValOrZero(bv) {
			return false
		}
	}
	return true
}
