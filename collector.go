// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"fmt"

	sets "github.com/deckarep/golang-set/v2"
)

// CollectAllowedResourceTypes enumerates the resource type catalog of each
// namespace in input order and returns the fully qualified type names
// ("<namespace>/<typeName>"). Enumeration order is preserved and the output
// is not de-duplicated. Supplying the same namespace twice is an error.
func CollectAllowedResourceTypes(ctx context.Context, api ProvidersAPI, namespaces []string) ([]string, error) {
	seen := sets.NewSet[string]()
	collected := make([]string, 0)
	for _, namespace := range namespaces {
		if !seen.Add(namespace) {
			return nil, &DuplicateNamespaceError{Namespace: namespace}
		}
		types, err := api.ResourceTypes(ctx, namespace)
		if err != nil {
			return nil, fmt.Errorf("list resource types of provider %q: %w", namespace, err)
		}
		for _, typeName := range types {
			collected = append(collected, namespace+"/"+typeName)
		}
	}
	return collected, nil
}
