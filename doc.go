// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

// Package azdeploy orchestrates a single sequential Azure deployment run:
// subscription selection, resource group creation with default tags,
// ARM template validation and deployment, and the upsert and assignment of
// an allowed-resource-types policy at subscription scope.
//
// The package wraps the Azure SDK resource management clients behind narrow
// interfaces so the run logic can be exercised without real credentials.
// It implements no retry, caching or concurrency of its own; every call is
// a blocking round trip to the management plane.
package azdeploy
