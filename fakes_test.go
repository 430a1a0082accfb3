// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// Function-field fakes for the client interfaces. Unset fields fail the call
// so tests only stub what they expect to be reached.

type fakeSubscriptions struct {
	list func(ctx context.Context) ([]Subscription, error)
}

func (f *fakeSubscriptions) List(ctx context.Context) ([]Subscription, error) {
	if f.list == nil {
		return nil, errors.New("unexpected call: Subscriptions.List")
	}
	return f.list(ctx)
}

type fakeResourceGroups struct {
	checkExistence func(ctx context.Context, name string) (bool, error)
	get            func(ctx context.Context, name string) (armresources.ResourceGroup, error)
	createOrUpdate func(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error)
	update         func(ctx context.Context, name string, patch armresources.ResourceGroupPatchable) (armresources.ResourceGroup, error)
}

func (f *fakeResourceGroups) CheckExistence(ctx context.Context, name string) (bool, error) {
	if f.checkExistence == nil {
		return false, errors.New("unexpected call: ResourceGroups.CheckExistence")
	}
	return f.checkExistence(ctx, name)
}

func (f *fakeResourceGroups) Get(ctx context.Context, name string) (armresources.ResourceGroup, error) {
	if f.get == nil {
		return armresources.ResourceGroup{}, errors.New("unexpected call: ResourceGroups.Get")
	}
	return f.get(ctx, name)
}

func (f *fakeResourceGroups) CreateOrUpdate(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	if f.createOrUpdate == nil {
		return armresources.ResourceGroup{}, errors.New("unexpected call: ResourceGroups.CreateOrUpdate")
	}
	return f.createOrUpdate(ctx, name, group)
}

func (f *fakeResourceGroups) Update(ctx context.Context, name string, patch armresources.ResourceGroupPatchable) (armresources.ResourceGroup, error) {
	if f.update == nil {
		return armresources.ResourceGroup{}, errors.New("unexpected call: ResourceGroups.Update")
	}
	return f.update(ctx, name, patch)
}

type fakeDeployments struct {
	validate       func(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) error
	createOrUpdate func(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) (armresources.DeploymentExtended, error)
}

func (f *fakeDeployments) Validate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) error {
	if f.validate == nil {
		return errors.New("unexpected call: Deployments.Validate")
	}
	return f.validate(ctx, groupName, deploymentName, deployment)
}

func (f *fakeDeployments) CreateOrUpdate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) (armresources.DeploymentExtended, error) {
	if f.createOrUpdate == nil {
		return armresources.DeploymentExtended{}, errors.New("unexpected call: Deployments.CreateOrUpdate")
	}
	return f.createOrUpdate(ctx, groupName, deploymentName, deployment)
}

type fakeProviders struct {
	register      func(ctx context.Context, namespace string) error
	resourceTypes func(ctx context.Context, namespace string) ([]string, error)
}

func (f *fakeProviders) Register(ctx context.Context, namespace string) error {
	if f.register == nil {
		return errors.New("unexpected call: Providers.Register")
	}
	return f.register(ctx, namespace)
}

func (f *fakeProviders) ResourceTypes(ctx context.Context, namespace string) ([]string, error) {
	if f.resourceTypes == nil {
		return nil, errors.New("unexpected call: Providers.ResourceTypes")
	}
	return f.resourceTypes(ctx, namespace)
}

type fakePolicyDefinitions struct {
	get            func(ctx context.Context, name string) (armpolicy.Definition, bool, error)
	createOrUpdate func(ctx context.Context, name string, definition armpolicy.Definition) (armpolicy.Definition, error)
}

func (f *fakePolicyDefinitions) Get(ctx context.Context, name string) (armpolicy.Definition, bool, error) {
	if f.get == nil {
		return armpolicy.Definition{}, false, errors.New("unexpected call: PolicyDefinitions.Get")
	}
	return f.get(ctx, name)
}

func (f *fakePolicyDefinitions) CreateOrUpdate(ctx context.Context, name string, definition armpolicy.Definition) (armpolicy.Definition, error) {
	if f.createOrUpdate == nil {
		return armpolicy.Definition{}, errors.New("unexpected call: PolicyDefinitions.CreateOrUpdate")
	}
	return f.createOrUpdate(ctx, name, definition)
}

type fakePolicyAssignments struct {
	create func(ctx context.Context, scope, name string, assignment armpolicy.Assignment) (armpolicy.Assignment, error)
}

func (f *fakePolicyAssignments) Create(ctx context.Context, scope, name string, assignment armpolicy.Assignment) (armpolicy.Assignment, error) {
	if f.create == nil {
		return armpolicy.Assignment{}, errors.New("unexpected call: PolicyAssignments.Create")
	}
	return f.create(ctx, scope, name, assignment)
}
