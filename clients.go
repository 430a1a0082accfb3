// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/sentia/azdeploy/to"
)

// Subscription is the subset of an Azure subscription the selector needs.
type Subscription struct {
	ID          string
	DisplayName string
}

// SubscriptionsAPI enumerates the subscriptions visible to the credential.
type SubscriptionsAPI interface {
	List(ctx context.Context) ([]Subscription, error)
}

// ResourceGroupsAPI is the resource-group surface used by the ensurer and the
// tag merger.
type ResourceGroupsAPI interface {
	CheckExistence(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (armresources.ResourceGroup, error)
	CreateOrUpdate(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error)
	Update(ctx context.Context, name string, patch armresources.ResourceGroupPatchable) (armresources.ResourceGroup, error)
}

// DeploymentsAPI validates and executes template deployments. Both calls
// block until the provider reports completion.
type DeploymentsAPI interface {
	Validate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) error
	CreateOrUpdate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) (armresources.DeploymentExtended, error)
}

// ProvidersAPI registers resource providers and lists the resource type
// names of a provider namespace.
type ProvidersAPI interface {
	Register(ctx context.Context, namespace string) error
	ResourceTypes(ctx context.Context, namespace string) ([]string, error)
}

// PolicyDefinitionsAPI looks up and creates or updates policy definitions at
// subscription scope. Get reports "not found" via the bool, not the error.
type PolicyDefinitionsAPI interface {
	Get(ctx context.Context, name string) (armpolicy.Definition, bool, error)
	CreateOrUpdate(ctx context.Context, name string, definition armpolicy.Definition) (armpolicy.Definition, error)
}

// PolicyAssignmentsAPI creates policy assignments at a given scope.
type PolicyAssignmentsAPI interface {
	Create(ctx context.Context, scope, name string, assignment armpolicy.Assignment) (armpolicy.Assignment, error)
}

// Clients bundles the per-subscription API surfaces a run needs.
type Clients struct {
	ResourceGroups    ResourceGroupsAPI
	Deployments       DeploymentsAPI
	Providers         ProvidersAPI
	PolicyDefinitions PolicyDefinitionsAPI
	PolicyAssignments PolicyAssignmentsAPI
}

// ClientsFactory builds the per-subscription clients once a subscription has
// been selected.
type ClientsFactory func(subscriptionID string) (*Clients, error)

// NewAzureClients creates Clients backed by the Azure SDK client factories
// for the given subscription.
func NewAzureClients(subscriptionID string, cred azcore.TokenCredential, options *arm.ClientOptions) (*Clients, error) {
	resources, err := armresources.NewClientFactory(subscriptionID, cred, options)
	if err != nil {
		return nil, err
	}
	policy, err := armpolicy.NewClientFactory(subscriptionID, cred, options)
	if err != nil {
		return nil, err
	}
	return &Clients{
		ResourceGroups:    &resourceGroupsClient{client: resources.NewResourceGroupsClient()},
		Deployments:       &deploymentsClient{client: resources.NewDeploymentsClient()},
		Providers:         &providersClient{client: resources.NewProvidersClient()},
		PolicyDefinitions: &policyDefinitionsClient{client: policy.NewDefinitionsClient()},
		PolicyAssignments: &policyAssignmentsClient{client: policy.NewAssignmentsClient()},
	}, nil
}

// NewSubscriptionsClient creates a SubscriptionsAPI backed by the Azure SDK.
// Unlike the other clients it is not bound to a subscription, so it can be
// built before one has been selected.
func NewSubscriptionsClient(cred azcore.TokenCredential, options *arm.ClientOptions) (SubscriptionsAPI, error) {
	client, err := armsubscriptions.NewClient(cred, options)
	if err != nil {
		return nil, err
	}
	return &subscriptionsClient{client: client}, nil
}

type subscriptionsClient struct {
	client *armsubscriptions.Client
}

func (s *subscriptionsClient) List(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, sub := range page.Value {
			if sub == nil {
				continue
			}
			subs = append(subs, Subscription{
				ID:          to.ValOrZero(sub.SubscriptionID),
				DisplayName: to.ValOrZero(sub.DisplayName),
			})
		}
	}
	return subs, nil
}

type resourceGroupsClient struct {
	client *armresources.ResourceGroupsClient
}

func (r *resourceGroupsClient) CheckExistence(ctx context.Context, name string) (bool, error) {
	resp, err := r.client.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (r *resourceGroupsClient) Get(ctx context.Context, name string) (armresources.ResourceGroup, error) {
	resp, err := r.client.Get(ctx, name, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

func (r *resourceGroupsClient) CreateOrUpdate(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	resp, err := r.client.CreateOrUpdate(ctx, name, group, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

func (r *resourceGroupsClient) Update(ctx context.Context, name string, patch armresources.ResourceGroupPatchable) (armresources.ResourceGroup, error) {
	resp, err := r.client.Update(ctx, name, patch, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

type deploymentsClient struct {
	client *armresources.DeploymentsClient
}

func (d *deploymentsClient) Validate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) error {
	poller, err := d.client.BeginValidate(ctx, groupName, deploymentName, deployment, nil)
	if err != nil {
		return &ValidationError{err: err}
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return &ValidationError{err: err}
	}
	if resp.Error != nil {
		return &ValidationError{
			Code:    to.ValOrZero(resp.Error.Code),
			Message: to.ValOrZero(resp.Error.Message),
		}
	}
	return nil
}

func (d *deploymentsClient) CreateOrUpdate(ctx context.Context, groupName, deploymentName string, deployment armresources.Deployment) (armresources.DeploymentExtended, error) {
	poller, err := d.client.BeginCreateOrUpdate(ctx, groupName, deploymentName, deployment, nil)
	if err != nil {
		return armresources.DeploymentExtended{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armresources.DeploymentExtended{}, err
	}
	return resp.DeploymentExtended, nil
}

type providersClient struct {
	client *armresources.ProvidersClient
}

func (p *providersClient) Register(ctx context.Context, namespace string) error {
	_, err := p.client.Register(ctx, namespace, nil)
	return err
}

func (p *providersClient) ResourceTypes(ctx context.Context, namespace string) ([]string, error) {
	resp, err := p.client.Get(ctx, namespace, nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.ResourceTypes))
	for _, rt := range resp.ResourceTypes {
		if rt == nil || rt.ResourceType == nil {
			continue
		}
		names = append(names, *rt.ResourceType)
	}
	return names, nil
}

type policyDefinitionsClient struct {
	client *armpolicy.DefinitionsClient
}

func (p *policyDefinitionsClient) Get(ctx context.Context, name string) (armpolicy.Definition, bool, error) {
	resp, err := p.client.Get(ctx, name, nil)
	if err != nil {
		if isNotFound(err) {
			return armpolicy.Definition{}, false, nil
		}
		return armpolicy.Definition{}, false, err
	}
	return resp.Definition, true, nil
}

func (p *policyDefinitionsClient) CreateOrUpdate(ctx context.Context, name string, definition armpolicy.Definition) (armpolicy.Definition, error) {
	resp, err := p.client.CreateOrUpdate(ctx, name, definition, nil)
	if err != nil {
		return armpolicy.Definition{}, err
	}
	return resp.Definition, nil
}

type policyAssignmentsClient struct {
	client *armpolicy.AssignmentsClient
}

func (p *policyAssignmentsClient) Create(ctx context.Context, scope, name string, assignment armpolicy.Assignment) (armpolicy.Assignment, error) {
	resp, err := p.client.Create(ctx, scope, name, assignment, nil)
	if err != nil {
		return armpolicy.Assignment{}, err
	}
	return resp.Assignment, nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
