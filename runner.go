// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sentia/azdeploy/template"
	"github.com/sentia/azdeploy/to"
)

// policyInsightsNamespace must be registered before policy state can be
// evaluated for the subscription.
const policyInsightsNamespace = "Microsoft.PolicyInsights"

// Result reports the outcome of a run.
type Result struct {
	Stage                   Stage  // final stage reached; StageLoggedOut on a completed run
	SubscriptionID          string
	CreatedGroup            bool   // whether the resource group was created by this run
	DeploymentID            string
	AllowedTypes            []string
	PolicyCreated           bool // definition created (true) rather than updated
	PolicyAssignmentSkipped bool
	SkipReason              error // why the policy assignment was skipped, if it was
	Elapsed                 time.Duration
}

// Runner walks the deployment stages strictly in order. Every stage is a
// blocking call; the first failure before the policy stage aborts the run.
type Runner struct {
	cfg           Config
	subscriptions SubscriptionsAPI
	chooser       SubscriptionChooser
	newClients    ClientsFactory
	log           zerolog.Logger
}

// NewRunner creates a Runner. The chooser may be nil when the credential is
// known to see a single subscription.
func NewRunner(cfg Config, subscriptions SubscriptionsAPI, chooser SubscriptionChooser, factory ClientsFactory, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:           cfg,
		subscriptions: subscriptions,
		chooser:       chooser,
		newClients:    factory,
		log:           log,
	}
}

// Run executes the whole deployment flow. The returned Result is never nil
// and reports the last stage reached, also on failure.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{Stage: StageStart}
	defer func() {
		result.Elapsed = time.Since(start)
	}()

	if err := r.cfg.Validate(); err != nil {
		return result, err
	}

	// The subscription listing is the first authenticated round trip, so its
	// success doubles as the login check.
	subs, err := r.subscriptions.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list subscriptions: %w", err)
	}
	result.Stage = StageAuthenticated
	r.log.Info().Int("subscriptions", len(subs)).Msg("authenticated")

	sub, err := SelectSubscription(subs, r.chooser)
	if err != nil {
		return result, err
	}
	result.Stage = StageSubscriptionSelected
	result.SubscriptionID = sub.ID
	r.log.Info().Str("subscription", sub.ID).Str("name", sub.DisplayName).Msg("subscription selected")

	clients, err := r.newClients(sub.ID)
	if err != nil {
		return result, fmt.Errorf("create clients for subscription %s: %w", sub.ID, err)
	}

	group, created, err := EnsureResourceGroup(ctx, clients.ResourceGroups, r.cfg.ResourceGroupName, r.cfg.Location)
	if err != nil {
		return result, err
	}
	result.Stage = StageGroupEnsured
	result.CreatedGroup = created
	r.log.Info().Str("group", r.cfg.ResourceGroupName).Bool("created", created).Msg("resource group ensured")

	group, err = ApplyDefaultTags(ctx, clients.ResourceGroups, group, DefaultTags())
	if err != nil {
		return result, err
	}
	result.Stage = StageTagsSet
	r.log.Info().Int("tags", len(group.Tags)).Msg("default tags merged")

	deployment, err := r.loadDeployment(ctx)
	if err != nil {
		return result, err
	}
	validationName := fmt.Sprintf("%s-validate-%s", r.cfg.DeploymentName, uuid.NewString()[:8])
	if err := clients.Deployments.Validate(ctx, r.cfg.ResourceGroupName, validationName, deployment); err != nil {
		return result, err
	}
	result.Stage = StageValidated
	r.log.Info().Str("template", r.cfg.TemplateFile).Msg("template validated")

	deployed, err := clients.Deployments.CreateOrUpdate(ctx, r.cfg.ResourceGroupName, r.cfg.DeploymentName, deployment)
	if err != nil {
		return result, fmt.Errorf("deployment %q: %w", r.cfg.DeploymentName, err)
	}
	result.Stage = StageDeployed
	result.DeploymentID = to.ValOrZero(deployed.ID)
	r.log.Info().Str("deployment", r.cfg.DeploymentName).Msg("deployment completed")

	if err := clients.Providers.Register(ctx, policyInsightsNamespace); err != nil {
		return result, fmt.Errorf("register provider %s: %w", policyInsightsNamespace, err)
	}
	result.Stage = StageProviderRegistered
	r.log.Info().Str("provider", policyInsightsNamespace).Msg("resource provider registered")

	allowed, err := CollectAllowedResourceTypes(ctx, clients.Providers, r.cfg.ProviderNamespaces)
	if err != nil {
		return result, err
	}
	result.AllowedTypes = allowed

	r.runPolicyStage(ctx, clients, sub.ID, allowed, result)

	// Credentials are stateless; logout is a stage transition plus a log line.
	result.Stage = StageLoggedOut
	r.log.Info().Str("elapsed", FormatElapsed(time.Since(start))).Msg("logged out")
	return result, nil
}

// runPolicyStage upserts the definition and creates the assignment. Failures
// here do not fail the run; the assignment is skipped and the skip recorded.
func (r *Runner) runPolicyStage(ctx context.Context, clients *Clients, subscriptionID string, allowed []string, result *Result) {
	definition, err := template.LoadPolicyDefinition(ctx, r.cfg.PolicyTemplateFile, r.cfg.PolicyTemplateParameterFile)
	if err != nil {
		r.skipAssignment(result, &PolicyUpsertError{Name: r.cfg.PolicyDefinitionName, err: err})
		return
	}

	upserted, created, err := UpsertPolicyDefinition(ctx, clients.PolicyDefinitions, r.cfg.PolicyDefinitionName, definition)
	if err != nil {
		r.skipAssignment(result, err)
		return
	}
	result.Stage = StagePolicyUpserted
	result.PolicyCreated = created
	r.log.Info().Str("definition", r.cfg.PolicyDefinitionName).Bool("created", created).Msg("policy definition upserted")

	assignment := NewAllowedTypesAssignment(upserted, r.cfg.PolicyAssignmentName, allowed)
	scope := SubscriptionScope(subscriptionID)
	if _, err := ApplyPolicyAssignment(ctx, clients.PolicyAssignments, scope, r.cfg.PolicyAssignmentName, assignment); err != nil {
		r.skipAssignment(result, err)
		return
	}
	result.Stage = StagePolicyAssigned
	r.log.Info().Str("assignment", r.cfg.PolicyAssignmentName).Str("scope", scope).Int("allowedTypes", len(allowed)).Msg("policy assigned")
}

func (r *Runner) skipAssignment(result *Result, reason error) {
	result.Stage = StagePolicyAssignmentSkipped
	result.PolicyAssignmentSkipped = true
	result.SkipReason = reason
	r.log.Warn().Err(reason).Msg("policy assignment skipped")
}

func (r *Runner) loadDeployment(ctx context.Context) (armresources.Deployment, error) {
	tmpl, err := template.LoadTemplate(ctx, r.cfg.TemplateFile)
	if err != nil {
		return armresources.Deployment{}, err
	}
	params, err := template.LoadParameters(ctx, r.cfg.TemplateParameterFile)
	if err != nil {
		return armresources.Deployment{}, err
	}
	return armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:       to.Ptr(armresources.DeploymentModeIncremental),
			Template:   tmpl,
			Parameters: params,
		},
	}, nil
}

// FormatElapsed renders a duration in the HH:mm:ss.fff form the run summary
// uses.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60,
		int(d.Milliseconds())%1000,
	)
}
