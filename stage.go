// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

// Stage identifies how far a run has progressed. Stages are strictly ordered;
// a failure before StagePolicyUpserted aborts the run, a failure at the policy
// upsert or assignment transitions to StagePolicyAssignmentSkipped instead.
type Stage int

const (
	StageStart Stage = iota
	StageAuthenticated
	StageSubscriptionSelected
	StageGroupEnsured
	StageTagsSet
	StageValidated
	StageDeployed
	StageProviderRegistered
	StagePolicyUpserted
	StagePolicyAssigned
	StagePolicyAssignmentSkipped
	StageLoggedOut
)

var stageNames = map[Stage]string{
	StageStart:                   "Start",
	StageAuthenticated:           "Authenticated",
	StageSubscriptionSelected:    "SubscriptionSelected",
	StageGroupEnsured:            "GroupEnsured",
	StageTagsSet:                 "TagsSet",
	StageValidated:               "Validated",
	StageDeployed:                "Deployed",
	StageProviderRegistered:      "ProviderRegistered",
	StagePolicyUpserted:          "PolicyUpserted",
	StagePolicyAssigned:          "PolicyAssigned",
	StagePolicyAssignmentSkipped: "PolicyAssignmentSkipped",
	StageLoggedOut:               "LoggedOut",
}

// String returns the stage name.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}
