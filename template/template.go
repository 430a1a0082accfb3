// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

// Package template loads ARM template, parameter and policy documents from a
// local path or a URL. The document schemas are owned by the Azure deployment
// and policy APIs; this package only parses the envelopes.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	getter "github.com/hashicorp/go-getter/v2"
)

// Fetch reads a document from a local path or, failing that, hands the
// source to go-getter so URLs (http, git, s3, ...) work as well.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if _, err := os.Stat(src); err == nil {
		return os.ReadFile(src)
	}
	dir, err := os.MkdirTemp("", "azdeploy-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	dst := filepath.Join(dir, "artifact.json")
	pwd, _ := os.Getwd()
	client := getter.Client{}
	req := &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     pwd,
		GetMode: getter.ModeFile,
	}
	if _, err := client.Get(ctx, req); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	return os.ReadFile(dst)
}

// LoadTemplate fetches and parses an ARM template document.
func LoadTemplate(ctx context.Context, src string) (map[string]any, error) {
	raw, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var tmpl map[string]any
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", src, err)
	}
	return tmpl, nil
}

// ParameterFile is a full ARM deployment parameter document.
type ParameterFile struct {
	Schema         string               `json:"$schema"`
	ContentVersion string               `json:"contentVersion"`
	Parameters     map[string]Parameter `json:"parameters"`
}

// Parameter is a single deployment parameter value.
type Parameter struct {
	Value any `json:"value"`
}

// LoadParameters fetches and parses a deployment parameter document. Both the
// full file form ($schema/contentVersion/parameters) and a bare parameter map
// are accepted. The result is in the inline shape the deployments API
// expects: each entry an object with a "value" key.
func LoadParameters(ctx context.Context, src string) (map[string]any, error) {
	raw, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var file ParameterFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse parameter file %s: %w", src, err)
	}
	params := file.Parameters
	if params == nil {
		var bare map[string]Parameter
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, fmt.Errorf("parse parameter file %s: %w", src, err)
		}
		params = bare
	}
	inline := make(map[string]any, len(params))
	for name, param := range params {
		inline[name] = map[string]any{"value": param.Value}
	}
	return inline, nil
}

// policyDocument covers the two policy template shapes in the wild: a full
// definition document with a properties envelope, and the bare properties at
// top level.
type policyDocument struct {
	Name        *string                                         `json:"name"`
	Properties  *armpolicy.DefinitionProperties                 `json:"properties"`
	DisplayName *string                                         `json:"displayName"`
	Description *string                                         `json:"description"`
	Mode        *string                                         `json:"mode"`
	PolicyRule  any                                             `json:"policyRule"`
	Parameters  map[string]*armpolicy.ParameterDefinitionsValue `json:"parameters"`
	If          any                                             `json:"if"`
	Then        any                                             `json:"then"`
}

// LoadPolicyDefinition fetches the policy rule template and, when paramSrc is
// non-empty, the parameter schema document, and assembles an
// armpolicy.Definition body ready for upsert. The rule template may be a full
// definition document, a properties-shaped document, or the bare rule itself
// ({"if": ..., "then": ...}).
func LoadPolicyDefinition(ctx context.Context, ruleSrc, paramSrc string) (armpolicy.Definition, error) {
	raw, err := Fetch(ctx, ruleSrc)
	if err != nil {
		return armpolicy.Definition{}, err
	}
	var doc policyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return armpolicy.Definition{}, fmt.Errorf("parse policy template %s: %w", ruleSrc, err)
	}

	properties := doc.Properties
	if properties == nil {
		properties = &armpolicy.DefinitionProperties{
			DisplayName: doc.DisplayName,
			Description: doc.Description,
			Mode:        doc.Mode,
			PolicyRule:  doc.PolicyRule,
			Parameters:  doc.Parameters,
		}
	}
	if properties.PolicyRule == nil {
		if doc.If == nil || doc.Then == nil {
			return armpolicy.Definition{}, errors.New("policy template contains no policy rule")
		}
		// Bare rule form.
		properties.PolicyRule = map[string]any{"if": doc.If, "then": doc.Then}
	}

	if paramSrc != "" {
		params, err := loadPolicyParameters(ctx, paramSrc)
		if err != nil {
			return armpolicy.Definition{}, err
		}
		properties.Parameters = params
	}

	return armpolicy.Definition{
		Name:       doc.Name,
		Properties: properties,
	}, nil
}

func loadPolicyParameters(ctx context.Context, src string) (map[string]*armpolicy.ParameterDefinitionsValue, error) {
	raw, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Parameters map[string]*armpolicy.ParameterDefinitionsValue `json:"parameters"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse policy parameter file %s: %w", src, err)
	}
	if wrapped.Parameters != nil {
		return wrapped.Parameters, nil
	}
	var bare map[string]*armpolicy.ParameterDefinitionsValue
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("parse policy parameter file %s: %w", src, err)
	}
	return bare, nil
}
