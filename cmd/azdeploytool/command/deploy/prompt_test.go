// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package deploy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sentia/azdeploy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promptSubs = []azdeploy.Subscription{
	{ID: "sub-1", DisplayName: "Dev"},
	{ID: "sub-2", DisplayName: "Test"},
	{ID: "sub-3", DisplayName: "Prod"},
}

func TestPromptChooserParsesIndex(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	chooser := &promptChooser{in: strings.NewReader("1\n"), out: &out}

	i, err := chooser.Choose(promptSubs)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "[0] Dev (sub-1)")
	assert.Contains(t, out.String(), "[2] Prod (sub-3)")
}

func TestPromptChooserEmptyInputDefaultsToLast(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	chooser := &promptChooser{in: strings.NewReader("\n"), out: &out}

	i, err := chooser.Choose(promptSubs)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestPromptChooserEOFDefaultsToLast(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	chooser := &promptChooser{in: strings.NewReader(""), out: &out}

	i, err := chooser.Choose(promptSubs)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestPromptChooserRejectsGarbage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	chooser := &promptChooser{in: strings.NewReader("two\n"), out: &out}

	_, err := chooser.Choose(promptSubs)
	assert.Error(t, err)
}
