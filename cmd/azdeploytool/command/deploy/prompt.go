// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package deploy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sentia/azdeploy"
)

// promptChooser is the interactive subscription chooser. It lists the
// available subscriptions once and blocks for a single line of input; an
// empty line selects the last-listed entry.
type promptChooser struct {
	in  io.Reader
	out io.Writer
}

// Choose implements azdeploy.SubscriptionChooser.
func (c *promptChooser) Choose(subs []azdeploy.Subscription) (int, error) {
	fmt.Fprintln(c.out, "Available subscriptions:")
	for i, sub := range subs {
		fmt.Fprintf(c.out, "  [%d] %s (%s)\n", i, sub.DisplayName, sub.ID)
	}
	fmt.Fprintf(c.out, "Select subscription [%d]: ", len(subs)-1)

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return len(subs) - 1, nil
	}
	i, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q: %w", line, err)
	}
	return i, nil
}
