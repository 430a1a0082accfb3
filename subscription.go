// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"errors"
	"fmt"
)

// SubscriptionChooser picks one entry from a list of two or more
// subscriptions and returns its index. The interactive CLI implementation
// prompts on the terminal; tests supply a function.
type SubscriptionChooser interface {
	Choose(subs []Subscription) (int, error)
}

// SubscriptionChooserFunc adapts a function to the SubscriptionChooser interface.
type SubscriptionChooserFunc func(subs []Subscription) (int, error)

// Choose implements SubscriptionChooser.
func (f SubscriptionChooserFunc) Choose(subs []Subscription) (int, error) {
	return f(subs)
}

// SelectSubscription selects exactly one subscription. A single available
// subscription is selected without consulting the chooser; with more than one
// the chooser is invoked and its result bounds-checked. No subscriptions is
// an error.
func SelectSubscription(subs []Subscription, chooser SubscriptionChooser) (Subscription, error) {
	switch len(subs) {
	case 0:
		return Subscription{}, ErrNoSubscriptions
	case 1:
		return subs[0], nil
	}
	if chooser == nil {
		return Subscription{}, errors.New("multiple subscriptions available but no chooser supplied")
	}
	i, err := chooser.Choose(subs)
	if err != nil {
		return Subscription{}, fmt.Errorf("subscription choice: %w", err)
	}
	if i < 0 || i >= len(subs) {
		return Subscription{}, &InvalidSelectionError{Index: i, Count: len(subs)}
	}
	return subs[i], nil
}
