// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package main

import "github.com/sentia/azdeploy/cmd/azdeploytool/command"

func main() {
	command.Execute()
}
