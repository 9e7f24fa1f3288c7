// Copyright 2025 ldx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package console dispatches commands to the LDPlayer console executable
// and parses its textual output into typed results.
package console

import "slices"

// Console command taxonomy. The console executable exposes one flat
// command namespace; these lists drive argument validation and batch
// dispatch.
var (
	// SimpleExec are execution commands with no parameters.
	SimpleExec = []string{"rock", "zoomOut", "zoomIn", "sortWnd", "quitall"}

	// VariedExec are execution commands that take parameters.
	VariedExec = []string{
		"quit",
		"launch",
		"reboot",
		"copy",
		"add",
		"remove",
		"rename",
		"installapp",
		"uninstallapp",
		"runapp",
		"killapp",
		"locate",
		"adb",
		"setprop",
		"downcpu",
		"backup",
		"restore",
		"action",
		"scan",
		"pull",
		"push",
		"backupapp",
		"restoreapp",
		"launchex",
	}

	// SimpleQuery are query commands with no parameters.
	SimpleQuery = []string{"list", "runninglist"}

	// VariedQuery are query commands that take parameters.
	VariedQuery = []string{"isrunning", "getprop", "operatelist", "operateinfo", "list3"}

	// Batchable are commands that may be dispatched to multiple
	// instances in one invocation.
	Batchable = []string{
		"modify",
		"quit",
		"launch",
		"reboot",
		"installapp",
		"uninstallapp",
		"runapp",
		"killapp",
		"pull",
		"push",
		"backupapp",
		"restoreapp",
		"launchex",
		"operaterecord",
	}

	// Other are commands with custom handling logic.
	Other = []string{"list2", "modify", "globalsetting", "operaterecord"}
)

// All returns every known console command.
func All() []string {
	out := make([]string, 0,
		len(SimpleExec)+len(VariedExec)+len(SimpleQuery)+len(VariedQuery)+len(Other))
	out = append(out, SimpleExec...)
	out = append(out, VariedExec...)
	out = append(out, SimpleQuery...)
	out = append(out, VariedQuery...)
	out = append(out, Other...)
	return out
}

// IsKnown reports whether name is a console command.
func IsKnown(name string) bool {
	return slices.Contains(All(), name)
}

// IsBatchable reports whether name supports batch execution.
func IsBatchable(name string) bool {
	return slices.Contains(Batchable, name)
}
