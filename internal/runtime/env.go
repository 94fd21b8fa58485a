// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"sort"
	"strings"
)

// ExecutionIDEnvVar is set in every child environment.
const ExecutionIDEnvVar = "RUNWITH_EXECUTION_ID"

// buildEnv merges the parent environment (when inherited) with the
// configuration's overlay. Overlay values win.
func buildEnv(inheritParent bool, overlay map[string]string) map[string]string {
	env := make(map[string]string)
	if inheritParent {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
				env[k] = v
			}
		}
	}
	for k, v := range overlay {
		env[k] = v
	}
	return env
}

// envToSlice renders env as sorted KEY=VALUE pairs.
func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
