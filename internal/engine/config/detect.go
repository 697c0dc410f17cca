package config

// Runtime represents the detected JavaScript runtime/package manager.
type Runtime string

const (
	// RuntimeBun indicates a Bun project (detected by its lockfile).
	RuntimeBun Runtime = "bun"
	// RuntimeNode indicates a Node.js project (detected by an npm/yarn/pnpm lockfile).
	RuntimeNode Runtime = "node"
)

// lockfileMarkers maps lockfile names to their runtime. Bun markers are
// listed first so a project carrying both lockfiles resolves to bun.
var lockfileMarkers = []struct {
	file    string
	runtime Runtime
}{
	{"bun.lockb", RuntimeBun},
	{"bun.lock", RuntimeBun},
	{"package-lock.json", RuntimeNode},
	{"yarn.lock", RuntimeNode},
	{"pnpm-lock.yaml", RuntimeNode},
}

// DetectRuntime scans file names for well-known lockfiles and returns the
// detected runtime. Pure function — no I/O. Defaults to bun when nothing
// matches, since the wrapped test runner is bun's.
func DetectRuntime(files []string) Runtime {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	for _, m := range lockfileMarkers {
		if present[m.file] {
			return m.runtime
		}
	}
	return RuntimeBun
}

// GenerateConfigYAML produces a tsgate.yaml configuration string for the
// detected runtime. Commands use the runtime's own script runner so locally
// installed tool versions win over globals.
func GenerateConfigYAML(rt Runtime) string {
	runner := "bunx"
	test := "bun test"
	if rt == RuntimeNode {
		runner = "npx"
		test = "npx bun test"
	}

	return `# tsgate configuration
# Wraps the TypeScript toolchain and reports structured diagnostics.
# Docs: https://github.com/tsgate/tsgate
version: 1

defaults:
  timeout: 60s
  # container: "oven/bun:1"   # uncomment to run tools in a sandbox

tools:
  - name: typecheck
    command: "` + runner + ` tsc --noEmit --pretty false"
    parser: tsc
    config: tsconfig.json

  - name: lint
    command: "` + runner + ` oxlint --format json ."
    parser: lint-json

  - name: test
    command: "` + test + `"
    parser: bun-test
    timeout: 120s
`
}
