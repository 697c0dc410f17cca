package parser

// hintDatabase maps diagnostic codes to concise, actionable fix hints.
// Keys are codes as they appear in Diagnostic.Code.
var hintDatabase = map[string]string{
	// --- tsc ---
	"TS1005": "Check for a missing token (comma, semicolon, bracket) near the reported position.",
	"TS2304": "Declare the name or import it before use.",
	"TS2305": "The module has no such export — check the export name and spelling.",
	"TS2307": "Install the module or fix the import path; check tsconfig paths/baseUrl.",
	"TS2322": "Adjust the value or widen/narrow the declared type so both sides match.",
	"TS2339": "The property does not exist on the type — check spelling or extend the type.",
	"TS2345": "The argument type does not match the parameter — convert or fix the call site.",
	"TS2349": "The expression is not callable — check that it is a function, not a value.",
	"TS2355": "Add a return statement for every code path, or declare the return type void.",
	"TS2551": "Likely a typo — the compiler suggests a similarly named member.",
	"TS2571": "Narrow the unknown value with a type guard before using it.",
	"TS2741": "Add the missing property, or mark it optional on the target type.",
	"TS6133": "Remove the unused declaration, or prefix with _ if intentionally unused.",
	"TS7006": "Add an explicit type annotation; the parameter implicitly has type any.",
	"TS7053": "Add an index signature to the type, or use a typed key.",
	"TS18003": "The tsconfig matches no input files — check include/files globs.",
	"TS18046": "Narrow the unknown error value (e.g. instanceof Error) before accessing members.",

	// --- linter categories ---
	"no-unused-vars":            "Remove the unused variable, or prefix with _ if intentionally unused.",
	"no-undef":                  "Declare the variable or import it before use.",
	"no-console":                "Remove console.log statements or use a proper logger.",
	"no-debugger":               "Remove the debugger statement before committing.",
	"eqeqeq":                    "Use === and !== instead of == and != for strict equality.",
	"no-var":                    "Use let or const instead of var.",
	"prefer-const":              "Use const for variables that are never reassigned.",
	"no-explicit-any":           "Replace any with a concrete type or unknown plus a type guard.",
	"no-floating-promises":      "Await the promise, or explicitly mark it with void.",
	"no-async-promise-executor": "Remove async from the Promise executor — throw will silently fail.",
	"no-empty":                  "Remove the empty block, or add a comment explaining why it is empty.",
}

// EnrichHints populates the Hint field of each Diagnostic from the static
// hint database. Pre-existing hints are preserved.
func EnrichHints(diags []Diagnostic) []Diagnostic {
	for i := range diags {
		if diags[i].Hint != "" {
			continue
		}
		if hint, ok := hintDatabase[diags[i].Code]; ok {
			diags[i].Hint = hint
		}
	}
	return diags
}
