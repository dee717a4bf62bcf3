package builtins

import "scriptbox/internal/runtime"

// InstallDefaults wires every default binding this package provides onto
// en: numeric arithmetic/comparisons/conversions, bool logic, string
// operators and members, vector members, and the assert/math/print
// globals. Called once per freshly-built Engine before any script runs.
func InstallDefaults(en *runtime.Engine) {
	installNumeric(en)
	installStrings(en)
	installVector(en)
	installGlobals(en)
}
