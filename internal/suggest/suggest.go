// Package suggest maps issues to remediation text.
//
// Lookup is two-tiered: a suggestion embedded in the issue wins, otherwise
// the fixed catalog keyed by issue code is consulted. Unknown codes yield
// the empty string; For never fails.
package suggest

import (
	"slices"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Entry is one catalog row.
type Entry struct {
	Code string `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
}

var catalog = map[string]string{
	codes.ParseError:          "Fix the syntax error reported at this location; structural checks need a parseable file.",
	codes.MissingDefineApp:    "Add the export: `export default defineApp({ ... })`.",
	codes.DefineAppNoArgs:     "Pass the plugin config object to defineApp({ ... }).",
	codes.DefineAppNotObject:  "Inline the config as an object literal inside defineApp({ ... }).",
	codes.MissingProperty:     "Add the missing property to the definition.",
	codes.InvalidType:         "Change the value to the expected type.",
	codes.UnknownProperty:     "Remove the property or check its spelling.",
	codes.NestedActions:       "Move 'actions' to the top level of the defineApp config.",
	codes.InvalidKey:          "Use a key without spaces, e.g. replace spaces with dashes.",
	codes.DuplicateKey:        "Give each entry a unique key.",
	codes.UnverifiableValue:   "Inline a literal value if you want it checked statically.",
	codes.FieldNotObject:      "Declare each field as an object literal with key, label and type.",
	codes.UnknownAuthType:     "Set auth.type to one of: manual, oauth, cookies.",
	codes.InvalidTriggerType:  "Set the trigger type to one of: messaging, webhook, polling, internal.",
	codes.TriggerMissingRun:   "Add a run function that fetches new items for the polling trigger.",
	codes.ArgumentMissing:     "Give every argument a label, key, type and required flag.",
	codes.ActionNotAsync:      "Declare run/handler as an async function.",
	codes.ActionMissingImpl:   "Add an async run function that performs the action.",
	codes.DropdownOptionField: "Give every dropdown option a label and a value.",
	codes.DynamicFieldFields:  "Add a 'fields' array to the dynamic field.",

	codes.ActionsNotArray:           "Declare actions as an array: actions: [createAction({ ... })].",
	codes.ActionsEmpty:              "Add at least one action, or remove the empty actions array.",
	codes.InvalidActionDefinition:   "Declare each action as an object literal or createAction({ ... }).",
	codes.ActionNoArgs:              "Pass the action definition object to createAction({ ... }).",
	codes.ActionNotObject:           "Pass an object literal to createAction({ ... }).",
	codes.TriggersNotArray:          "Declare triggers as an array: triggers: [createTrigger({ ... })].",
	codes.TriggerNoArgs:             "Pass the trigger definition object to createTrigger({ ... }).",
	codes.TriggerNotObject:          "Pass an object literal to createTrigger({ ... }).",
	codes.InvalidTriggerDefinition:  "Declare each trigger as an object literal or createTrigger({ ... }).",
	codes.DynamicFieldsNotArray:     "Declare dynamicFields as an array of providers.",
	codes.DynamicDataNotArray:       "Declare dynamicData as an array of providers.",
	codes.InvalidProviderDefinition: "Declare each provider as an object literal with name, key and run.",

	codes.AuthNotObject:               "Declare auth as an object literal with a type.",
	codes.ManualMissingFields:         "Add the credential fields the user must fill in.",
	codes.ManualEmptyFields:           "Add at least one credential field.",
	codes.ManualMissingVerify:         "Add an async verifyCredentials function.",
	codes.ManualMissingStillVerified:  "Add an async isStillVerified function.",
	codes.OAuthMissingProperty:        "OAuth auth needs verifyCredentials and isStillVerified.",
	codes.OAuthMissingFieldsArray:     "Add fields: [{ key: \"oAuthRedirectUrl\", ... }].",
	codes.OAuthFieldsNotArray:         "Declare fields as an array with the single oAuthRedirectUrl field.",
	codes.OAuthInvalidFieldCount:      "OAuth auth takes exactly one field, oAuthRedirectUrl.",
	codes.OAuthFieldNotObject:         "Declare the oAuthRedirectUrl field as an object literal.",
	codes.OAuthInvalidFieldKey:        "Set the field key to \"oAuthRedirectUrl\".",
	codes.CookiesMissingProperty:      "Cookies auth needs verifyCredentials and isStillVerified.",
	codes.CookiesMissingFieldsArray:   "Add a fields array with exactly one cookie field.",
	codes.CookiesFieldsNotArray:       "Declare fields as an array with exactly one cookie field.",
	codes.CookiesInvalidFieldCount:    "Cookies auth takes exactly one field.",
	codes.CookiesFieldNotObject:       "Declare the cookie field as an object literal.",
	codes.CookiesFieldMissingProperty: "The cookie field needs key, label, type, required, readOnly and clickToCopy.",
	codes.CookiesRequiredNotTrue:      "Set required: true on the cookie field.",
	codes.CookiesReadOnlyNotTrue:      "Set readOnly: true on the cookie field.",
	codes.CookiesClickToCopyNotFalse:  "Set clickToCopy: false on the cookie field.",

	codes.DependsOnNotArray:    "Declare dependsOn as an array of field keys.",
	codes.DependsOnEmpty:       "Remove dependsOn if the field has no dependencies.",
	codes.DependsOnInvalidItem: "List field keys as strings in dependsOn.",
	codes.DuplicateDependsOn:   "Remove the repeated key from dependsOn.",

	codes.NotCode:         "Submit TypeScript source containing export default defineApp({ ... }).",
	codes.Timeout:         "Validation took too long; simplify the file or raise the timeout.",
	codes.CompilerAdapter: "Check the compiler setup with `appcheck doctor`.",
	codes.SyntaxError:     "Fix the syntax error at this location.",
	codes.SyntaxMissing:   "Insert the missing token at this location.",

	codes.LegacyMissingExport: "Add `export default defineApp({ ... })`.",
	codes.LegacyMissingImport: "Import defineApp from the plugin SDK.",
	codes.LegacyUnbalanced:    "Check that brackets, braces and parentheses are balanced.",
}

// compilerHint covers every TS<n> diagnostic.
const compilerHint = "Fix the TypeScript compiler diagnostic."

// For returns the remediation text for an issue.
func For(i validator.Issue) string {
	if i.Suggestion != "" {
		return i.Suggestion
	}
	if text, ok := catalog[i.Code]; ok {
		return text
	}
	if isCompilerCode(i.Code) {
		return compilerHint
	}
	return ""
}

// Lookup returns the catalog text for a code.
func Lookup(code string) (string, bool) {
	text, ok := catalog[code]
	return text, ok
}

// Codes lists the catalog sorted by code.
func Codes() []Entry {
	out := make([]Entry, 0, len(catalog))
	for code, text := range catalog {
		out = append(out, Entry{Code: code, Text: text})
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Code, b.Code) })
	return out
}

func isCompilerCode(code string) bool {
	digits, ok := strings.CutPrefix(code, codes.CompilerPrefix)
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
