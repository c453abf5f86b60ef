// Package codes defines the stable issue codes emitted by the validators.
// Codes are part of the output contract; consumers match on them.
package codes

// Structural codes for the descriptor as a whole.
const (
	ParseError          = "STRUCTURE_PARSE_ERROR"
	MissingDefineApp    = "STRUCTURE_MISSING_DEFINEAPP"
	DefineAppNoArgs     = "STRUCTURE_DEFINEAPP_NO_ARGS"
	DefineAppNotObject  = "STRUCTURE_DEFINEAPP_NOT_OBJECT"
	MissingProperty     = "STRUCTURE_MISSING_PROPERTY"
	InvalidType         = "STRUCTURE_INVALID_TYPE"
	UnknownProperty     = "STRUCTURE_UNKNOWN_PROPERTY"
	NestedActions       = "STRUCTURE_NESTED_ACTIONS"
	InvalidKey          = "STRUCTURE_INVALID_KEY"
	DuplicateKey        = "STRUCTURE_DUPLICATE_KEY"
	UnverifiableValue   = "STRUCTURE_UNVERIFIABLE_VALUE"
	FieldNotObject      = "STRUCTURE_FIELD_NOT_OBJECT"
	UnknownAuthType     = "STRUCTURE_UNKNOWN_AUTH_TYPE"
	InvalidTriggerType  = "STRUCTURE_INVALID_TRIGGER_TYPE"
	TriggerMissingRun   = "STRUCTURE_TRIGGER_MISSING_RUN"
	ArgumentMissing     = "STRUCTURE_ARGUMENT_MISSING_FIELD"
	ActionNotAsync      = "STRUCTURE_ACTION_NOT_ASYNC"
	ActionMissingImpl   = "STRUCTURE_ACTION_MISSING_IMPLEMENTATION"
	DropdownOptionField = "STRUCTURE_DROPDOWN_OPTION_MISSING_PROPERTY"
	DynamicFieldFields  = "STRUCTURE_DYNAMIC_FIELD_MISSING_FIELDS"
)

// Collection and element shape codes.
const (
	ActionsNotArray           = "STRUCTURE_ACTIONS_NOT_ARRAY"
	ActionsEmpty              = "STRUCTURE_ACTIONS_EMPTY"
	InvalidActionDefinition   = "STRUCTURE_INVALID_ACTION_DEFINITION"
	ActionNoArgs              = "STRUCTURE_ACTION_NO_ARGS"
	ActionNotObject           = "STRUCTURE_ACTION_NOT_OBJECT"
	TriggersNotArray          = "STRUCTURE_TRIGGERS_NOT_ARRAY"
	TriggerNoArgs             = "STRUCTURE_TRIGGER_NO_ARGS"
	TriggerNotObject          = "STRUCTURE_TRIGGER_NOT_OBJECT"
	InvalidTriggerDefinition  = "STRUCTURE_INVALID_TRIGGER_DEFINITION"
	DynamicFieldsNotArray     = "STRUCTURE_DYNAMIC_FIELDS_NOT_ARRAY"
	DynamicDataNotArray       = "STRUCTURE_DYNAMIC_DATA_NOT_ARRAY"
	InvalidProviderDefinition = "STRUCTURE_INVALID_PROVIDER_DEFINITION"
)

// Auth codes.
const (
	AuthNotObject               = "STRUCTURE_AUTH_NOT_OBJECT"
	ManualMissingFields         = "STRUCTURE_MANUAL_MISSING_FIELDS"
	ManualEmptyFields           = "STRUCTURE_MANUAL_EMPTY_FIELDS"
	ManualMissingVerify         = "STRUCTURE_MISSING_VERIFYCREDENTIALS_MANUAL"
	ManualMissingStillVerified  = "STRUCTURE_MISSING_ISSTILLVERIFIED_MANUAL"
	OAuthMissingProperty        = "STRUCTURE_OAUTH_MISSING_PROPERTY"
	OAuthMissingFieldsArray     = "STRUCTURE_OAUTH_MISSING_FIELDS_ARRAY"
	OAuthFieldsNotArray         = "STRUCTURE_OAUTH_FIELDS_NOT_ARRAY"
	OAuthInvalidFieldCount      = "STRUCTURE_OAUTH_INVALID_FIELD_COUNT"
	OAuthFieldNotObject         = "STRUCTURE_OAUTH_FIELD_NOT_OBJECT"
	OAuthInvalidFieldKey        = "STRUCTURE_OAUTH_INVALID_FIELD_KEY"
	CookiesMissingProperty      = "STRUCTURE_COOKIES_MISSING_PROPERTY"
	CookiesMissingFieldsArray   = "STRUCTURE_COOKIES_MISSING_FIELDS_ARRAY"
	CookiesFieldsNotArray       = "STRUCTURE_COOKIES_FIELDS_NOT_ARRAY"
	CookiesInvalidFieldCount    = "STRUCTURE_COOKIES_INVALID_FIELD_COUNT"
	CookiesFieldNotObject       = "STRUCTURE_COOKIES_FIELD_NOT_OBJECT"
	CookiesFieldMissingProperty = "STRUCTURE_COOKIES_FIELD_MISSING_PROPERTY"
	CookiesRequiredNotTrue      = "STRUCTURE_COOKIES_REQUIRED_NOT_TRUE"
	CookiesReadOnlyNotTrue      = "STRUCTURE_COOKIES_READONLY_NOT_TRUE"
	CookiesClickToCopyNotFalse  = "STRUCTURE_COOKIES_CLICKTOCOPY_NOT_FALSE"
)

// dependsOn codes.
const (
	DependsOnNotArray    = "STRUCTURE_DEPENDSON_NOT_ARRAY"
	DependsOnEmpty       = "STRUCTURE_DEPENDSON_EMPTY"
	DependsOnInvalidItem = "STRUCTURE_DEPENDSON_INVALID_ITEM"
	DuplicateDependsOn   = "STRUCTURE_DUPLICATE_DEPENDSON"
)

// Pipeline codes.
const (
	NotCode         = "VALIDATION_NOT_CODE"
	Timeout         = "VALIDATION_TIMEOUT"
	CompilerAdapter = "COMPILER_ADAPTER_ERROR"
	SyntaxError     = "SYNTAX_ERROR"
	SyntaxMissing   = "SYNTAX_MISSING_TOKEN"
)

// Legacy heuristic codes.
const (
	LegacyMissingExport = "LEGACY_MISSING_DEFINEAPP_EXPORT"
	LegacyMissingImport = "LEGACY_MISSING_DEFINEAPP_IMPORT"
	LegacyUnbalanced    = "LEGACY_UNBALANCED_BRACKETS"
)

// CompilerPrefix prefixes numeric compiler diagnostics, e.g. TS2322.
const CompilerPrefix = "TS"
