package rules

import (
	"fmt"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Supported auth types.
const (
	AuthManual  = "manual"
	AuthOAuth   = "oauth"
	AuthCookies = "cookies"
)

// oauthRedirectKey is the only field key an oauth block may declare.
const oauthRedirectKey = "oAuthRedirectUrl"

var authKinds = []PropertyKind{
	{"type", tsast.KindString},
	{"verifyCredentials", tsast.KindFunction},
	{"isStillVerified", tsast.KindFunction},
}

// authHooks must be present on every auth block of a supported type.
var authHooks = []string{"verifyCredentials", "isStillVerified"}

// cookieFieldProperties must all appear on the single cookies field.
var cookieFieldProperties = []string{"key", "label", "type", "required", "readOnly", "clickToCopy"}

// authType returns the lowercased literal auth type.
func authType(c *Context, props map[string]tsast.Property) (string, bool) {
	t, ok := c.Tree.StringValue(props["type"].Value)
	return strings.ToLower(t), ok
}

// AuthType dispatches on the literal auth type.
func AuthType(c *Context, obj *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(obj)
	t, ok := authType(c, props)
	if !ok {
		return nil
	}
	switch t {
	case AuthManual:
		return manualAuth(c, obj, props)
	case AuthOAuth:
		return singleFieldAuth(c, obj, props, oauthCodes)
	case AuthCookies:
		return singleFieldAuth(c, obj, props, cookieCodes)
	default:
		return []validator.Issue{withHint(
			c.Warning(codes.UnknownAuthType, fmt.Sprintf("Unknown auth type '%s'", t), props["type"].Value, validator.ComponentAuth),
			fmt.Sprintf("Use one of: %s, %s, %s", AuthManual, AuthOAuth, AuthCookies))}
	}
}

func manualAuth(c *Context, obj *tsast.Node, props map[string]tsast.Property) []validator.Issue {
	var out []validator.Issue
	spread := tsast.HasSpread(obj)
	p, ok := props["fields"]
	switch {
	case !ok && !spread:
		out = append(out, withHint(
			c.Error(codes.ManualMissingFields, "Manual auth must declare a 'fields' array", obj, validator.ComponentAuth),
			"Add the credential fields the user must fill in"))
	case ok && tsast.IsArray(p.Value) && len(tsast.Elements(p.Value)) == 0:
		out = append(out, withHint(
			c.Error(codes.ManualEmptyFields, "Manual auth 'fields' must not be empty", p.Value, validator.ComponentAuth),
			"Add at least one credential field"))
	}
	if spread {
		return out
	}
	if _, ok := props["verifyCredentials"]; !ok {
		out = append(out, c.Error(codes.ManualMissingVerify,
			"Manual auth must define 'verifyCredentials'", obj, validator.ComponentAuth))
	}
	if _, ok := props["isStillVerified"]; !ok {
		out = append(out, c.Error(codes.ManualMissingStillVerified,
			"Manual auth must define 'isStillVerified'", obj, validator.ComponentAuth))
	}
	return out
}

// singleFieldCodes are the codes one single-field auth flavor reports.
type singleFieldCodes struct {
	name           string
	missingHook    string
	missingFields  string
	fieldsNotArray string
	fieldCount     string
	notObject      string
	field          func(c *Context, field *tsast.Node) []validator.Issue
}

var oauthCodes = singleFieldCodes{
	name:           AuthOAuth,
	missingHook:    codes.OAuthMissingProperty,
	missingFields:  codes.OAuthMissingFieldsArray,
	fieldsNotArray: codes.OAuthFieldsNotArray,
	fieldCount:     codes.OAuthInvalidFieldCount,
	notObject:      codes.OAuthFieldNotObject,
	field:          oauthField,
}

var cookieCodes = singleFieldCodes{
	name:           AuthCookies,
	missingHook:    codes.CookiesMissingProperty,
	missingFields:  codes.CookiesMissingFieldsArray,
	fieldsNotArray: codes.CookiesFieldsNotArray,
	fieldCount:     codes.CookiesInvalidFieldCount,
	notObject:      codes.CookiesFieldNotObject,
	field:          cookieField,
}

// singleFieldAuth checks oauth and cookies blocks: both hooks present and
// exactly one object field.
func singleFieldAuth(c *Context, obj *tsast.Node, props map[string]tsast.Property, sc singleFieldCodes) []validator.Issue {
	var out []validator.Issue
	spread := tsast.HasSpread(obj)
	if !spread {
		for _, hook := range authHooks {
			if _, ok := props[hook]; ok {
				continue
			}
			out = append(out, c.Error(sc.missingHook,
				fmt.Sprintf("%s auth must define '%s'", sc.name, hook), obj, validator.ComponentAuth))
		}
	}

	p, ok := props["fields"]
	if !ok {
		if !spread {
			out = append(out, c.Error(sc.missingFields,
				fmt.Sprintf("%s auth must declare a 'fields' array with exactly one field", sc.name), obj, validator.ComponentAuth))
		}
		return out
	}
	switch tsast.KindOf(p.Value) {
	case tsast.KindUnknown:
		return append(out, c.Unverifiable(p, validator.ComponentAuth)...)
	case tsast.KindArray:
	default:
		return append(out, c.Error(sc.fieldsNotArray,
			fmt.Sprintf("%s auth 'fields' must be an array", sc.name), p.Value, validator.ComponentAuth))
	}

	elems := tsast.Elements(p.Value)
	if len(elems) != 1 {
		return append(out, c.Error(sc.fieldCount,
			fmt.Sprintf("%s auth 'fields' must contain exactly one field, found %d", sc.name, len(elems)), p.Value, validator.ComponentAuth))
	}
	switch tsast.KindOf(elems[0]) {
	case tsast.KindObject:
		out = append(out, sc.field(c, tsast.Unwrap(elems[0]))...)
	case tsast.KindUnknown:
	default:
		out = append(out, c.Error(sc.notObject,
			fmt.Sprintf("%s auth field must be an object literal", sc.name), elems[0], validator.ComponentAuth))
	}
	return out
}

func oauthField(c *Context, field *tsast.Node) []validator.Issue {
	p, ok := c.Tree.PropertyMap(field)["key"]
	if !ok {
		if tsast.HasSpread(field) {
			return nil
		}
		return []validator.Issue{withHint(
			c.Error(codes.OAuthInvalidFieldKey, "oauth field must have key 'oAuthRedirectUrl'", field, validator.ComponentAuth),
			fmt.Sprintf("Set key: %q", oauthRedirectKey))}
	}
	key, literal := c.Tree.StringValue(p.Value)
	if !literal && tsast.KindOf(p.Value) == tsast.KindUnknown {
		return nil
	}
	if key == oauthRedirectKey {
		return nil
	}
	return []validator.Issue{withHint(
		c.Error(codes.OAuthInvalidFieldKey, fmt.Sprintf("oauth field key must be '%s', got '%s'", oauthRedirectKey, c.Tree.Text(p.Value)), p.Value, validator.ComponentAuth),
		fmt.Sprintf("Set key: %q", oauthRedirectKey))}
}

func cookieField(c *Context, field *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(field)
	var out []validator.Issue
	if !tsast.HasSpread(field) {
		for _, name := range cookieFieldProperties {
			if _, ok := props[name]; ok {
				continue
			}
			out = append(out, c.Error(codes.CookiesFieldMissingProperty,
				fmt.Sprintf("cookies field is missing '%s'", name), field, validator.ComponentAuth))
		}
	}
	out = append(out, cookieFlag(c, props, "required", true, codes.CookiesRequiredNotTrue)...)
	out = append(out, cookieFlag(c, props, "readOnly", true, codes.CookiesReadOnlyNotTrue)...)
	out = append(out, cookieFlag(c, props, "clickToCopy", false, codes.CookiesClickToCopyNotFalse)...)
	return out
}

// cookieFlag requires a present literal flag to be exactly want.
func cookieFlag(c *Context, props map[string]tsast.Property, name string, want bool, code string) []validator.Issue {
	p, ok := props[name]
	if !ok || tsast.KindOf(p.Value) == tsast.KindUnknown {
		return nil
	}
	if v, isBool := tsast.BoolValue(p.Value); isBool && v == want {
		return nil
	}
	return []validator.Issue{withHint(
		c.Error(code, fmt.Sprintf("cookies field '%s' must be %t", name, want), p.Value, validator.ComponentAuth),
		fmt.Sprintf("Set %s: %t", name, want))}
}

// AuthFields runs the field rules over the auth fields. Cookies fields get
// only the type-specific rules; their required properties belong to the
// cookies checks.
func AuthFields(c *Context, obj *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(obj)
	p, ok := props["fields"]
	if !ok {
		return nil
	}
	t, _ := authType(c, props)
	switch t {
	case AuthCookies:
		if !tsast.IsArray(p.Value) {
			return nil
		}
		var out []validator.Issue
		for _, el := range tsast.Elements(p.Value) {
			if tsast.IsObject(el) {
				out = append(out, FieldType(c, tsast.Unwrap(el))...)
			}
		}
		return out
	case AuthOAuth:
		if tsast.IsArray(p.Value) {
			return c.FieldList(tsast.Elements(p.Value), "")
		}
		return nil
	}

	switch tsast.KindOf(p.Value) {
	case tsast.KindArray:
		return c.FieldList(tsast.Elements(p.Value), codes.FieldNotObject)
	case tsast.KindUnknown:
		return c.Unverifiable(p, validator.ComponentAuth)
	default:
		return []validator.Issue{c.InvalidType(p, tsast.KindArray, validator.ComponentAuth)}
	}
}
