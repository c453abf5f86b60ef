package rules

import (
	"fmt"
	"strings"

	"github.com/fulldiveVR/codex/internal/codes"
	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// Trigger types.
const (
	TriggerMessaging = "messaging"
	TriggerWebhook   = "webhook"
	TriggerPolling   = "polling"
	TriggerInternal  = "internal"
)

// TriggerTypes lists the accepted trigger types.
var TriggerTypes = []string{TriggerMessaging, TriggerWebhook, TriggerPolling, TriggerInternal}

var triggerKinds = []PropertyKind{
	{"name", tsast.KindString},
	{"key", tsast.KindString},
	{"type", tsast.KindString},
	{"description", tsast.KindString},
	{"run", tsast.KindFunction},
	{"testRun", tsast.KindFunction},
	{"filter", tsast.KindFunction},
	{"getInterval", tsast.KindFunction},
	{"showWebhookUrl", tsast.KindBool},
	{"pollIntervalOptions", tsast.KindArray},
}

// hookFunctions must be function-like on webhook and messaging triggers.
var hookFunctions = []string{"registerHook", "unregisterHook", "getRespondingAction"}

// TriggerType validates the literal trigger type and the properties that
// depend on it.
func TriggerType(c *Context, obj *tsast.Node) []validator.Issue {
	props := c.Tree.PropertyMap(obj)
	p, ok := props["type"]
	if !ok {
		return nil
	}
	raw, ok := c.Tree.StringValue(p.Value)
	if !ok {
		return nil
	}

	switch t := strings.ToLower(raw); t {
	case TriggerPolling:
		return pollingTrigger(c, obj, props)
	case TriggerWebhook, TriggerMessaging:
		var out []validator.Issue
		for _, name := range hookFunctions {
			if hp, ok := props[name]; ok {
				out = append(out, c.CheckKind(hp, tsast.KindFunction, validator.ComponentTriggers)...)
			}
		}
		return out
	case TriggerInternal:
		return nil
	default:
		return []validator.Issue{withHint(
			c.Error(codes.InvalidTriggerType, fmt.Sprintf("Invalid trigger type '%s'", raw), p.Value, validator.ComponentTriggers),
			"Use one of: "+strings.Join(TriggerTypes, ", "))}
	}
}

func pollingTrigger(c *Context, obj *tsast.Node, props map[string]tsast.Property) []validator.Issue {
	var out []validator.Issue
	if p, ok := props["pollInterval"]; ok {
		out = append(out, c.CheckKind(p, tsast.KindNumber, validator.ComponentTriggers)...)
	}
	if _, ok := props["run"]; !ok && !tsast.HasSpread(obj) {
		out = append(out, withHint(
			c.Warning(codes.TriggerMissingRun, "Polling trigger has no 'run' function", obj, validator.ComponentTriggers),
			"Add a run function unless the trigger is scheduled externally"))
	}
	return out
}
