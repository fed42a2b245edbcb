package config

import (
	"slices"
	"strings"
)

// Actions the key handler understands.
const (
	ActionQuit           = "quit"
	ActionCloseWindow    = "close_window"
	ActionToggleMaximize = "toggle_maximize"
	ActionMinimize       = "minimize_window"
	ActionRestore        = "restore_window"
	ActionToggleHelp     = "toggle_help"
)

// ActionDescriptions names every bindable action.
var ActionDescriptions = map[string]string{
	ActionQuit:           "Quit",
	ActionCloseWindow:    "Close window",
	ActionToggleMaximize: "Maximize or restore",
	ActionMinimize:       "Minimize window",
	ActionRestore:        "Restore from dock",
	ActionToggleHelp:     "Toggle help",
}

// actionOrder is the order bindings are listed in help output.
var actionOrder = []string{
	ActionToggleMaximize,
	ActionMinimize,
	ActionRestore,
	ActionCloseWindow,
	ActionToggleHelp,
	ActionQuit,
}

func defaultActions() map[string][]string {
	return map[string][]string{
		ActionQuit:           {"q", "ctrl+c"},
		ActionCloseWindow:    {"x"},
		ActionToggleMaximize: {"m"},
		ActionMinimize:       {"n"},
		ActionRestore:        {"r"},
		ActionToggleHelp:     {"?"},
	}
}

// Keybinding is a single help entry.
type Keybinding struct {
	Key         string
	Description string
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	keys    map[string][]string
	actions map[string]string
}

// NewKeybindRegistry builds a registry from the defaults overlaid with cfg.
func NewKeybindRegistry(cfg *Config) *KeybindRegistry {
	normalizer := NewKeyNormalizer()
	merged := defaultActions()
	if cfg != nil {
		for action, keys := range cfg.Keybindings.Actions {
			merged[action] = keys
		}
	}

	r := &KeybindRegistry{
		keys:    make(map[string][]string, len(merged)),
		actions: make(map[string]string),
	}
	for action, keys := range merged {
		r.keys[action] = keys
		for _, key := range keys {
			for _, k := range normalizer.NormalizeKey(key) {
				r.actions[k] = action
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.keys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	return r.actions[strings.ToLower(key)]
}

// GetKeysForDisplay joins the keys of action for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return strings.Join(r.keys[action], "/")
}

// GetKeybindings lists the bound actions in help order.
func GetKeybindings(registry *KeybindRegistry) []Keybinding {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}
	bindings := make([]Keybinding, 0, len(actionOrder))
	for _, action := range actionOrder {
		if keys := registry.GetKeysForDisplay(action); keys != "" {
			bindings = append(bindings, Keybinding{Key: keys, Description: ActionDescriptions[action]})
		}
	}
	return bindings
}

// KeyNormalizer maps user-written key names onto the names Bubble Tea
// reports.
type KeyNormalizer struct {
	aliases map[string][]string
}

// NewKeyNormalizer returns a normalizer with the common aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string][]string{
		"return": {"enter"},
		"enter":  {"return"},
		"esc":    {"escape"},
		"escape": {"esc"},
		"del":    {"delete"},
		"delete": {"del"},
	}}
}

// NormalizeKey returns the lowercase key followed by its aliases.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	return append([]string{key}, n.aliases[key]...)
}

// ValidateKey reports whether key can be bound, with a reason when not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	parts := strings.Split(strings.ToLower(key), "+")
	if slices.Contains(parts, "") {
		return false, "malformed key " + key
	}
	return true, ""
}
