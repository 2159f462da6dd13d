package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the session-level bindings. Every other key goes to the prompt.
type KeyMap struct {
	Quit key.Binding
	Skip key.Binding
}

// NewKeyMap builds bindings from comma-separated key names such as "ctrl+c" or "right,tab".
func NewKeyMap(quit, skip string) (KeyMap, error) {
	quitKeys := splitKeys(quit)
	skipKeys := splitKeys(skip)
	if len(quitKeys) == 0 {
		return KeyMap{}, fmt.Errorf("quit key must not be empty")
	}
	if len(skipKeys) == 0 {
		return KeyMap{}, fmt.Errorf("skip key must not be empty")
	}
	for _, q := range quitKeys {
		for _, s := range skipKeys {
			if q == s {
				return KeyMap{}, fmt.Errorf("key %q is bound to both quit and skip", q)
			}
		}
	}
	return KeyMap{
		Quit: key.NewBinding(key.WithKeys(quitKeys...), key.WithHelp(strings.Join(quitKeys, "/"), "quit")),
		Skip: key.NewBinding(key.WithKeys(skipKeys...), key.WithHelp(strings.Join(skipKeys, "/"), "skip")),
	}, nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}
