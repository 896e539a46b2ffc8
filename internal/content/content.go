// Package content holds the static texts the bot answers with. The catalog
// is loaded once at startup and is read-only afterwards.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/haven/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// Intent actions.
const (
	ActionReply  = "reply"
	ActionCoping = "coping"
)

type Catalog struct {
	Coping             map[domain.Tier][]string `yaml:"coping"`
	Empathy            []string                 `yaml:"empathy"`
	Affirmations       []string                 `yaml:"affirmations"`
	PositiveInvitation string                   `yaml:"positive_invitation"`
	CrisisKeywords     []string                 `yaml:"crisis_keywords"`
	Intents            []IntentRule             `yaml:"intents"`
	Fallback           string                   `yaml:"fallback"`
	Session            SessionTexts             `yaml:"session"`
}

// IntentRule maps keywords to a fixed reply for neutral input.
type IntentRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
	Action   string   `yaml:"action"`
}

// SessionTexts are the texts the shells print around a conversation.
type SessionTexts struct {
	Welcome    string `yaml:"welcome"`
	Disclaimer string `yaml:"disclaimer"`
	ExitHint   string `yaml:"exit_hint"`
	Farewell   string `yaml:"farewell"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i := range c.Intents {
		if c.Intents[i].Action == "" {
			c.Intents[i].Action = ActionReply
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate fails on any empty pool or text.
func (c *Catalog) Validate() error {
	var errs []error

	for _, tier := range domain.Tiers {
		if err := checkPool("coping."+string(tier), c.Coping[tier]); err != nil {
			errs = append(errs, err)
		}
	}
	for tier := range c.Coping {
		if !knownTier(tier) {
			errs = append(errs, fmt.Errorf("unknown coping tier %q", tier))
		}
	}

	pools := []struct {
		name  string
		items []string
	}{
		{"empathy", c.Empathy},
		{"affirmations", c.Affirmations},
		{"crisis_keywords", c.CrisisKeywords},
	}
	for _, p := range pools {
		if err := checkPool(p.name, p.items); err != nil {
			errs = append(errs, err)
		}
	}

	texts := []struct {
		name string
		text string
	}{
		{"positive_invitation", c.PositiveInvitation},
		{"fallback", c.Fallback},
		{"session.welcome", c.Session.Welcome},
		{"session.farewell", c.Session.Farewell},
	}
	for _, tx := range texts {
		if strings.TrimSpace(tx.text) == "" {
			errs = append(errs, fmt.Errorf("text %q is empty", tx.name))
		}
	}

	for i, r := range c.Intents {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("intent #%d has no name", i))
		}
		if err := checkPool("intents."+r.Name+".keywords", r.Keywords); err != nil {
			errs = append(errs, err)
		}
		switch r.Action {
		case ActionReply:
			if strings.TrimSpace(r.Reply) == "" {
				errs = append(errs, fmt.Errorf("intent %q has no reply", r.Name))
			}
		case ActionCoping:
		default:
			errs = append(errs, fmt.Errorf("intent %q: unknown action %q", r.Name, r.Action))
		}
	}

	return errors.Join(errs...)
}

func knownTier(t domain.Tier) bool {
	for _, k := range domain.Tiers {
		if k == t {
			return true
		}
	}
	return false
}

// checkPool rejects empty pools and blank entries; either would surface
// as an empty reply at call time.
func checkPool(name string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("pool %q is empty", name)
	}
	for i, s := range items {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("pool %q: entry %d is blank", name, i)
		}
	}
	return nil
}
