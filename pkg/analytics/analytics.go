// Package analytics turns dispatched actions and screen views into analytics
// records and hands them to a Provider.
package analytics

import (
	"time"
)

// Record types.
const (
	TypeAction = "action"
	TypeScreen = "screen"
)

// Config is the provider-wide analytics configuration. Actions maps an action
// type (e.g. "sdui:confirm") to the attributes recorded for it; actions not
// listed produce no record unless they carry their own configuration.
type Config struct {
	EnableScreenAnalytics bool                `json:"enableScreenAnalytics" yaml:"enableScreenAnalytics"`
	Actions               map[string][]string `json:"actions" yaml:"actions"`
}

// ComponentRef identifies the component that raised an event.
type ComponentRef struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

// Record is one analytics event.
type Record struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Platform          string         `json:"platform,omitempty"`
	Screen            string         `json:"screen,omitempty"`
	Event             string         `json:"event,omitempty"`
	ActionType        string         `json:"actionType,omitempty"`
	Component         ComponentRef   `json:"component,omitempty"`
	Attributes        map[string]any `json:"attributes,omitempty"`
	AdditionalEntries map[string]any `json:"additionalEntries,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
}

// Provider receives analytics records.
type Provider interface {
	Config() Config
	CreateRecord(record Record)
}

// Multi fans records out to several providers. Its config enables screen
// analytics when any provider does and merges the action attributes.
func Multi(providers ...Provider) Provider {
	filtered := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return multiProvider(filtered)
}

type multiProvider []Provider

func (m multiProvider) Config() Config {
	merged := Config{Actions: map[string][]string{}}
	for _, p := range m {
		cfg := p.Config()
		merged.EnableScreenAnalytics = merged.EnableScreenAnalytics || cfg.EnableScreenAnalytics
		for actionType, attrs := range cfg.Actions {
			merged.Actions[actionType] = appendUnique(merged.Actions[actionType], attrs...)
		}
	}
	return merged
}

func (m multiProvider) CreateRecord(record Record) {
	for _, p := range m {
		p.CreateRecord(record)
	}
}

func appendUnique(dst []string, values ...string) []string {
	if dst == nil {
		dst = []string{}
	}
	for _, v := range values {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
