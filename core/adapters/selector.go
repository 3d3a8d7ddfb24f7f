// ABOUTME: Adapter selection by source URL host
// ABOUTME: Exact host table plus an explicit policy for hosts nobody registered

package adapters

import (
	"fmt"
	"net/url"
	"strings"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
)

// UnknownSourcePolicy decides what happens to URLs whose host has no adapter
type UnknownSourcePolicy string

const (
	// PolicyDefault routes unknown hosts to the first registered adapter
	PolicyDefault UnknownSourcePolicy = "default"

	// PolicyGeneric routes unknown hosts to the readability-based generic adapter
	PolicyGeneric UnknownSourcePolicy = "generic"

	// PolicyReject fails with an UnsupportedSourceError
	PolicyReject UnknownSourcePolicy = "reject"
)

// ParsePolicy validates a policy name
func ParsePolicy(s string) (UnknownSourcePolicy, error) {
	switch p := UnknownSourcePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyDefault, PolicyGeneric, PolicyReject:
		return p, nil
	case "":
		return PolicyDefault, nil
	default:
		return "", fmt.Errorf("unknown source policy %q", s)
	}
}

// Selector maps article URLs to adapters
type Selector struct {
	adapters []Adapter
	byHost   map[string]Adapter
	byID     map[domain.SourceID]Adapter
	policy   UnknownSourcePolicy
	generic  Adapter
}

// NewSelector registers adapters in order. The first one is the default for
// PolicyDefault; generic serves PolicyGeneric and may be nil otherwise.
func NewSelector(policy UnknownSourcePolicy, generic Adapter, adapters ...Adapter) *Selector {
	s := &Selector{
		byHost:  make(map[string]Adapter),
		byID:    make(map[domain.SourceID]Adapter),
		policy:  policy,
		generic: generic,
	}
	for _, a := range adapters {
		s.adapters = append(s.adapters, a)
		s.byID[a.ID()] = a
		for _, host := range a.Hosts() {
			host = strings.ToLower(host)
			if _, taken := s.byHost[host]; !taken {
				s.byHost[host] = a
			}
		}
	}
	if generic != nil {
		s.byID[generic.ID()] = generic
	}
	return s
}

// Select returns the adapter for the article URL
func (s *Selector) Select(rawURL string) (Adapter, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "source", Message: "must be an absolute URL"}
	}
	host := strings.ToLower(u.Hostname())
	if a, ok := s.byHost[host]; ok {
		return a, nil
	}

	switch s.policy {
	case PolicyReject:
		return nil, &coreerrors.UnsupportedSourceError{Host: host}
	case PolicyGeneric:
		if s.generic != nil {
			return s.generic, nil
		}
	}
	if len(s.adapters) == 0 {
		return nil, &coreerrors.UnsupportedSourceError{Host: host}
	}
	return s.adapters[0], nil
}

// ByID looks an adapter up by source ID
func (s *Selector) ByID(id domain.SourceID) (Adapter, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Adapters returns the registered adapters in registration order
func (s *Selector) Adapters() []Adapter {
	return append([]Adapter(nil), s.adapters...)
}

// Policy returns the unknown host policy
func (s *Selector) Policy() UnknownSourcePolicy {
	return s.policy
}
