package adapters

import (
	"testing"

	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/infrastructure/html/dom"
)

func newTestSelector(policy UnknownSourcePolicy) *Selector {
	generic := NewGeneric(func(s string) (interfaces.ParsedHTML, error) { return dom.ParseString(s) })
	return NewSelector(policy, generic, NewNHKEasy(), NewYasashii())
}

func TestSelector_ExactHostMatch(t *testing.T) {
	s := newTestSelector(PolicyDefault)

	tests := map[string]string{
		"https://www3.nhk.or.jp/news/easy/k10014/k10014.html": string(NHKEasyID),
		"https://WWW3.NHK.OR.JP:443/news/easy/x.html":         string(NHKEasyID),
		"https://news.web.nhk/news/easy/ne2024/ne2024.html":   string(NHKEasyID),
		"https://www.yasashii-news.jp/2024/12/18/snow/":       string(YasashiiID),
		"https://yasashii-news.jp/a":                          string(YasashiiID),
	}
	for rawURL, want := range tests {
		a, err := s.Select(rawURL)
		if err != nil {
			t.Errorf("Select(%q) error: %v", rawURL, err)
			continue
		}
		if string(a.ID()) != want {
			t.Errorf("Select(%q) = %s, want %s", rawURL, a.ID(), want)
		}
	}
}

func TestSelector_UnknownHostPolicies(t *testing.T) {
	const unknown = "https://blog.example.com/post"

	a, err := newTestSelector(PolicyDefault).Select(unknown)
	if err != nil || a.ID() != NHKEasyID {
		t.Errorf("default policy: got %v, %v; want first registered adapter", a, err)
	}

	a, err = newTestSelector(PolicyGeneric).Select(unknown)
	if err != nil || a.ID() != GenericID {
		t.Errorf("generic policy: got %v, %v; want generic adapter", a, err)
	}

	_, err = newTestSelector(PolicyReject).Select(unknown)
	if !coreerrors.IsUnsupportedSource(err) {
		t.Errorf("reject policy: err = %v, want UnsupportedSourceError", err)
	}
}

func TestSelector_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative/path"} {
		if _, err := newTestSelector(PolicyDefault).Select(raw); !coreerrors.IsValidation(err) {
			t.Errorf("Select(%q) err = %v, want ValidationError", raw, err)
		}
	}
}

func TestSelector_ByID(t *testing.T) {
	s := newTestSelector(PolicyDefault)
	if a, ok := s.ByID(YasashiiID); !ok || a.ID() != YasashiiID {
		t.Error("ByID should find registered adapters")
	}
	if _, ok := s.ByID(GenericID); !ok {
		t.Error("ByID should find the generic adapter")
	}
	if len(s.Adapters()) != 2 {
		t.Errorf("Adapters() = %d, want 2", len(s.Adapters()))
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(""); err != nil || p != PolicyDefault {
		t.Errorf("ParsePolicy(\"\") = %v, %v", p, err)
	}
	if p, err := ParsePolicy("Reject"); err != nil || p != PolicyReject {
		t.Errorf("ParsePolicy(Reject) = %v, %v", p, err)
	}
	if _, err := ParsePolicy("guess"); err == nil {
		t.Error("ParsePolicy should reject unknown names")
	}
}
