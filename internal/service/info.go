package service

import "maps"

var (
	defaultAbout = map[string]string{
		"version":       "1.0.0",
		"serial_number": "SP-20250928-001",
		"last_updated":  "16/09/2025",
	}
	defaultContact = map[string]string{
		"website": "solarpanelsolutions.com",
		"email":   "support@solarpanelsolutions.com",
		"phone":   "+61 457 284 421",
	}
)

// InfoService serves the static product and support details.
type InfoService struct {
	about   map[string]string
	contact map[string]string
}

// NewInfoService merges the configured details over the defaults.
func NewInfoService(about, contact map[string]string) *InfoService {
	return &InfoService{
		about:   merged(defaultAbout, about),
		contact: merged(defaultContact, contact),
	}
}

func (s *InfoService) About() map[string]string   { return maps.Clone(s.about) }
func (s *InfoService) Contact() map[string]string { return maps.Clone(s.contact) }

func merged(base, over map[string]string) map[string]string {
	out := maps.Clone(base)
	for k, v := range over {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
