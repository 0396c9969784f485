package models

import "time"

// Generation is a successful response of the generation endpoint.
type Generation struct {
	HTML            string `json:"html"`
	EnergyUsed      int64  `json:"energy_used"`
	EnergyRemaining int64  `json:"energy_remaining"`
}

// Artifact is the most recent generated site, held only in screen state.
type Artifact struct {
	HTML       string
	Prompt     string
	ReceivedAt time.Time
}

func NewArtifact(g *Generation, prompt string, now time.Time) *Artifact {
	return &Artifact{HTML: g.HTML, Prompt: prompt, ReceivedAt: now}
}
