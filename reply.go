package vipbot

import "time"

// Tone is the color family a reply is rendered with.
type Tone string

// Tone constants.
const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneGold    Tone = "gold"
	ToneAccent  Tone = "accent"
)

// Reply is a platform-neutral rendering of a command response, shaped like a
// chat embed with an optional selection menu.
type Reply struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tone        Tone      `json:"tone"`
	Fields      []Field   `json:"fields,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Footer      string    `json:"footer,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// Field is a named value shown inside a reply.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Option is a selectable follow-up, such as a FAQ question or help topic.
type Option struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// AddField appends a field to the reply.
func (r *Reply) AddField(name, value string, inline bool) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value, Inline: inline})
}
