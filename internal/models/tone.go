package models

import "strings"

// Tone is the desired voice of a generated caption.
type Tone string

const (
	ToneSimple       Tone = "Simple"
	ToneFun          Tone = "Fun"
	ToneExcited      Tone = "Excited"
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneInformative  Tone = "Informative"
	ToneHumorous     Tone = "Humorous"
	ToneSeasonal     Tone = "Seasonal"
	ToneElegant      Tone = "Elegant"
	ToneBold         Tone = "Bold"
	ToneNostalgic    Tone = "Nostalgic"
)

// ToneOption pairs a tone with its display label.
type ToneOption struct {
	Value Tone   `json:"value"`
	Label string `json:"label"`
}

// ToneOptions returns the selectable tones; the first entry is the default.
func ToneOptions() []ToneOption {
	return []ToneOption{
		{Value: ToneSimple, Label: "Simple & Clear"},
		{Value: ToneFun, Label: "Fun & Engaging"},
		{Value: ToneExcited, Label: "Excited & Urgent"},
		{Value: ToneProfessional, Label: "Professional & Direct"},
		{Value: ToneFriendly, Label: "Friendly & Warm"},
		{Value: ToneInformative, Label: "Informative & Detailed"},
		{Value: ToneHumorous, Label: "Humorous & Witty"},
		{Value: ToneSeasonal, Label: "Seasonal / Festive"},
		{Value: ToneElegant, Label: "Elegant & Refined"},
		{Value: ToneBold, Label: "Bold & Punchy"},
		{Value: ToneNostalgic, Label: "Nostalgic & Heartfelt"},
	}
}

// ParseTone matches a tone by value or label, case-insensitively.
func ParseTone(s string) (Tone, bool) {
	for _, opt := range ToneOptions() {
		if strings.EqualFold(string(opt.Value), s) || strings.EqualFold(opt.Label, s) {
			return opt.Value, true
		}
	}
	return "", false
}

// Label returns the display label for the tone, or the raw value when unknown.
func (t Tone) Label() string {
	for _, opt := range ToneOptions() {
		if opt.Value == t {
			return opt.Label
		}
	}
	return string(t)
}
