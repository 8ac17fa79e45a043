package tools

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// PromptArgument describes one optional prompt argument.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Prompt is a workflow template an agent can render with arguments.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments"`

	tmpl *template.Template
}

// Prompts holds the prompt templates.
type Prompts struct {
	byName map[string]*Prompt
}

var promptDefs = []struct {
	name, file, description string
	args                    []PromptArgument
}{
	{
		name:        "meteo__ski-trip-weather",
		file:        "ski-trip-weather.tmpl",
		description: "Guide for checking snow conditions and weather for a ski trip to a Swiss resort.",
		args: []PromptArgument{
			{Name: "resort", Description: "Swiss ski resort, e.g. Zermatt, Verbier or St. Moritz"},
			{Name: "dates", Description: "Dates or period, e.g. this weekend or January 10-15"},
		},
	},
	{
		name:        "meteo__plan-outdoor-activity",
		file:        "plan-outdoor-activity.tmpl",
		description: "Weather-aware planning workflow for hiking, cycling, climbing and other outdoor activities.",
		args: []PromptArgument{
			{Name: "activity", Description: "Activity, e.g. hiking, cycling, climbing or camping"},
			{Name: "location", Description: "City, mountain or trail"},
			{Name: "timeframe", Description: "When, e.g. this weekend or next week"},
		},
	},
	{
		name:        "meteo__weather-aware-travel",
		file:        "weather-aware-travel.tmpl",
		description: "Combine destination forecasts with journey planning, packing and activity advice.",
		args: []PromptArgument{
			{Name: "destination", Description: "City, resort or place"},
			{Name: "travel_dates", Description: "When, e.g. tomorrow or January 10-15"},
			{Name: "trip_type", Description: "Day trip, weekend getaway, ski trip or business travel"},
		},
	},
}

// NewPrompts parses the embedded prompt templates.
func NewPrompts() (*Prompts, error) {
	p := &Prompts{byName: make(map[string]*Prompt, len(promptDefs))}
	for _, def := range promptDefs {
		tmpl, err := template.New(def.file).Option("missingkey=zero").ParseFS(promptFS, "prompts/"+def.file)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", def.name, err)
		}
		p.byName[def.name] = &Prompt{
			Name:        def.name,
			Description: def.description,
			Arguments:   def.args,
			tmpl:        tmpl,
		}
	}
	return p, nil
}

// List returns the prompts ordered by name.
func (p *Prompts) List() []Prompt {
	out := make([]Prompt, 0, len(p.byName))
	for _, prompt := range p.byName {
		out = append(out, *prompt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Render fills the named prompt with args. Every argument is optional;
// unknown argument names are rejected.
func (p *Prompts) Render(name string, args map[string]string) (string, error) {
	prompt, ok := p.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: prompt %q", ErrNotFound, name)
	}

	data := make(map[string]string, len(prompt.Arguments))
	for _, a := range prompt.Arguments {
		data[a.Name] = ""
	}
	for k, v := range args {
		if _, known := data[k]; !known {
			return "", fmt.Errorf("%w: prompt %s has no argument %q", ErrBadParameter, name, k)
		}
		data[k] = strings.TrimSpace(v)
	}

	var b strings.Builder
	if err := prompt.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return b.String(), nil
}
