// Package content loads the static marketing content served to the site.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the full content document.
type Site struct {
	Company      Company      `yaml:"company" json:"company"`
	Services     []Item       `yaml:"services" json:"services"`
	Process      []Step       `yaml:"process" json:"process"`
	Technologies []TechGroup  `yaml:"technologies" json:"technologies"`
	CaseStudies  []CaseStudy  `yaml:"case_studies" json:"case_studies"`
	Schedule     ScheduleInfo `yaml:"schedule" json:"schedule"`
}

type Company struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
}

type Item struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Step is a numbered stage of the delivery process.
type Step struct {
	Number      string `yaml:"-" json:"number"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type TechGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

type CaseStudy struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Result      string `yaml:"result" json:"result"`
}

// ScheduleInfo prefills the "book a call" calendar link.
type ScheduleInfo struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Minutes     int    `yaml:"minutes" json:"minutes"`
}

// Default returns the content embedded in the binary.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML content document and numbers the process steps.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if site.Company.Name == "" {
		return nil, errors.New("content: company.name is required")
	}
	for i := range site.Process {
		site.Process[i].Number = fmt.Sprintf("%02d", i+1)
	}
	if site.Schedule.Minutes <= 0 {
		site.Schedule.Minutes = 60
	}
	return &site, nil
}

// CalendarLink builds a Google Calendar template URL for scheduling a call.
func CalendarLink(title, description string, minutes int) string {
	if minutes <= 0 {
		minutes = 60
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("details", description)
	q.Set("duration", strconv.Itoa(minutes))
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
