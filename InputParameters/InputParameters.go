package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
)

// GroupsConfigFile is the file a workflow step location keeps its group configuration in
const GroupsConfigFile = "groups.config"

// GroupEntry names a group and the surfaces its face group should keep
type GroupEntry struct {
	Name     string
	Surfaces []string
}

func (ge GroupEntry) String() string {
	return strings.Join(append([]string{ge.Name}, ge.Surfaces...), ",")
}

// ParseGroupEntry parses "<group>,<surface>[,<surface>...]". Tokens are trimmed; an empty
// surface token is kept, so "lv," carries one blank surface. Surfaces are not validated here.
func ParseGroupEntry(item string) (GroupEntry, error) {
	tokens := strings.Split(item, ",")
	ge := GroupEntry{Name: strings.TrimSpace(tokens[0])}
	if ge.Name == "" {
		return GroupEntry{}, fmt.Errorf("group entry %q has no group name", item)
	}
	for _, tok := range tokens[1:] {
		ge.Surfaces = append(ge.Surfaces, strings.TrimSpace(tok))
	}
	return ge, nil
}

// ParseGroupEntries parses each item in order, skipping blank ones
func ParseGroupEntries(items []string) ([]GroupEntry, error) {
	var entries []GroupEntry
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		ge, err := ParseGroupEntry(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ge)
	}
	return entries, nil
}

// GroupsConfig is the saved group configuration of a step, {"groups": ["lv,inner", ...]}
type GroupsConfig struct {
	Groups []string `json:"groups"`
}

func (gc *GroupsConfig) Parse(data []byte) error {
	return yaml.Unmarshal(data, gc)
}

// Entries returns the parsed group entries
func (gc *GroupsConfig) Entries() ([]GroupEntry, error) {
	return ParseGroupEntries(gc.Groups)
}

func (gc *GroupsConfig) Print(w io.Writer) {
	fmt.Fprintf(w, "[%d]\t\t= Groups\n", len(gc.Groups))
	for _, item := range gc.Groups {
		fmt.Fprintf(w, "\"%s\"\n", item)
	}
}

// ReadGroupsConfig reads a groups configuration file, JSON or YAML
func ReadGroupsConfig(path string) (*GroupsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	gc := &GroupsConfig{}
	if err = gc.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gc, nil
}

// ReadLocation reads the groups configuration kept at a step location. A location without
// one yields an empty configuration.
func ReadLocation(dir string) (*GroupsConfig, error) {
	path := filepath.Join(dir, GroupsConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &GroupsConfig{}, nil
	}
	return ReadGroupsConfig(path)
}
