// Package snapshot exports a built deployment for downstream consumers: as a
// human-readable summary, or as JSON, YAML or CBOR documents.
//
// Snapshots are plain data. Property order is preserved by encoding
// properties as ordered key/value lists rather than as maps.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fxamacker/cbor/v2"
	"github.com/specialistvlad/ctrldeploy/internal/model"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}

// Snapshot is the exported form of a deployment.
type Snapshot struct {
	Commands []Command         `json:"commands" yaml:"commands" cbor:"1,keyasint"`
	Sensors  []Sensor          `json:"sensors" yaml:"sensors" cbor:"2,keyasint"`
	Config   map[string]string `json:"config" yaml:"config" cbor:"3,keyasint"`
}

// Command is the exported form of a command definition.
type Command struct {
	ID         int        `json:"id" yaml:"id" cbor:"1,keyasint"`
	Protocol   string     `json:"protocol" yaml:"protocol" cbor:"2,keyasint"`
	Properties []Property `json:"properties" yaml:"properties" cbor:"3,keyasint"`
}

// Sensor is the exported form of a sensor definition.
type Sensor struct {
	ID         int        `json:"id" yaml:"id" cbor:"1,keyasint"`
	Name       string     `json:"name" yaml:"name" cbor:"2,keyasint"`
	Type       string     `json:"type" yaml:"type" cbor:"3,keyasint"`
	Command    int        `json:"command" yaml:"command" cbor:"4,keyasint"`
	Properties []Property `json:"properties" yaml:"properties" cbor:"5,keyasint"`
}

// Property is one ordered key/value entry.
type Property struct {
	Key   string `json:"key" yaml:"key" cbor:"1,keyasint"`
	Value string `json:"value" yaml:"value" cbor:"2,keyasint"`
}

// From converts a deployment into its exported form.
func From(dep *model.DeploymentDefinition) *Snapshot {
	s := &Snapshot{
		Commands: []Command{},
		Sensors:  []Sensor{},
		Config:   dep.Config(),
	}
	for _, c := range dep.Commands() {
		s.Commands = append(s.Commands, Command{
			ID:         c.ID(),
			Protocol:   c.ProtocolType(),
			Properties: properties(c.Properties()),
		})
	}
	for _, sn := range dep.Sensors() {
		s.Sensors = append(s.Sensors, Sensor{
			ID:         sn.ID(),
			Name:       sn.Name(),
			Type:       sn.Type(),
			Command:    sn.CommandID(),
			Properties: properties(sn.Properties()),
		})
	}
	return s
}

func properties(p model.Properties) []Property {
	out := make([]Property, 0, p.Len())
	for k, v := range p.All() {
		out = append(out, Property{Key: k, Value: v})
	}
	return out
}

// Encode writes dep to w in the given format.
func Encode(w io.Writer, format Format, dep *model.DeploymentDefinition) error {
	s := From(dep)
	switch format {
	case FormatText:
		return writeText(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatCBOR:
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return fmt.Errorf("encoding cbor: %w", err)
		}
		return em.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Decode reads a snapshot previously written by Encode. The text format
// cannot be decoded.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	var s Snapshot
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
	case FormatCBOR:
		err = cbor.NewDecoder(r).Decode(&s)
	default:
		return nil, fmt.Errorf("cannot decode format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return &s, nil
}

func writeText(w io.Writer, s *Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "COMMANDS (%d)\n", len(s.Commands))
	fmt.Fprintln(tw, "ID\tPROTOCOL\tPROPERTIES")
	for _, c := range s.Commands {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Protocol, joinProps(c.Properties))
	}

	fmt.Fprintf(tw, "\nSENSORS (%d)\n", len(s.Sensors))
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCOMMAND\tPROPERTIES")
	for _, sn := range s.Sensors {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", sn.ID, sn.Name, sn.Type, sn.Command, joinProps(sn.Properties))
	}

	keys := make([]string, 0, len(s.Config))
	for k := range s.Config {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintf(tw, "\nCONFIG (%d)\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, s.Config[k])
	}

	return tw.Flush()
}

func joinProps(props []Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, " ")
}
