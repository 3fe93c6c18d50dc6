package builder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/specialistvlad/ctrldeploy/internal/model"
)

// Section names of a deployment document.
const (
	SectionCommands = "commands"
	SectionSensors  = "sensors"
	SectionConfig   = "config"

	includeTypeCommand = "command"
)

// Build constructs a complete, validated deployment from the root element of
// a deployment document.
//
// On success the returned Diagnostics list the config entries that were
// skipped. On failure the error is a wrapped *BuildError and no deployment is
// returned.
func Build(ctx context.Context, root element.Element) (*model.DeploymentDefinition, Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting deployment construction.", "root", root.Name())

	// First pass: commands. Sensors resolve against the index built here.
	commandSection, err := section(root, SectionCommands)
	if err != nil {
		return nil, nil, wrap(err)
	}
	commands, byID, err := buildCommands(ctx, commandSection)
	if err != nil {
		return nil, nil, wrap(err)
	}
	logger.Debug("Build: Commands pass complete.", "command_count", len(commands))

	// Second pass: sensors.
	sensorSection, err := section(root, SectionSensors)
	if err != nil {
		return nil, nil, wrap(err)
	}
	sensors, err := buildSensors(ctx, sensorSection, byID)
	if err != nil {
		return nil, nil, wrap(err)
	}
	logger.Debug("Build: Sensors pass complete.", "sensor_count", len(sensors))

	// Third pass: advisory configuration. Only a missing section is fatal.
	configSection, err := section(root, SectionConfig)
	if err != nil {
		return nil, nil, wrap(err)
	}
	config, diags := buildConfig(ctx, configSection)
	logger.Debug("Build: Config pass complete.", "entry_count", len(config), "skipped", len(diags))

	deployment, err := model.NewDeploymentDefinition(commands, sensors, config)
	if err != nil {
		return nil, nil, wrap(err)
	}

	logger.Info("Build: Deployment construction successful.",
		"commands", len(commands), "sensors", len(sensors), "config", len(config))
	return deployment, diags, nil
}

func wrap(err error) error {
	return fmt.Errorf("building deployment: %w", err)
}

func section(root element.Element, name string) (element.Element, error) {
	el, ok := root.FirstChild(name)
	if !ok {
		return nil, &BuildError{Kind: KindMissingSection, Entity: "deployment", Index: -1, Name: name}
	}
	return el, nil
}

// buildCommands parses every direct child of the commands section.
func buildCommands(ctx context.Context, sec element.Element) ([]model.CommandDefinition, map[int]int, error) {
	logger := ctxlog.FromContext(ctx)

	elems := sec.Children(element.Any)
	commands := make([]model.CommandDefinition, 0, len(elems))
	byID := make(map[int]int, len(elems))

	for i, el := range elems {
		rawID, hasID := el.Attribute("id")
		id, err := parseID(rawID, hasID)
		if err != nil {
			return nil, nil, &BuildError{Kind: KindMalformedID, Entity: "command", Index: i, ID: rawID, Attribute: "id", Err: err}
		}

		protocol, ok := el.Attribute("protocol")
		if !ok || protocol == "" {
			return nil, nil, &BuildError{Kind: KindMissingAttribute, Entity: "command", Index: i, ID: rawID, Attribute: "protocol"}
		}

		if prev, dup := byID[id]; dup {
			return nil, nil, &BuildError{
				Kind: KindDuplicateID, Entity: "command", Index: i, ID: rawID,
				Err: fmt.Errorf("already defined by command #%d", prev),
			}
		}

		var props model.PropertiesBuilder
		for _, p := range el.Children("property") {
			name, ok := p.Attribute("name")
			if !ok {
				return nil, nil, &BuildError{
					Kind: KindMissingAttribute, Entity: "command", Index: i, ID: rawID, Attribute: "name",
					Err: errors.New("property without a name"),
				}
			}
			value, _ := p.Attribute("value")
			props.Set(name, value)
		}

		byID[id] = len(commands)
		cmd := model.NewCommandDefinition(id, protocol, props.Build())
		commands = append(commands, cmd)
		logger.Debug("Build: Command defined.", "command_id", id, "protocol", protocol, "property_count", cmd.Properties().Len())
	}

	return commands, byID, nil
}

// buildSensors parses every direct child of the sensors section and binds it
// to its command.
func buildSensors(ctx context.Context, sec element.Element, byID map[int]int) ([]model.SensorDefinition, error) {
	logger := ctxlog.FromContext(ctx)

	elems := sec.Children(element.Any)
	sensors := make([]model.SensorDefinition, 0, len(elems))

	for i, el := range elems {
		rawID, hasID := el.Attribute("id")
		name, _ := el.Attribute("name")
		fail := func(kind Kind, attr string, err error) error {
			return &BuildError{Kind: kind, Entity: "sensor", Index: i, ID: rawID, Name: name, Attribute: attr, Err: err}
		}

		id, err := parseID(rawID, hasID)
		if err != nil {
			return nil, fail(KindMalformedID, "id", err)
		}

		sensorType, ok := el.Attribute("type")
		if !ok {
			return nil, fail(KindMissingAttribute, "type", nil)
		}
		sensorType = strings.ToLower(sensorType)

		include, ok := el.FirstChild("include")
		if !ok {
			return nil, fail(KindMissingReference, "", errors.New("no include element"))
		}
		if t, _ := include.Attribute("type"); t != includeTypeCommand {
			return nil, fail(KindMissingReference, "", fmt.Errorf("include type %q is not %q", t, includeTypeCommand))
		}

		rawRef, hasRef := include.Attribute("ref")
		ref, err := parseID(rawRef, hasRef)
		if err != nil {
			return nil, fail(KindMalformedID, "ref", err)
		}
		idx, ok := byID[ref]
		if !ok {
			return nil, fail(KindUnresolvedReference, "", fmt.Errorf("command '%d' is not defined", ref))
		}

		var props model.PropertiesBuilder
		for _, st := range el.Children("state") {
			stateName, ok := st.Attribute("name")
			if !ok {
				return nil, fail(KindMissingAttribute, "name", errors.New("state without a name"))
			}
			value, _ := st.Attribute("value")
			props.Set(model.StatePrefix+stateName, value)
		}
		if lo, ok := el.FirstChild("min"); ok {
			value, _ := lo.Attribute("value")
			props.Set(model.RangeMinKey, value)
		}
		if hi, ok := el.FirstChild("max"); ok {
			value, _ := hi.Attribute("value")
			props.Set(model.RangeMaxKey, value)
		}

		sensors = append(sensors, model.NewSensorDefinition(id, name, sensorType, ref, idx, props.Build()))
		logger.Debug("Build: Sensor defined.", "sensor_id", id, "name", name, "type", sensorType, "command_id", ref)
	}

	return sensors, nil
}

// buildConfig collects name/value entries. Entries without a value are
// reported as diagnostics and skipped.
func buildConfig(ctx context.Context, sec element.Element) (map[string]string, Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	config := make(map[string]string)
	var diags Diagnostics

	for i, el := range sec.Children(element.Any) {
		name, ok := el.Attribute("name")
		if !ok {
			logger.Debug("Build: Ignoring config entry without name.", "index", i)
			continue
		}
		value, ok := el.Attribute("value")
		if !ok {
			logger.Info("Ignoring config property without value.", "name", name)
			diags = append(diags, Diagnostic{
				Section: SectionConfig,
				Index:   i,
				Name:    name,
				Message: "config property has no value",
			})
			continue
		}
		config[name] = value
	}

	return config, diags
}

// parseID parses a positive decimal identifier.
func parseID(raw string, present bool) (int, error) {
	if !present {
		return 0, errors.New("attribute is absent")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%d is not a positive integer", id)
	}
	return id, nil
}
