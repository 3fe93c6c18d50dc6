/*
Package builder turns a parsed deployment document into a validated
*model.DeploymentDefinition. It acts as the bridge between the format-specific
document front-ends (xmldoc, hcldoc, yamldoc), which it only sees through the
element.Element accessor, and the controller runtime, which only ever sees the
finished model.

The construction is a three-pass process over the document's sections, in a
fixed order:

 1. Commands: every direct child of `commands` becomes a CommandDefinition
    (`id`, `protocol`, ordered `property` name/value pairs). Command ids must be
    unique; an id index is built for the next pass.

 2. Sensors: every direct child of `sensors` becomes a SensorDefinition. Each
    sensor must carry an `include` child of type `command` whose `ref` names a
    command from pass 1. `state`, `min` and `max` children become the
    `state-<name>`, `range-min` and `range-max` properties.

 3. Config: every direct child of `config` with both `name` and `value`
    becomes a configuration entry. Entries without a value are skipped and
    reported as Diagnostics; configuration is advisory, so this never fails
    the build.

Any structural problem in passes 1 and 2 aborts the build with a *BuildError
that names the entity and the offending id/name. The builder publishes
nothing on failure: callers receive either a complete deployment or an error.
*/
package builder
