package demo

import (
	"github.com/zengine/zengine/internal/core/component"
	"github.com/zengine/zengine/internal/core/schema"
	"github.com/zengine/zengine/pkg/encoding"
)

//go:generate go run github.com/zengine/zengine/cmd/schemagen -in example_component.yaml -out example_component_schema.go -stamp .example_component.stamp -pkg demo

const (
	exampleMaxHealth    = 100.0
	exampleStartLevel   = 1
	exampleDefaultActor = "Player"
)

var _ component.Component = (*ExampleComponent)(nil)

// ExampleComponent is a plain data holder demonstrating schema-backed
// serialization. Its wire descriptor lives in example_component.yaml and is
// generated into example_component_schema.go by schemagen.
type ExampleComponent struct {
	Health float32 `json:"health"`
	Level  int     `json:"level"`
	Name   string  `json:"name"`
}

// NewExampleComponent creates a component populated with the schema defaults.
func NewExampleComponent() *ExampleComponent {
	return &ExampleComponent{
		Health: exampleMaxHealth,
		Level:  exampleStartLevel,
		Name:   exampleDefaultActor,
	}
}

func (c *ExampleComponent) TypeID() component.ID {
	return component.IDFor(ExampleComponentTypeName)
}

func (c *ExampleComponent) TypeName() string {
	return ExampleComponentTypeName
}

func (c *ExampleComponent) Schema() *schema.TypeSchema {
	return ExampleComponentSchema()
}

// Validate checks the component against its schema descriptor.
func (c *ExampleComponent) Validate() error {
	return ExampleComponentSchema().Validate(c)
}

// Marshal emits the schema wire form of the component.
func (c *ExampleComponent) Marshal() ([]byte, error) {
	return ExampleComponentSchema().Serialize(c)
}

// Unmarshal replaces the component state with a validated wire payload.
func (c *ExampleComponent) Unmarshal(raw []byte) error {
	data, err := ExampleComponentSchema().Deserialize(raw)
	if err != nil {
		return err
	}
	return encoding.FromMap(data, c)
}

// Clone returns an independent copy of the component.
func (c *ExampleComponent) Clone() component.Component {
	clone := *c
	return &clone
}

// Regenerate restores health by the given amount, clamped to the schema
// maximum.
func (c *ExampleComponent) Regenerate(amount float32) {
	c.Health += amount
	if c.Health > exampleMaxHealth {
		c.Health = exampleMaxHealth
	}
}

// Damage reduces health by the given amount, clamped at zero.
func (c *ExampleComponent) Damage(amount float32) {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// LevelUp advances the component one level and restores full health.
func (c *ExampleComponent) LevelUp() {
	c.Level++
	c.Health = exampleMaxHealth
}
