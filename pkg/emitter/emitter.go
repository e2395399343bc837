// Package emitter renders an analysis and its optimization into the
// deployment descriptor and the CI workflow.
package emitter

import (
	"fmt"

	"stackplan/pkg/detector"
	"stackplan/pkg/emitter/document"
	"stackplan/pkg/optimizer"
	"stackplan/pkg/rules"
)

// Artifacts holds the two generated documents and their suggested paths
// relative to the repository root
type Artifacts struct {
	Descriptor     string `json:"descriptor"`
	Pipeline       string `json:"pipeline"`
	DescriptorPath string `json:"descriptor_path"`
	PipelinePath   string `json:"pipeline_path"`
}

type Emitter struct {
	tables *rules.Tables
}

// NewEmitter creates an emitter over the given tables. A nil value selects
// the built-in rule set.
func NewEmitter(tables *rules.Tables) *Emitter {
	if tables == nil {
		tables = rules.Default()
	}
	return &Emitter{tables: tables}
}

// Emit renders both artifacts. Output is byte-identical for identical
// inputs. Naming is validated before anything is generated.
func (e *Emitter) Emit(a detector.Analysis, opt optimizer.Optimization, naming Naming) (Artifacts, error) {
	if err := naming.Validate(); err != nil {
		return Artifacts{}, err
	}
	n := naming.WithDefaults()
	env := optimizer.Preference{Environment: opt.Environment}.Normalize().Environment

	descriptor, err := document.Format(e.descriptor(a, opt, n, env))
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to format descriptor: %w", err)
	}

	return Artifacts{
		Descriptor:     descriptor,
		Pipeline:       e.pipeline(opt, n, env),
		DescriptorPath: n.DescriptorPath,
		PipelinePath:   n.PipelinePath(),
	}, nil
}
