// Package compiler orchestrates the generation pipeline: model extraction,
// relation reconciliation, schema synthesis and per-service assembly, all
// folded into one immutable OpenAPI document.
package compiler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/openapi"
	"github.com/gaborage/swaggelize/service"
)

// Input carries everything one run consumes: the input directories, the
// live route table, the global route prefix and the document envelope.
type Input struct {
	ModelsDir   string
	ServicesDir string
	RoutePrefix string
	Routes      service.RouteTable
	Definition  openapi.Definition
}

// Compiler is the one-shot model-to-document pipeline. It holds no state
// between runs; every Run builds its accumulators from scratch.
type Compiler struct {
	log logger.Logger
}

// New returns a compiler reporting through log.
func New(log logger.Logger) *Compiler {
	return &Compiler{log: log}
}

// Run executes the pipeline synchronously: extract models, reconcile
// relations, synthesize per-view schemas, then fold every service file's
// operations into path fragments and assemble the document. Extraction
// gaps reduce the output; configuration errors abort.
func (c *Compiler) Run(in Input) (openapi.Document, error) {
	log := c.log.WithFields(map[string]any{"run_id": uuid.NewString()})

	models, err := c.loadModels(log, in.ModelsDir)
	if err != nil {
		return nil, err
	}
	if err := model.Reconcile(models); err != nil {
		return nil, err
	}
	log.Debug().Int("models", len(models)).Msg("models extracted")

	services, err := c.loadServices(log, in)
	if err != nil {
		return nil, err
	}

	var allOps []service.Operation
	for _, svc := range services {
		allOps = append(allOps, svc.Operations...)
	}

	schemas := openapi.Synthesize(models, viewsInUse(models, allOps))
	asm := openapi.NewAssembler(models, schemas, log)
	parameters := asm.Parameters(allOps)

	paths := map[string]any{}
	for _, svc := range services {
		fragment, err := asm.Paths(svc.Operations)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.Model, err)
		}
		paths = openapi.MergePaths(paths, fragment)
	}

	log.Info().
		Int("services", len(services)).
		Int("paths", len(paths)).
		Int("schemas", len(asm.Schemas())).
		Msg("document assembled")
	return openapi.AssembleDocument(in.Definition, parameters, asm.Schemas(), paths), nil
}

// viewsInUse is the union of every view any field is exposed on and every
// view any operation references, so each referenced schema exists even
// when no field projects into it.
func viewsInUse(models []*model.Model, ops []service.Operation) []string {
	views := model.Views(models)
	seen := make(map[string]bool, len(views))
	for _, v := range views {
		seen[v] = true
	}
	add := func(view string) {
		if !seen[view] {
			seen[view] = true
			views = append(views, view)
		}
	}
	for i := range ops {
		for _, ref := range ops[i].Input {
			add(ref.View)
		}
		for _, entry := range ops[i].Output {
			if !entry.IsCustom() {
				add(entry.Ref.View)
			}
		}
	}
	return views
}
