package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/ctxlog"
	"github.com/vk/plotmod/internal/fsutil"
	"github.com/vk/plotmod/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers .hcl files under the given paths, parses them, and
// translates them into the format-agnostic definition model. Files are
// processed in sorted path order; within a file, blocks keep their
// declared order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Evaluator, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{
		Groups: make(map[string]*config.GroupDefinition),
	}

	parser := hclparse.NewParser()
	for _, root := range paths {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			return nil, nil, fmt.Errorf("definitions path %q: %w", root, err)
		}
		files, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return nil, nil, fmt.Errorf("scanning %q: %w", root, err)
		}
		logger.Debug("Discovered definition files.", "root", root, "count", len(files))

		for _, file := range files {
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("parsing %s: %w", file, diags)
			}
			var cfg schema.DefinitionConfig
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
				return nil, nil, fmt.Errorf("decoding %s: %w", file, diags)
			}
			if err := l.translateFile(ctx, &cfg, model); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
		}
	}

	logger.Debug("Definition model loaded.",
		"groups", len(model.Groups),
		"classes", len(model.Classes),
		"instances", len(model.Instances),
	)
	return model, NewEvaluator(), nil
}

func (l *Loader) translateFile(ctx context.Context, cfg *schema.DefinitionConfig, model *config.Model) error {
	for _, g := range cfg.Groups {
		group, err := l.translateGroup(ctx, g)
		if err != nil {
			return err
		}
		if _, exists := model.Groups[group.Name]; exists {
			return fmt.Errorf("group %q defined twice", group.Name)
		}
		model.Groups[group.Name] = group
	}
	for _, c := range cfg.Classes {
		class, err := l.translateClass(ctx, c)
		if err != nil {
			return err
		}
		model.Classes = append(model.Classes, class)
	}
	for _, m := range cfg.Models {
		attrs, err := extractBodyAttributes(m.Attributes)
		if err != nil {
			return fmt.Errorf("model %q %q: %w", m.Class, m.Name, err)
		}
		model.Instances = append(model.Instances, &config.InstanceDefinition{
			Class:      m.Class,
			Name:       m.Name,
			Attributes: attrs,
		})
	}
	return nil
}

func extractBodyAttributes(block *schema.AttributesBlock) (map[string]hcl.Expression, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("attributes block: %w", diags)
	}
	if attrs == nil {
		return nil, nil
	}
	exprMap := make(map[string]hcl.Expression)
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
