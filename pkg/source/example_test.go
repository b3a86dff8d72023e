package source_test

import (
	"fmt"

	"github.com/matzehuels/sourceloc/pkg/catalog"
	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/source"
)

func ExampleResolve() {
	cfg := &config.Config{Integrations: config.Integrations{
		GitLab: []config.Integration{{Host: "gitlab.example.com"}},
	}}

	entity := &catalog.Entity{
		Kind: "Component",
		Metadata: catalog.Metadata{
			Name: "proj",
			Annotations: map[string]string{
				catalog.AnnotationSourceLocation: "url:https://gitlab.example.com/team/proj",
			},
		},
	}

	loc, ok := source.Resolve(entity, cfg)
	fmt.Println(ok, loc.URL, loc.Type)
	// Output:
	// true https://gitlab.example.com/team/proj gitlab
}

func ExampleResolveDetailed() {
	entity := &catalog.Entity{
		Kind: "Component",
		Metadata: catalog.Metadata{
			Name: "legacy",
			Annotations: map[string]string{
				catalog.AnnotationSourceLocation: "https://github.com/org/legacy",
			},
		},
	}

	res := source.ResolveDetailed(entity, nil)
	fmt.Println(res.OK(), res.Reason)
	// Output:
	// false invalid_reference
}
