// Demonstrates layered loading, include expansion, value write-back and
// persistence against an in-memory filesystem.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/treeline/config"
)

const mainYAML = `
GLOBAL:
  run-id: dev
steps:
  load:
    parameters:
      separator: "|"
      batch-size: 100
__INCLUDE__:
  overrides: overrides.yaml
`

const overridesYAML = `
parameters:
  batch-size: 500
`

func main() {
	fsys := afero.NewMemMapFs()
	must(afero.WriteFile(fsys, "conf/main.yaml", []byte(mainYAML), 0o644))
	must(afero.WriteFile(fsys, "conf/overrides.yaml", []byte(overridesYAML), 0o644))

	logger := zerolog.New(os.Stderr).Level(zerolog.InfoLevel)

	store, err := config.NewBuilder().
		WithFile("conf/main.yaml").
		WithFS(fsys).
		WithLogger(logger).
		WithValidator(func(s *config.Store) error {
			if s.Section(config.StepsSection) == nil {
				return fmt.Errorf("missing %s section", config.StepsSection)
			}
			return nil
		}).
		Build()
	must(err)

	fmt.Println("separator:", store.Parameter("load", "separator", ","))
	fmt.Println("batch-size from include:", store.Value("overrides.parameters", "batch-size", nil))

	prev, persistable, err := store.SetValue("steps.load.parameters", "batch-size", 250)
	must(err)
	fmt.Printf("batch-size %v -> 250 (persistable=%v)\n", prev, persistable)

	for _, res := range store.Save() {
		fmt.Printf("save %s %s: saved=%v reason=%q\n", res.Kind, res.Origin, res.Saved, res.Reason)
	}

	data, err := afero.ReadFile(fsys, "conf/main.yaml")
	must(err)
	fmt.Println("persisted file:")
	fmt.Println(string(data))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
