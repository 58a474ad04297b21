// Package seed reads recipe catalog files.
//
// A catalog is a YAML document with a top level "recipes" list:
//
//	recipes:
//	  - name: Shakshuka
//	    prep_time: 10
//	    cook_time: 20
//	    difficulty: easy
//	    image: images/shakshuka.jpg
//	    instructions: ...
//	    ingredients: ["4 eggs", "2 tomatoes"]
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type catalog struct {
	Recipes []services.SeedRecipe `yaml:"recipes"`
}

// Read decodes a catalog. Unknown keys are an error so typos surface.
func Read(r io.Reader) ([]services.SeedRecipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return c.Recipes, nil
}

func ReadFile(path string) ([]services.SeedRecipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
