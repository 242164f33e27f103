// Package catalog loads question catalog seed files.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Compass/internal/dto"
	"gopkg.in/yaml.v3"
)

// File is the top-level document of a catalog seed file.
type File struct {
	Questions []dto.QuestionInput `yaml:"questions" validate:"required,min=1,dive"`
}

var validate = validator.New()

func LoadFile(path string) ([]dto.QuestionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	questions, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return questions, nil
}

// Parse decodes and validates a YAML catalog. Order indexes must be unique
// within the file.
func Parse(r io.Reader) ([]dto.QuestionInput, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	seen := make(map[int]struct{}, len(file.Questions))
	for _, q := range file.Questions {
		if _, dup := seen[q.OrderIndex]; dup {
			return nil, fmt.Errorf("duplicate order_index %d", q.OrderIndex)
		}
		seen[q.OrderIndex] = struct{}{}
	}
	return file.Questions, nil
}
