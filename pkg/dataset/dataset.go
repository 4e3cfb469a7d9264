package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dsai-cliques/cliques/pkg/errors"
)

// DefaultWeight is the relationship weight used when the input omits it.
const DefaultWeight = 1.0

// Format identifies a dataset encoding.
type Format string

// Supported dataset encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Person is a node of the network.
type Person struct {
	ID       string `json:"id" yaml:"id" bson:"id" validate:"required"`
	Name     string `json:"name" yaml:"name" bson:"name" validate:"required"`
	Origin   string `json:"origin,omitempty" yaml:"origin,omitempty" bson:"origin,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty" bson:"language,omitempty"`
}

// Relationship is an undirected edge between two people.
type Relationship struct {
	Source string  `json:"source" yaml:"source" bson:"source"`
	Target string  `json:"target" yaml:"target" bson:"target"`
	Type   string  `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
	Weight float64 `json:"weight" yaml:"weight" bson:"weight"`
}

// Dataset is the decoded input: every person and relationship in file order.
type Dataset struct {
	People        []Person       `json:"people" yaml:"people"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// record mirrors the wire shape so an absent weight can be told apart from
// an explicit zero.
type record struct {
	People        []Person             `json:"people" yaml:"people" validate:"dive"`
	Relationships []relationshipRecord `json:"relationships" yaml:"relationships" validate:"dive"`
}

type relationshipRecord struct {
	Source string   `json:"source" yaml:"source" bson:"source" validate:"required"`
	Target string   `json:"target" yaml:"target" bson:"target" validate:"required"`
	Type   string   `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty" bson:"weight,omitempty" validate:"omitempty,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (r relationshipRecord) toRelationship() Relationship {
	rel := Relationship{Source: r.Source, Target: r.Target, Type: r.Type, Weight: DefaultWeight}
	if r.Weight != nil {
		rel.Weight = *r.Weight
	}
	return rel
}

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Read decodes and validates a dataset from r.
//
// Read returns an INVALID_DATASET error if the input is malformed, if a
// person lacks an id or name, if a relationship lacks an endpoint, or if a
// weight is negative. Read does not close r.
func Read(r io.Reader, format Format) (*Dataset, error) {
	var rec record
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&rec); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	return fromRecord(rec)
}

// ReadBytes decodes and validates a dataset held in memory.
func ReadBytes(data []byte, format Format) (*Dataset, error) {
	return Read(bytes.NewReader(data), format)
}

// ReadFile reads the dataset at path, choosing the decoder by extension.
func ReadFile(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

func fromRecord(rec record) (*Dataset, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	ds := &Dataset{
		People:        rec.People,
		Relationships: make([]Relationship, len(rec.Relationships)),
	}
	if ds.People == nil {
		ds.People = []Person{}
	}
	for i, r := range rec.Relationships {
		ds.Relationships[i] = r.toRelationship()
	}
	return ds, nil
}

func validateRecord(rec record) error {
	if err := validate.Struct(rec); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s", describeValidation(err))
	}
	for i, p := range rec.People {
		if err := errors.ValidatePersonID(p.ID); err != nil {
			return fmt.Errorf("people[%d]: %w", i, err)
		}
	}
	return nil
}

// describeValidation turns the first validator failure into a short message
// such as "people[2].name is required".
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid dataset"
	}
	fe := verrs[0]
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "record."))
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must be >= " + fe.Param()
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

// Counts returns the number of people and relationships.
func (d *Dataset) Counts() (people, relationships int) {
	return len(d.People), len(d.Relationships)
}

// JSON encodes the dataset in its canonical form: defaults applied, input
// order kept.
func (d *Dataset) JSON() ([]byte, error) {
	return json.Marshal(d)
}
