package stores

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/salecaption/internal/models"
)

// ErrInvalidDefinition is returned for store documents or definitions that fail validation.
var ErrInvalidDefinition = errors.New("invalid store definition")

// Format identifies a catalog document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported catalog file type: %s", path)
}

// templateDoc is the on-disk shape of one sale type.
type templateDoc struct {
	Key            string       `yaml:"-" toml:"key" validate:"required,uppercase"`
	ID             string       `yaml:"id" toml:"id"`
	Name           string       `yaml:"name" toml:"name" validate:"required"`
	Language       string       `yaml:"language" toml:"language" validate:"required"`
	Example        string       `yaml:"original_example" toml:"original_example"`
	DefaultProduct string       `yaml:"defaultProduct" toml:"default_product"`
	DefaultPrice   string       `yaml:"defaultPrice" toml:"default_price"`
	DateFormat     string       `yaml:"dateFormat" toml:"date_format"`
	DurationText   string       `yaml:"durationTextPattern" toml:"duration_text"`
	Location       string       `yaml:"location" toml:"location"`
	BaseHashtags   string       `yaml:"baseHashtags" toml:"base_hashtags"`
	Routing        []routingDoc `yaml:"routing" toml:"routing" validate:"dive"`
}

type routingDoc struct {
	Kind     string   `yaml:"kind" toml:"kind" validate:"oneof=weekday"`
	Weekdays []string `yaml:"weekdays" toml:"weekdays" validate:"required,min=1"`
}

// tomlDocument is the TOML catalog shape; TOML tables are unordered so stores are arrays.
//
//	[[stores]]
//	key = "MY_STORE"
//	[[stores.sale_types]]
//	key = "WEEKLY"
//	name = "My Store (Weekly)"
type tomlDocument struct {
	Stores []struct {
		Key       string        `toml:"key"`
		SaleTypes []templateDoc `toml:"sale_types"`
	} `toml:"stores"`
}

// Decode parses a catalog document into stores, preserving document order.
// JSON and YAML documents map store key to sale type key to template fields.
func Decode(data []byte, format Format) ([]models.Store, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return decodeOrderedMap(data)
	case FormatTOML:
		return decodeTOML(data)
	}
	return nil, fmt.Errorf("unsupported catalog format: %s", format)
}

func decodeOrderedMap(data []byte) ([]models.Store, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping of store keys", ErrInvalidDefinition)
	}

	validate := validator.New()
	var stores []models.Store
	for i := 0; i+1 < len(doc.Content); i += 2 {
		storeKey := doc.Content[i].Value
		saleTypes := doc.Content[i+1]
		if saleTypes.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: store %s must map sale type keys to templates", ErrInvalidDefinition, storeKey)
		}
		store := models.Store{Key: storeKey}
		for j := 0; j+1 < len(saleTypes.Content); j += 2 {
			var td templateDoc
			if err := saleTypes.Content[j+1].Decode(&td); err != nil {
				return nil, fmt.Errorf("failed to decode %s/%s: %w", storeKey, saleTypes.Content[j].Value, err)
			}
			td.Key = saleTypes.Content[j].Value
			tmpl, err := td.toTemplate(validate, storeKey)
			if err != nil {
				return nil, err
			}
			store.SaleTypes = append(store.SaleTypes, tmpl)
		}
		if len(store.SaleTypes) == 0 {
			return nil, fmt.Errorf("%w: store %s has no sale types", ErrInvalidDefinition, storeKey)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func decodeTOML(data []byte) ([]models.Store, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}

	validate := validator.New()
	stores := make([]models.Store, 0, len(doc.Stores))
	for _, s := range doc.Stores {
		if s.Key == "" {
			return nil, fmt.Errorf("%w: store without key", ErrInvalidDefinition)
		}
		if len(s.SaleTypes) == 0 {
			return nil, fmt.Errorf("%w: store %s has no sale types", ErrInvalidDefinition, s.Key)
		}
		store := models.Store{Key: s.Key}
		for _, td := range s.SaleTypes {
			tmpl, err := td.toTemplate(validate, s.Key)
			if err != nil {
				return nil, err
			}
			store.SaleTypes = append(store.SaleTypes, tmpl)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func (td templateDoc) toTemplate(validate *validator.Validate, storeKey string) (models.SaleTemplate, error) {
	if err := validate.Struct(td); err != nil {
		return models.SaleTemplate{}, fmt.Errorf("%w: %s/%s: %v", ErrInvalidDefinition, storeKey, td.Key, err)
	}
	tmpl := models.SaleTemplate{
		Key:            td.Key,
		ID:             td.ID,
		Name:           td.Name,
		Language:       strings.ToLower(td.Language),
		Example:        td.Example,
		DefaultProduct: td.DefaultProduct,
		DefaultPrice:   td.DefaultPrice,
		DateFormat:     td.DateFormat,
		DurationText:   td.DurationText,
		Location:       td.Location,
		BaseHashtags:   td.BaseHashtags,
	}
	if tmpl.ID == "" {
		tmpl.ID = strings.ToLower(storeKey + "_" + td.Key)
	}
	for _, rd := range td.Routing {
		rule := models.RoutingRule{Kind: models.RoutingKind(rd.Kind)}
		for _, name := range rd.Weekdays {
			wd, ok := ParseWeekday(name)
			if !ok {
				return models.SaleTemplate{}, fmt.Errorf("%w: %s/%s: unknown weekday %q", ErrInvalidDefinition, storeKey, td.Key, name)
			}
			rule.Weekdays = append(rule.Weekdays, wd)
		}
		tmpl.Routing = append(tmpl.Routing, rule)
	}
	return tmpl, nil
}

// ParseWeekday reads an English weekday name or its three-letter abbreviation.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return wd, true
		}
	}
	return time.Sunday, false
}
