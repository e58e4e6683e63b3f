package datasets

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"

	"github.com/indobig/sizecompare/registry"
)

var ErrInvalidDataset = errors.New("invalid dataset")

// ParseBoundaries checks the shape of a boundary document before handing it
// to geojson. Anything that is not an object with a non-empty 'features'
// array is rejected.
func ParseBoundaries(data []byte) (*geojson.FeatureCollection, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: boundaries are not valid json", ErrInvalidDataset)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: boundaries must be a json object", ErrInvalidDataset)
	}

	features := doc.Get("features")
	if !features.Exists() {
		return nil, fmt.Errorf("%w: boundaries have no 'features'", ErrInvalidDataset)
	}
	if !features.IsArray() {
		return nil, fmt.Errorf("%w: boundaries 'features' must be an array", ErrInvalidDataset)
	}
	if len(features.Array()) == 0 {
		return nil, fmt.Errorf("%w: boundaries 'features' is empty", ErrInvalidDataset)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	return fc, nil
}

// ParseAreas reads a flat object of country name to km2.
func ParseAreas(data []byte) (registry.AreaTable, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: areas are not valid json", ErrInvalidDataset)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: areas must be a json object", ErrInvalidDataset)
	}

	areas := make(registry.AreaTable)

	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = fmt.Errorf("%w: area for '%s' is not a number", ErrInvalidDataset, key.String())
			return false
		}
		areas[key.String()] = value.Float()
		return true
	})

	if err != nil {
		return nil, err
	}

	return areas, nil
}
