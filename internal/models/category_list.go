package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// CategoryList decodes a product's category field whether the document stores
// it as a single string (legacy admin tooling) or an array of strings.
type CategoryList []string

func (c *CategoryList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*c = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*c = values
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*c = []string{trimmed}
		} else {
			*c = []string{}
		}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into CategoryList", t)
	}
}

// MarshalBSONValue always writes an array, so new writes stay consistent even
// when the source document used the legacy string form.
func (c CategoryList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(c))
}
