package mongo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type labelEnvelope struct {
	V json.RawMessage `json:"v"`
}

// labelToBSON converts a JSON label to a BSON value through relaxed
// extended JSON, so integers stay integers and objects keep key order.
func labelToBSON(label json.RawMessage) (any, error) {
	src := make([]byte, 0, len(label)+6)
	src = append(src, `{"v":`...)
	src = append(src, label...)
	src = append(src, '}')

	var doc bson.D
	if err := bson.UnmarshalExtJSON(src, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert label: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("failed to convert label: unexpected shape")
	}

	return doc[0].Value, nil
}

// labelFromBSON returns nil when the field is absent.
func labelFromBSON(v bson.RawValue) (json.RawMessage, error) {
	if v.Type == 0 {
		return nil, nil
	}

	out, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: v}}, false, false)
	if err != nil {
		return nil, err
	}

	var env labelEnvelope
	if err := json.Unmarshal(out, &env); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, env.V); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
