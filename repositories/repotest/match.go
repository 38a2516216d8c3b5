// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// toM round-trips v through BSON so guards and field updates can be applied
// by their stored field names.
func toM(v interface{}) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func fromM(m bson.M, out interface{}) {
	raw, err := bson.Marshal(m)
	if err != nil {
		panic(err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		panic(err)
	}
}

// matches evaluates the subset of query syntax the services use as guards:
// equality and $ne on top-level fields.
func matches(doc, guard bson.M) bool {
	for key, want := range guard {
		got := normalize(doc[key])
		if op, ok := want.(bson.M); ok {
			if ne, ok := op["$ne"]; ok && reflect.DeepEqual(got, normalize(ne)) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, normalize(want)) {
			return false
		}
	}
	return true
}

// normalize turns named string types into plain strings so a guard written
// with a typed constant compares equal to the decoded document value.
func normalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

// apply writes fields onto the document v points to.
func apply[T any](v *T, fields bson.M) {
	doc := toM(v)
	for k, val := range fields {
		doc[k] = val
	}
	var out T
	fromM(doc, &out)
	*v = out
}
