package planner

import (
	"encoding/json"
	"reflect"

	"wayfare/models"
)

// MergePlan merges an incoming per-turn plan into the accumulated base plan.
// A field from the incoming plan wins only when it is non-empty; empty, nil
// or zero fields never erase previously known values. The rule is applied
// recursively, so partially-filled nested records merge field by field. The
// result is a fresh value; neither input is mutated.
func MergePlan(base, incoming *models.Plan) *models.Plan {
	merged := clonePlan(base)
	if incoming == nil {
		return merged
	}
	mergeStruct(reflect.ValueOf(merged).Elem(), reflect.ValueOf(incoming).Elem())
	return merged
}

func clonePlan(p *models.Plan) *models.Plan {
	out := &models.Plan{}
	if p == nil {
		return out
	}
	data, err := json.Marshal(p)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, out)
	return out
}

func mergeStruct(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		sf := src.Field(i)
		df := dst.Field(i)
		if isEmpty(sf) {
			continue
		}
		switch sf.Kind() {
		case reflect.Ptr:
			if sf.Elem().Kind() == reflect.Struct {
				if df.IsNil() {
					df.Set(reflect.New(sf.Type().Elem()))
				}
				mergeStruct(df.Elem(), sf.Elem())
			} else {
				df.Set(sf)
			}
		case reflect.Struct:
			mergeStruct(df, sf)
		default:
			df.Set(sf)
		}
	}
}

// isEmpty implements the single "non-empty wins" predicate: zero scalars,
// empty strings, empty collections, nil pointers, and structs whose fields
// are all empty.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		// A non-nil pointer to a scalar is an explicit value, even zero.
		if v.Elem().Kind() == reflect.Struct {
			return isEmpty(v.Elem())
		}
		return false
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !isEmpty(v.Field(i)) {
				return false
			}
		}
		return true
	default:
		return v.IsZero()
	}
}
