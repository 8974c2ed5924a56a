package config

import (
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// An AttributeMap holds the model specific attributes of a config, decoded into a model's own
// config struct with TransformAttributeMapToStruct.
type AttributeMap map[string]interface{}

// TransformAttributeMapToStruct decodes attributes into a new T using its json tags. Keys that
// match no field are an error so a typo in a config file does not silently fall back to defaults.
func TransformAttributeMapToStruct[T any](attributes AttributeMap) (T, error) {
	var out T
	var forResult interface{}

	toT := reflect.TypeOf(out)
	if toT != nil && toT.Kind() == reflect.Ptr {
		// needs to be allocated then
		var ok bool
		out, ok = reflect.New(toT.Elem()).Interface().(T)
		if !ok {
			return out, errors.Errorf("failed to allocate attributes type %T", out)
		}
		forResult = out
	} else {
		forResult = &out
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     forResult,
		Metadata:   &md,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return out, err
	}
	if attributes == nil {
		attributes = AttributeMap{}
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return out, errors.Wrap(err, "decoding attributes")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return out, errors.Errorf("unknown attributes %v", md.Unused)
	}
	return out, nil
}
