package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// BindPath binds chi URL parameters into string fields tagged `path:"name"`.
// Fields without the tag, or tagged `path:"-"`, are left untouched.
//
//	type keyRequest struct {
//		Key string `path:"key"`
//	}
func BindPath() Bind {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidBindTarget)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			// nothing to bind, e.g. handlers that take struct{} or no input
			return nil
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)

			name, ok := sf.Tag.Lookup("path")
			if !ok || name == "-" || !field.CanSet() {
				continue
			}
			if field.Kind() != reflect.String {
				return fmt.Errorf("%w: field %s must be a string", ErrInvalidBindTarget, sf.Name)
			}
			field.SetString(chi.URLParam(r, name))
		}
		return nil
	}
}
