package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidatingSpec is the payload of an asset file.
type ValidatingSpec interface {
	Validate() error
}

// Asset is the envelope every asset file is wrapped in.
type Asset[T ValidatingSpec] struct {
	Version uint   `json:"version"`
	Id      string `json:"id"`
	Spec    T      `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Id == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !identifierPattern.MatchString(a.Id) {
		el.Add(fmt.Errorf("id %q must be alphanumeric", a.Id))
	}

	if reflect.ValueOf(a.Spec).IsNil() {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

// Ref names another asset by id. It unmarshals from a bare string and is
// bound to its target by Resolve.
type Ref[T ValidatingSpec] struct {
	id  string
	val T
}

func NewRef[T ValidatingSpec](id string) Ref[T] {
	return Ref[T]{id: id}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.id)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}

func (r Ref[T]) Validate() error {
	if r.id == "" {
		return fmt.Errorf("%s reference is required", specName[T]())
	}
	return nil
}

// Resolve looks the reference up in st.
func (r *Ref[T]) Resolve(st Storer[T]) error {
	val, ok := st.Get(r.id)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, specName[T](), r.id)
	}
	r.val = val
	return nil
}

func (r Ref[T]) Id() string {
	return r.id
}

// Get returns the resolved value, or the zero value before Resolve.
func (r Ref[T]) Get() T {
	return r.val
}

func specName[T any]() string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
