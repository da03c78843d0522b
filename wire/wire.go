// Package wire carries checked calls across an untyped boundary. A Request
// names a registered function and carries its arguments as decoded from JSON
// or YAML; Dispatch runs it through a typeguard.Registry, and the Response
// reports either the results or a structured description of the failure.
//
// Decoded numbers are left untyped (json.Number for JSON, int or float64 for
// YAML), so registries serving wire requests usually want
// typeguard.WithCoercion.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"go.yaml.in/yaml/v3"

	"github.com/toejough/typeguard"
)

// Error kinds reported in ErrorBody.Kind.
const (
	KindArity        = "Arity"
	KindCall         = "Call"
	KindDecode       = "Decode"
	KindTypeMismatch = "TypeMismatch"
	KindUnknownFunc  = "UnknownFunc"
)

// Exported variables.
var (
	ErrMissingFunc  = errors.New("request names no function")
	ErrTrailingData = errors.New("unexpected data after request")
)

// ErrorBody describes why a dispatched call failed.
type ErrorBody struct {
	Kind     string `json:"kind"               yaml:"kind"`
	Param    string `json:"param,omitempty"    yaml:"param,omitempty"`
	Declared string `json:"declared,omitempty" yaml:"declared,omitempty"`
	Actual   string `json:"actual,omitempty"   yaml:"actual,omitempty"`
	Message  string `json:"message"            yaml:"message"`
}

// Request is a call decoded from an untyped source.
type Request struct {
	Func string `json:"func" yaml:"func"`
	Args []any  `json:"args" yaml:"args"`
}

// Response is the outcome of a dispatched call. A nil Error means the call
// succeeded, and Results holds its values; a call with no values to report
// therefore encodes as an empty object.
type Response struct {
	Results []any      `json:"results,omitempty" yaml:"results,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"   yaml:"error,omitempty"`
}

// DecodeJSON decodes a request, keeping numbers as json.Number so no
// precision is lost before the checker sees them.
func DecodeJSON(data []byte) (Request, error) {
	var req Request

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&req)
	if err != nil {
		return Request{}, fmt.Errorf("failed to decode JSON request: %w", err)
	}

	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("failed to decode JSON request: %w", ErrTrailingData)
	}

	return req, validate(req)
}

// DecodeYAML decodes a request from YAML.
func DecodeYAML(data []byte) (Request, error) {
	var req Request

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(&req)
	if err != nil {
		return Request{}, fmt.Errorf("failed to decode YAML request: %w", err)
	}

	// a second document is a second request, which is not accepted
	err = decoder.Decode(&yaml.Node{})
	if !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("failed to decode YAML request: %w", ErrTrailingData)
	}

	return req, validate(req)
}

// Dispatch makes the checked call req describes. A function whose last
// result is an error has that error reported as a KindCall failure rather
// than returned among the results.
func Dispatch(registry *typeguard.Registry, req Request) Response {
	results, err := registry.Call(req.Func, req.Args...)
	if err != nil {
		return Response{Error: describeError(err)}
	}

	checked, _ := registry.Lookup(req.Func)

	declared := checked.Signature().Results
	if len(declared) > 0 && declared[len(declared)-1].Type == errorType {
		last := len(results) - 1

		if callErr, ok := results[last].(error); ok && callErr != nil {
			return Response{Error: &ErrorBody{Kind: KindCall, Message: callErr.Error()}}
		}

		results = results[:last]
	}

	return Response{Results: results}
}

// EncodeJSON encodes a response.
func EncodeJSON(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	return data, nil
}

// EncodeYAML encodes a response.
func EncodeYAML(resp Response) ([]byte, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	return data, nil
}

// HandleJSON decodes a JSON request, dispatches it, and encodes the response.
// Decode failures are reported in the response as KindDecode.
func HandleJSON(registry *typeguard.Registry, data []byte) ([]byte, error) {
	req, err := DecodeJSON(data)
	if err != nil {
		return EncodeJSON(Response{Error: &ErrorBody{Kind: KindDecode, Message: err.Error()}})
	}

	return EncodeJSON(Dispatch(registry, req))
}

// HandleYAML is HandleJSON for YAML requests and responses.
func HandleYAML(registry *typeguard.Registry, data []byte) ([]byte, error) {
	req, err := DecodeYAML(data)
	if err != nil {
		return EncodeYAML(Response{Error: &ErrorBody{Kind: KindDecode, Message: err.Error()}})
	}

	return EncodeYAML(Dispatch(registry, req))
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type lookup, computed once
	errorType = reflect.TypeFor[error]()
)

func describeError(err error) *ErrorBody {
	body := &ErrorBody{Message: err.Error()}

	var mismatch *typeguard.TypeMismatchError

	switch {
	case errors.As(err, &mismatch):
		body.Kind = KindTypeMismatch
		body.Param = mismatch.Param
		body.Declared = mismatch.Declared
		body.Actual = mismatch.Actual
	case errors.Is(err, typeguard.ErrArity):
		body.Kind = KindArity
	case errors.Is(err, typeguard.ErrUnknownFunc):
		body.Kind = KindUnknownFunc
	default:
		body.Kind = KindCall
	}

	return body
}

func validate(req Request) error {
	if req.Func == "" {
		return ErrMissingFunc
	}

	return nil
}
