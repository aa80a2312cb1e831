package gengo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON string

var (
	envelopeOnce      sync.Once
	envelopeSchema    *jsonschema.Schema
	envelopeSchemaErr error
)

func loadEnvelopeSchema() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("envelope.schema.json", strings.NewReader(envelopeSchemaJSON)); err != nil {
			envelopeSchemaErr = fmt.Errorf("add envelope schema: %w", err)
			return
		}
		envelopeSchema, envelopeSchemaErr = compiler.Compile("envelope.schema.json")
	})
	return envelopeSchema, envelopeSchemaErr
}

type envelope struct {
	Opstat   string          `json:"opstat"`
	Response json.RawMessage `json:"response"`
	Err      *struct {
		Code looseInt    `json:"code"`
		Msg  looseString `json:"msg"`
	} `json:"err"`
}

// RawResponse is what a Transport hands back for a completed exchange.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// interpret turns one exchange into the success payload or a chained error:
// transport failure, then HTTP status, then the envelope's opstat.
func interpret(resp *RawResponse, transportErr error) (json.RawMessage, error) {
	var err error
	if transportErr != nil {
		err = &TransportError{Err: transportErr}
	}
	if resp == nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = newStatusError(resp.StatusCode, err)
	}

	env, decodeErr := parseEnvelope(resp.Body)
	if decodeErr != nil {
		if err == nil {
			err = fmt.Errorf("%w: %v", ErrMalformedEnvelope, decodeErr)
		}
		return nil, err
	}
	if env.Opstat != "ok" {
		apiErr := &APIError{Message: defaultAPIMessage, Err: err}
		if env.Err != nil {
			apiErr.Code = env.Err.Code.v
			if env.Err.Msg.ok && env.Err.Msg.v != "" {
				apiErr.Message = env.Err.Msg.v
			}
		}
		return nil, apiErr
	}
	if err != nil {
		return nil, err
	}
	if isJSONNull(env.Response) {
		return nil, nil
	}
	return env.Response, nil
}

// parseEnvelope fails only when body is not a JSON object; an object that
// violates the envelope schema is reported through an empty opstat.
func parseEnvelope(body []byte) (envelope, error) {
	value := decodeValue(body)
	if _, ok := value.(map[string]any); !ok {
		return envelope{}, fmt.Errorf("body is not a JSON object")
	}
	var env envelope
	if err := decodeLenient(body, &env); err != nil {
		return envelope{}, err
	}
	schema, err := loadEnvelopeSchema()
	if err != nil {
		return envelope{}, err
	}
	if err := schema.Validate(value); err != nil {
		env.Opstat = ""
	}
	return env, nil
}

func isJSONNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
