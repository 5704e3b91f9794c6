// Package extract pulls the raw analysis payload out of the HTML document
// the external analysis tool renders.
//
// The tool embeds its data as a single script block assigning a JSON object
// to a well-known global. Extraction is positional: the JSON starts at a
// fixed offset past the marker (skipping the assignment prefix) and ends one
// character before the script block closes (dropping the trailing
// semicolon). Any failure here is fatal for the request that needs the
// payload; nothing is retried.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mfiguera/camion/pkg/tree"
)

const (
	// marker identifies the data script block. The document carries exactly
	// one occurrence.
	marker = "window.__TRUCK_DATA__"
	// payloadOffset skips "window.__TRUCK_DATA__ = " to the first JSON byte.
	payloadOffset = len(marker) + len(" = ")

	scriptClose = "</script>"
)

var (
	// ErrMarkerNotFound means the document carries no data script block.
	ErrMarkerNotFound = errors.New("extract: data marker not found in document")
	// ErrMalformedDocument means the marker was found but the block around it
	// is not shaped as expected.
	ErrMalformedDocument = errors.New("extract: malformed data script block")
	// ErrInvalidPayload means the embedded JSON failed schema validation.
	ErrInvalidPayload = errors.New("extract: payload failed schema validation")
)

// payloadSchema is the contract the embedded JSON must satisfy before we
// decode it into typed structures.
const payloadSchema = `{
	"type": "object",
	"required": ["tree", "commits"],
	"properties": {
		"tree": {
			"type": "object",
			"required": ["type"],
			"properties": {
				"type": {"enum": ["tree", "blob"]}
			}
		},
		"commits": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["hash", "time"],
				"properties": {
					"hash": {"type": "string"},
					"message": {"type": "string"},
					"time": {"type": "number"},
					"author": {"type": "string"}
				}
			}
		},
		"authors": {
			"type": "object",
			"additionalProperties": {"type": "number"}
		}
	}
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(payloadSchema))
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", doc); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile("payload.json")
	if err != nil {
		panic(err)
	}
	return schema
}

// Payload is the decoded analysis data.
type Payload struct {
	Tree    *tree.Node
	Commits []tree.RawCommit // document order of the commit dictionary
	Authors map[string]float64
}

// CommitIndex returns the hash -> commit dictionary.
func (p *Payload) CommitIndex() map[string]tree.RawCommit {
	index := make(map[string]tree.RawCommit, len(p.Commits))
	for _, c := range p.Commits {
		index[c.Hash] = c
	}
	return index
}

// FromHTML extracts and decodes the payload embedded in doc.
func FromHTML(doc []byte) (*Payload, error) {
	raw, err := rawJSON(doc)
	if err != nil {
		return nil, err
	}

	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := compiledSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return decode(raw)
}

// rawJSON slices the JSON bytes out of the data script block.
func rawJSON(doc []byte) ([]byte, error) {
	start := bytes.Index(doc, []byte(marker))
	if start == -1 {
		return nil, ErrMarkerNotFound
	}

	rest := doc[start:]
	end := bytes.Index(rest, []byte(scriptClose))
	if end == -1 {
		return nil, ErrMalformedDocument
	}

	block := rest[:end]
	// The JSON starts payloadOffset bytes in and ends one character before
	// the block does (the statement's closing semicolon).
	if len(block) <= payloadOffset+1 {
		return nil, ErrMalformedDocument
	}
	return block[payloadOffset : len(block)-1], nil
}

func decode(raw []byte) (*Payload, error) {
	var in struct {
		Tree    *tree.Node         `json:"tree"`
		Commits commitList         `json:"commits"`
		Authors map[string]float64 `json:"authors"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &Payload{
		Tree:    in.Tree,
		Commits: in.Commits,
		Authors: in.Authors,
	}, nil
}

// commitList decodes the hash-keyed commit object preserving document order,
// which downstream grouping treats as the original commit list order.
type commitList []tree.RawCommit

func (l *commitList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("commits: expected object, got %v", tok)
	}

	var list commitList
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key, value carries the hash
			return err
		}
		var commit tree.RawCommit
		if err := dec.Decode(&commit); err != nil {
			return err
		}
		list = append(list, commit)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = list
	return nil
}
