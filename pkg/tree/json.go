package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// nodeJSON mirrors the wire shape of a node. Authors and commits need custom
// handling: authors is a JSON object whose key order is significant, and
// commits holds hash strings before enrichment but records after.
type nodeJSON struct {
	Type            NodeType        `json:"type"`
	Name            string          `json:"name,omitempty"`
	Children        []*Node         `json:"children,omitempty"`
	Authors         json.RawMessage `json:"authors,omitempty"`
	Commits         json.RawMessage `json:"commits,omitempty"`
	LastChangeEpoch int64           `json:"lastChangeEpoch,omitempty"`
	LastChangeDate  string          `json:"lastChangeEpochFormatted,omitempty"`
	SizeInBytes     int64           `json:"sizeInBytes,omitempty"`
	NoCommits       int             `json:"noCommits,omitempty"`
	IsBinary        bool            `json:"isBinary,omitempty"`
	SingleAuthor    *bool           `json:"singleAuthor,omitempty"`
	TopContributor  *string         `json:"topContributor,omitempty"`
}

// MarshalJSON emits the author object in stored order.
func (s AuthorSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, share := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(share.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(share.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an author object preserving the document's key order.
// encoding/json map decoding would lose it.
func (s *AuthorSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("authors: expected object, got %v", tok)
	}

	var set AuthorSet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("authors: expected string key, got %v", keyTok)
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("authors[%s]: %w", key, err)
		}
		set = append(set, AuthorShare{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = set
	return nil
}

// MarshalJSON renders the node for downstream consumers. When commit
// enrichment has run, the commits field carries the enriched records instead
// of hash strings; derived metrics appear only once annotated.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		Type:            n.Type,
		Name:            n.Name,
		Children:        n.Children,
		LastChangeEpoch: n.LastChangeEpoch,
		LastChangeDate:  n.LastChangeDate,
		SizeInBytes:     n.SizeInBytes,
		NoCommits:       n.NoCommits,
		IsBinary:        n.IsBinary,
	}

	if n.Authors != nil {
		raw, err := json.Marshal(n.Authors)
		if err != nil {
			return nil, err
		}
		out.Authors = raw
	}

	switch {
	case n.History != nil:
		raw, err := json.Marshal(n.History)
		if err != nil {
			return nil, err
		}
		out.Commits = raw
	case n.Commits != nil:
		raw, err := json.Marshal(n.Commits)
		if err != nil {
			return nil, err
		}
		out.Commits = raw
	}

	if n.annotated {
		single := n.SingleAuthor
		top := n.TopContributor
		out.SingleAuthor = &single
		out.TopContributor = &top
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a node from the raw payload. Commits may be hash
// strings (raw tool output) or enriched records (a re-read of our own output).
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*n = Node{
		Type:            in.Type,
		Name:            in.Name,
		Children:        in.Children,
		LastChangeEpoch: in.LastChangeEpoch,
		LastChangeDate:  in.LastChangeDate,
		SizeInBytes:     in.SizeInBytes,
		NoCommits:       in.NoCommits,
		IsBinary:        in.IsBinary,
	}

	if in.Authors != nil {
		if err := json.Unmarshal(in.Authors, &n.Authors); err != nil {
			return err
		}
	}

	if len(in.Commits) > 0 {
		var hashes []string
		if err := json.Unmarshal(in.Commits, &hashes); err == nil {
			n.Commits = hashes
		} else {
			var history []Commit
			if err := json.Unmarshal(in.Commits, &history); err != nil {
				return fmt.Errorf("commits: %w", err)
			}
			n.History = history
		}
	}

	if in.SingleAuthor != nil || in.TopContributor != nil {
		single := in.SingleAuthor != nil && *in.SingleAuthor
		top := ""
		if in.TopContributor != nil {
			top = *in.TopContributor
		}
		n.Annotate(single, top)
	}
	return nil
}
