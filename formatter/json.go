package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/gnolang/trex/internal/pattern"
)

// NodeJSON is the JSON form of a pattern node. Max is omitted for unbounded
// repetitions.
type NodeJSON struct {
	Type     string     `json:"type"`
	Char     string     `json:"char,omitempty"`
	Kind     string     `json:"kind,omitempty"`
	Low      string     `json:"low,omitempty"`
	High     string     `json:"high,omitempty"`
	Min      *int       `json:"min,omitempty"`
	Max      *int       `json:"max,omitempty"`
	Lazy     bool       `json:"lazy,omitempty"`
	Name     string     `json:"name,omitempty"`
	Children []NodeJSON `json:"children,omitempty"`
}

// NewNodeJSON converts a pattern tree into its JSON form.
func NewNodeJSON(node pattern.Node) NodeJSON {
	switch n := node.(type) {
	case pattern.Literal:
		return NodeJSON{Type: "literal", Char: string(n.Char)}
	case pattern.Start:
		return NodeJSON{Type: "start"}
	case pattern.End:
		return NodeJSON{Type: "end"}
	case pattern.Any:
		return NodeJSON{Type: "any"}
	case pattern.WordBoundary:
		return NodeJSON{Type: "word-boundary"}
	case pattern.Shorthand:
		return NodeJSON{Type: "shorthand", Kind: n.Kind.Escape()}
	case pattern.AsciiRange:
		return NodeJSON{Type: "range", Low: string(n.Low), High: string(n.High)}
	case *pattern.Sequence:
		return NodeJSON{Type: "sequence", Children: childrenJSON(n.Items)}
	case *pattern.Alternation:
		return NodeJSON{Type: "alternation", Children: childrenJSON(n.Alternatives)}
	case *pattern.Repetition:
		out := NodeJSON{
			Type:     "repetition",
			Min:      &n.Min,
			Lazy:     n.Lazy,
			Children: []NodeJSON{NewNodeJSON(n.Child)},
		}
		if n.Bounded() {
			out.Max = &n.Max
		}
		return out
	case *pattern.Capture:
		return NodeJSON{Type: "capture", Name: n.Name, Children: []NodeJSON{NewNodeJSON(n.Child)}}
	default:
		panic(fmt.Sprintf("formatter: unexpected node type %T", node))
	}
}

func childrenJSON(nodes []pattern.Node) []NodeJSON {
	out := make([]NodeJSON, len(nodes))
	for i, n := range nodes {
		out[i] = NewNodeJSON(n)
	}
	return out
}

// MarshalNode returns the indented JSON form of a pattern tree.
func MarshalNode(node pattern.Node) ([]byte, error) {
	data, err := json.Marshal(NewNodeJSON(node))
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

// ColorizeJSON adds terminal colors to JSON produced by MarshalNode.
func ColorizeJSON(data []byte) []byte {
	return pretty.Color(data, nil)
}
