package sgf

import (
	"fmt"
	"strings"
)

// GameTree is one SGF tree: a node sequence plus variations.
type GameTree struct {
	Nodes    []Node      // main line
	Children []*GameTree // variations
}

// Node is a single SGF node, a property set such as B[pd], W[dd], C[...].
type Node struct {
	Properties map[string][]string // properties may repeat (e.g. AB[aa][bb])
}

// SGF is the root element of an SGF file.
type SGF struct {
	Root *GameTree
}

// Serialize renders the SGF tree back to its textual form.
func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		// fixed order for the well-known SGF properties
		orderedKeys := []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}
		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}

		for key, values := range node.Properties {
			if !used[key] {
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}
