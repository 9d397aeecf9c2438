// Package schema describes the hierarchical document format exchanged with hosts.
//
// A document is a single RawNode tree: every node nests its children in
// childNodeList and names its type with the host vocabulary (rootNode,
// moduleNode, caseNode, ...). Documents are read from and written to JSON or
// YAML; the editor itself only ever sees the flat form built by pkg/convert.
//
//	raw, err := schema.Decode(data, schema.FormatJSON)
//	if err != nil {
//	    // malformed input
//	}
//	if err := schema.Validate(raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        log.Println(e)
//	    }
//	}
//
// Besides the serialization libraries, the package has no dependencies and
// can be used by hosts that never embed the editor.
package schema
